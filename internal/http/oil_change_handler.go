package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/model"
	"maintenance-service/internal/service"
)

func (h *Handler) registerOilChange(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req struct {
		Odometer  *int64           `json:"odometer" binding:"required"`
		OilType   string           `json:"oil_type" binding:"required"`
		ChangedAt string           `json:"changed_at" binding:"required"`
		TotalCost *decimal.Decimal `json:"total_cost"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	changedAt, err := parseTime(req.ChangedAt)
	if err != nil {
		badField(c, "changed_at", err.Error())
		return
	}

	totalCost := decimal.Zero
	if req.TotalCost != nil {
		totalCost = *req.TotalCost
	}

	change, err := h.oilChangeService.Register(c.Request.Context(), principal, id, service.RegisterOilChangeInput{
		Odometer:  *req.Odometer,
		OilType:   model.OilType(strings.ToUpper(strings.TrimSpace(req.OilType))),
		ChangedAt: changedAt,
		TotalCost: totalCost,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(change))
}

func (h *Handler) listOilChanges(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	changes, err := h.oilChangeService.List(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(changes))
}

func (h *Handler) oilChangeAlerts(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var odometer *int64
	if raw := strings.TrimSpace(c.Query("odometer")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value < 0 {
			badField(c, "odometer", "odometer must be a non-negative integer")
			return
		}
		odometer = &value
	}

	alerts, err := h.oilChangeService.Alerts(c.Request.Context(), principal, id, odometer)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(alerts))
}
