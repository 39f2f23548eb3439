package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/service"
)

func (h *Handler) createService(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req struct {
		Name          string           `json:"name" binding:"required"`
		Description   string           `json:"description"`
		ScheduledDate string           `json:"scheduled_date" binding:"required"`
		Cost          *decimal.Decimal `json:"cost"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	scheduledDate, err := parseTime(req.ScheduledDate)
	if err != nil {
		badField(c, "scheduled_date", err.Error())
		return
	}

	cost := decimal.Zero
	if req.Cost != nil {
		cost = *req.Cost
	}

	scheduled, err := h.scheduleService.Schedule(c.Request.Context(), principal, id, service.ScheduleServiceInput{
		Name:          req.Name,
		Description:   req.Description,
		ScheduledDate: scheduledDate,
		Cost:          cost,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(scheduled))
}

func (h *Handler) listServices(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var completed *bool
	if raw := c.Query("completed"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			badField(c, "completed", "completed must be true or false")
			return
		}
		completed = &value
	}

	services, err := h.scheduleService.List(c.Request.Context(), principal, id, completed)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(services))
}

func (h *Handler) completeService(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.scheduleService.Complete(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}
