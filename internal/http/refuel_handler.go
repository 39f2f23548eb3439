package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/service"
)

func (h *Handler) recordRefuel(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req struct {
		Odometer    *int64           `json:"odometer" binding:"required"`
		TotalLiters *decimal.Decimal `json:"total_liters" binding:"required"`
		LiterPrice  *decimal.Decimal `json:"liter_price" binding:"required"`
		RefueledAt  string           `json:"refueled_at" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	refueledAt, err := parseTime(req.RefueledAt)
	if err != nil {
		badField(c, "refueled_at", err.Error())
		return
	}

	result, err := h.refuelService.Record(c.Request.Context(), principal, id, service.RecordRefuelInput{
		Odometer:    *req.Odometer,
		TotalLiters: *req.TotalLiters,
		LiterPrice:  *req.LiterPrice,
		RefueledAt:  refueledAt,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) listRefuels(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	refuels, err := h.refuelService.List(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(refuels))
}

func (h *Handler) nextRefuel(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	next, err := h.refuelService.Next(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(next))
}
