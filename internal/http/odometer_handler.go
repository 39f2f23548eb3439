package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type readingRequest struct {
	Value *int64 `json:"value" binding:"required"`
}

func (h *Handler) recordReading(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badField(c, "value", "value must be a non-negative integer")
		return
	}

	result, err := h.odometerService.Record(c.Request.Context(), principal, id, *req.Value)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) correctReading(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badField(c, "value", "value must be a non-negative integer")
		return
	}

	result, err := h.odometerService.Correct(c.Request.Context(), principal, id, *req.Value)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) listReadings(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	readings, err := h.odometerService.History(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(readings))
}
