package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"maintenance-service/internal/http/middleware"
	"maintenance-service/internal/repository"
	"maintenance-service/internal/service"
)

func (h *Handler) listCatalog(c *gin.Context) {
	entries := h.catalog.Entries()

	if vehicleMake := strings.TrimSpace(c.Query("make")); vehicleMake != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if strings.EqualFold(e.Make, vehicleMake) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	c.JSON(http.StatusOK, successResponse(entries))
}

func (h *Handler) createVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Plate        string `json:"plate" binding:"required"`
		Make         string `json:"make" binding:"required"`
		Model        string `json:"model" binding:"required"`
		Color        string `json:"color" binding:"required"`
		Year         int    `json:"year" binding:"required"`
		TankCapacity *int   `json:"tank_capacity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), principal, service.CreateVehicleInput{
		Plate:        req.Plate,
		Make:         req.Make,
		Model:        req.Model,
		Color:        req.Color,
		Year:         req.Year,
		TankCapacity: req.TankCapacity,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) listVehicles(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var filter repository.VehicleListFilter
	if raw := c.Query("include_deleted"); raw != "" {
		includeDeleted, err := strconv.ParseBool(raw)
		if err != nil {
			badField(c, "include_deleted", "include_deleted must be true or false")
			return
		}
		filter.IncludeDeleted = includeDeleted
	}
	if value := strings.TrimSpace(c.Query("make")); value != "" {
		filter.Make = &value
	}
	if value := strings.TrimSpace(c.Query("model")); value != "" {
		filter.Model = &value
	}
	if value := strings.TrimSpace(c.Query("plate")); value != "" {
		filter.Plate = &value
	}

	vehicles, err := h.vehicleService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) getVehicle(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req struct {
		Plate        *string `json:"plate"`
		Make         *string `json:"make"`
		Model        *string `json:"model"`
		Color        *string `json:"color"`
		Year         *int    `json:"year"`
		TankCapacity *int    `json:"tank_capacity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), principal, id, service.UpdateVehicleInput{
		Plate:        req.Plate,
		Make:         req.Make,
		Model:        req.Model,
		Color:        req.Color,
		Year:         req.Year,
		TankCapacity: req.TankCapacity,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) activateVehicle(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.Activate(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) getSummary(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.Summary(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}
