package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"maintenance-service/internal/catalog"
	"maintenance-service/internal/http/middleware"
	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
	"maintenance-service/internal/service"
)

type Services struct {
	Vehicles   *service.VehicleService
	Odometer   *service.OdometerService
	Refuels    *service.RefuelService
	OilChanges *service.OilChangeService
	Schedule   *service.ScheduleService
	Summary    *service.SummaryService
}

type Handler struct {
	vehicleService   *service.VehicleService
	odometerService  *service.OdometerService
	refuelService    *service.RefuelService
	oilChangeService *service.OilChangeService
	scheduleService  *service.ScheduleService
	summaryService   *service.SummaryService
	catalog          *catalog.Catalog
	log              zerolog.Logger
}

func NewHandler(services Services, vehicleCatalog *catalog.Catalog, log zerolog.Logger) *Handler {
	return &Handler{
		vehicleService:   services.Vehicles,
		odometerService:  services.Odometer,
		refuelService:    services.Refuels,
		oilChangeService: services.OilChanges,
		scheduleService:  services.Schedule,
		summaryService:   services.Summary,
		catalog:          vehicleCatalog,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/catalog/vehicles", h.listCatalog)

	vehicles := protected.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/:id", h.getVehicle)
		vehicles.PUT("/:id", h.updateVehicle)
		vehicles.DELETE("/:id", h.deleteVehicle)
		vehicles.POST("/:id/activate", h.activateVehicle)
		vehicles.GET("/:id/summary", h.getSummary)

		vehicles.POST("/:id/odometer", h.recordReading)
		vehicles.PUT("/:id/odometer", h.correctReading)
		vehicles.GET("/:id/odometer", h.listReadings)

		vehicles.POST("/:id/refuels", h.recordRefuel)
		vehicles.GET("/:id/refuels", h.listRefuels)
		vehicles.GET("/:id/refuels/next", h.nextRefuel)

		vehicles.POST("/:id/oil-changes", h.registerOilChange)
		vehicles.GET("/:id/oil-changes", h.listOilChanges)
		vehicles.GET("/:id/oil-changes/alerts", h.oilChangeAlerts)

		vehicles.POST("/:id/services", h.createService)
		vehicles.GET("/:id/services", h.listServices)
	}

	protected.PUT("/services/:id/complete", h.completeService)
}

// principalAndID resolves the caller and the :id path parameter. On failure
// the response has already been written.
func (h *Handler) principalAndID(c *gin.Context) (model.Principal, uuid.UUID, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return model.Principal{}, uuid.Nil, false
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid id"))
		return model.Principal{}, uuid.Nil, false
	}
	return principal, id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var fieldErr *maintenance.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(fieldErrorStatus(fieldErr), gin.H{
			"error": fieldErr.Message,
			"field": fieldErr.Field,
		})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func fieldErrorStatus(err *maintenance.FieldError) int {
	switch {
	case errors.Is(err, maintenance.ErrAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, maintenance.ErrChangeNotDue),
		errors.Is(err, maintenance.ErrFutureDate),
		errors.Is(err, maintenance.ErrOutOfOrderDate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}

func badField(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "field": field})
}
