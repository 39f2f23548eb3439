package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
	"maintenance-service/internal/repository"
	"maintenance-service/internal/utils"
)

const firstCarYear = 1886

var vehicleColors = []string{"Black", "White", "Silver", "Red", "Blue", "Gray", "Yellow", "Green"}

// CapacityLookup resolves the tank capacity of a make and model.
type CapacityLookup interface {
	Lookup(vehicleMake, model string) (int, bool)
}

type VehicleService struct {
	deps    Deps
	catalog CapacityLookup
	now     func() time.Time
}

func NewVehicleService(deps Deps, catalog CapacityLookup) *VehicleService {
	return &VehicleService{deps: deps, catalog: catalog, now: deps.clock()}
}

type CreateVehicleInput struct {
	Plate        string
	Make         string
	Model        string
	Color        string
	Year         int
	TankCapacity *int
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{
		UserID: principal.UserID,
		Plate:  utils.NormalizePlate(input.Plate),
		Make:   strings.TrimSpace(input.Make),
		Model:  strings.TrimSpace(input.Model),
		Year:   input.Year,
	}
	if err := s.applyDetails(vehicle, input.Color, input.TankCapacity); err != nil {
		return nil, err
	}
	if err := s.validate(vehicle); err != nil {
		return nil, err
	}

	existing, err := s.deps.Store.Vehicles.GetByPlate(ctx, vehicle.Plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: plate %s is already registered", ErrConflict, vehicle.Plate)
	}

	if err := s.deps.Store.Vehicles.Create(ctx, vehicle); err != nil {
		return nil, translateError(err)
	}
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Vehicle, error) {
	return ownedVehicle(ctx, s.deps.Store, principal, id, vehicleAccess{allowDeleted: true})
}

func (s *VehicleService) List(ctx context.Context, principal model.Principal, filter repository.VehicleListFilter) ([]model.Vehicle, error) {
	if filter.Plate != nil {
		plate := utils.NormalizePlate(*filter.Plate)
		filter.Plate = &plate
	}
	return s.deps.Store.Vehicles.ListByUser(ctx, principal.UserID, filter)
}

type UpdateVehicleInput struct {
	Plate        *string
	Make         *string
	Model        *string
	Color        *string
	Year         *int
	TankCapacity *int
}

func (s *VehicleService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateVehicleInput) (*model.Vehicle, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, id, vehicleAccess{})
	if err != nil {
		return nil, err
	}

	plateChanged := false
	if input.Plate != nil {
		plate := utils.NormalizePlate(*input.Plate)
		plateChanged = plate != vehicle.Plate
		vehicle.Plate = plate
	}
	if input.Make != nil {
		vehicle.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		color, ok := normalizeColor(*input.Color)
		if !ok {
			return nil, colorError(*input.Color)
		}
		vehicle.Color = color
	}
	if input.TankCapacity != nil {
		vehicle.TankCapacity = *input.TankCapacity
	}
	if err := s.validate(vehicle); err != nil {
		return nil, err
	}

	if plateChanged {
		existing, err := s.deps.Store.Vehicles.GetByPlate(ctx, vehicle.Plate)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != vehicle.ID {
			return nil, fmt.Errorf("%w: plate %s is already registered", ErrConflict, vehicle.Plate)
		}
	}

	if err := s.deps.Store.Vehicles.Update(ctx, vehicle); err != nil {
		return nil, translateError(err)
	}
	return vehicle, nil
}

// Delete hides the vehicle. Its history is kept and comes back on Activate.
func (s *VehicleService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, id, vehicleAccess{})
	if err != nil {
		return err
	}
	vehicle.IsDeleted = true
	return s.deps.Store.Vehicles.Update(ctx, vehicle)
}

func (s *VehicleService) Activate(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, id, vehicleAccess{allowDeleted: true})
	if err != nil {
		return nil, err
	}
	if !vehicle.IsDeleted {
		return nil, fmt.Errorf("%w: vehicle is already active", ErrConflict)
	}
	vehicle.IsDeleted = false
	if err := s.deps.Store.Vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) applyDetails(vehicle *model.Vehicle, rawColor string, tankCapacity *int) error {
	color, ok := normalizeColor(rawColor)
	if !ok {
		return colorError(rawColor)
	}
	vehicle.Color = color

	switch {
	case tankCapacity != nil:
		vehicle.TankCapacity = *tankCapacity
	case s.catalog != nil:
		if capacity, found := s.catalog.Lookup(vehicle.Make, vehicle.Model); found {
			vehicle.TankCapacity = capacity
		}
	}
	return nil
}

func (s *VehicleService) validate(vehicle *model.Vehicle) error {
	if !utils.ValidPlate(vehicle.Plate) {
		return &maintenance.FieldError{
			Field:   "plate",
			Message: "plate must look like ABC1234 or ABC1D23",
			Kind:    maintenance.ErrInvalidValue,
		}
	}
	if vehicle.Make == "" {
		return &maintenance.FieldError{Field: "make", Message: "make is required", Kind: maintenance.ErrInvalidValue}
	}
	if vehicle.Model == "" {
		return &maintenance.FieldError{Field: "model", Message: "model is required", Kind: maintenance.ErrInvalidValue}
	}
	if currentYear := s.now().Year(); vehicle.Year < firstCarYear || vehicle.Year > currentYear {
		return &maintenance.FieldError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between %d and %d", firstCarYear, currentYear),
			Kind:    maintenance.ErrInvalidValue,
		}
	}
	if vehicle.TankCapacity < 0 {
		return &maintenance.FieldError{Field: "tank_capacity", Message: "tank capacity cannot be negative", Kind: maintenance.ErrInvalidValue}
	}
	return nil
}

func normalizeColor(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, color := range vehicleColors {
		if strings.EqualFold(color, raw) {
			return color, true
		}
	}
	return "", false
}

func colorError(raw string) error {
	return &maintenance.FieldError{
		Field:   "color",
		Message: fmt.Sprintf("unknown color %q, expected one of %s", raw, strings.Join(vehicleColors, ", ")),
		Kind:    maintenance.ErrInvalidValue,
	}
}
