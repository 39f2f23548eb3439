package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
	"maintenance-service/internal/repository"
)

type OilChangeService struct {
	deps Deps
	now  func() time.Time
}

func NewOilChangeService(deps Deps) *OilChangeService {
	return &OilChangeService{deps: deps, now: deps.clock()}
}

type RegisterOilChangeInput struct {
	Odometer  int64
	OilType   model.OilType
	ChangedAt time.Time
	TotalCost decimal.Decimal
}

// Register stores an oil change. When it moves the odometer forward the
// ledger gets a matching reading.
func (s *OilChangeService) Register(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, input RegisterOilChangeInput) (*model.OilChange, error) {
	now := s.now()
	var change *model.OilChange

	err := s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		vehicle, err := ownedVehicle(ctx, tx, principal, vehicleID, vehicleAccess{lock: true})
		if err != nil {
			return err
		}

		latestReading, err := tx.Readings.Latest(ctx, vehicle.ID)
		if err != nil {
			return err
		}
		previous, err := tx.OilChanges.Latest(ctx, vehicle.ID)
		if err != nil {
			return err
		}

		change, err = maintenance.RegisterChange(maintenance.OilChangeInput{
			VehicleID: vehicle.ID,
			UserID:    principal.UserID,
			Odometer:  input.Odometer,
			OilType:   input.OilType,
			ChangedAt: input.ChangedAt,
			TotalCost: input.TotalCost,
		}, previous, maintenance.LatestValue(latestReading), now)
		if err != nil {
			return err
		}

		if err := tx.OilChanges.Create(ctx, change); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: an oil change is already registered at %s", ErrConflict, input.ChangedAt.Format(time.RFC3339))
			}
			return err
		}

		if latestReading != nil && input.Odometer <= latestReading.Value {
			return nil
		}
		_, err = appendReading(ctx, tx, vehicle.ID, input.Odometer, principal.UserID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (s *OilChangeService) List(ctx context.Context, principal model.Principal, vehicleID uuid.UUID) ([]model.OilChange, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{allowDeleted: true})
	if err != nil {
		return nil, err
	}
	return s.deps.Store.OilChanges.ListByVehicle(ctx, vehicle.ID)
}

// Alerts checks the latest oil change against odometer, or against the latest
// ledger value when odometer is nil.
func (s *OilChangeService) Alerts(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, odometer *int64) ([]maintenance.Alert, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{})
	if err != nil {
		return nil, err
	}

	if odometer == nil {
		latest, err := s.deps.Store.Readings.Latest(ctx, vehicle.ID)
		if err != nil {
			return nil, err
		}
		odometer = maintenance.LatestValue(latest)
	}
	if odometer == nil {
		return []maintenance.Alert{}, nil
	}
	if *odometer < 0 {
		return nil, &maintenance.FieldError{Field: "odometer", Message: "odometer must be a non-negative integer", Kind: maintenance.ErrInvalidValue}
	}

	alerts, err := currentAlerts(ctx, s.deps.Store, vehicle.ID, *odometer, s.now())
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []maintenance.Alert{}
	}
	return alerts, nil
}
