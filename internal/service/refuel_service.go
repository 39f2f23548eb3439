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
	"maintenance-service/internal/notify"
	"maintenance-service/internal/repository"
)

type RefuelService struct {
	deps Deps
	now  func() time.Time
}

func NewRefuelService(deps Deps) *RefuelService {
	return &RefuelService{deps: deps, now: deps.clock()}
}

type RecordRefuelInput struct {
	Odometer    int64
	TotalLiters decimal.Decimal
	LiterPrice  decimal.Decimal
	RefueledAt  time.Time
}

type RefuelResult struct {
	Refuel     *model.RefuelEvent  `json:"refuel"`
	NextRefuel *time.Time          `json:"next_refuel"`
	Alerts     []maintenance.Alert `json:"alerts"`
}

// Record stores a refuel together with the matching ledger reading.
func (s *RefuelService) Record(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, input RecordRefuelInput) (*RefuelResult, error) {
	now := s.now()
	var (
		vehicle *model.Vehicle
		result  RefuelResult
	)

	err := s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		vehicle, err = ownedVehicle(ctx, tx, principal, vehicleID, vehicleAccess{lock: true})
		if err != nil {
			return err
		}

		history, latestReading, err := s.loadHistory(ctx, tx, vehicle)
		if err != nil {
			return err
		}

		event, err := maintenance.ComputeRefuel(maintenance.RefuelInput{
			VehicleID:   vehicle.ID,
			UserID:      principal.UserID,
			Odometer:    input.Odometer,
			TotalLiters: input.TotalLiters,
			LiterPrice:  input.LiterPrice,
			RefueledAt:  input.RefueledAt,
		}, history, now)
		if err != nil {
			return err
		}

		if err := tx.Refuels.Create(ctx, event); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: a refuel is already registered at %s", ErrConflict, input.RefueledAt.Format(time.RFC3339))
			}
			return err
		}

		reading, err := maintenance.NextReading(latestReading, vehicle.ID, input.Odometer, principal.UserID, now)
		if err != nil {
			return err
		}
		if err := tx.Readings.Create(ctx, reading); err != nil {
			return err
		}

		result.Refuel = event
		result.NextRefuel = maintenance.PredictNextRefuel(event, vehicle.TankCapacity)
		result.Alerts, err = currentAlerts(ctx, tx, vehicle.ID, input.Odometer, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.NextRefuel != nil {
		publish(ctx, s.deps.Notifier, s.deps.Log, notify.Notification{
			VehicleID: vehicle.ID,
			UserID:    vehicle.UserID,
			Kind:      notify.KindRefuelPrediction,
			Message:   fmt.Sprintf("next refuel expected around %s", result.NextRefuel.Format("02/01/2006")),
			Payload:   result.NextRefuel,
			At:        now,
		})
	}
	publishAlerts(ctx, s.deps, vehicle, result.Alerts, now)
	return &result, nil
}

func (s *RefuelService) loadHistory(ctx context.Context, tx *repository.Store, vehicle *model.Vehicle) (maintenance.RefuelHistory, *model.OdometerReading, error) {
	history := maintenance.RefuelHistory{TankCapacity: vehicle.TankCapacity}

	latestReading, err := tx.Readings.Latest(ctx, vehicle.ID)
	if err != nil {
		return history, nil, err
	}
	history.LatestOdometer = maintenance.LatestValue(latestReading)

	if history.Previous, err = tx.Refuels.Latest(ctx, vehicle.ID); err != nil {
		return history, nil, err
	}

	newest, err := tx.Refuels.LatestByDate(ctx, vehicle.ID)
	if err != nil {
		return history, nil, err
	}
	if newest != nil {
		history.LatestRefueledAt = &newest.RefueledAt
	}
	return history, latestReading, nil
}

func (s *RefuelService) List(ctx context.Context, principal model.Principal, vehicleID uuid.UUID) ([]model.RefuelEvent, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{allowDeleted: true})
	if err != nil {
		return nil, err
	}
	return s.deps.Store.Refuels.ListByVehicle(ctx, vehicle.ID)
}

type NextRefuel struct {
	Date         *time.Time          `json:"date"`
	LitersPerDay decimal.NullDecimal `json:"liters_per_day"`
	TankCapacity int                 `json:"tank_capacity"`
}

// Next predicts the next refuel from the latest one. Date is null when the
// consumption rate or tank capacity is unknown.
func (s *RefuelService) Next(ctx context.Context, principal model.Principal, vehicleID uuid.UUID) (*NextRefuel, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{})
	if err != nil {
		return nil, err
	}
	latest, err := s.deps.Store.Refuels.Latest(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	next := &NextRefuel{TankCapacity: vehicle.TankCapacity}
	if latest != nil {
		next.LitersPerDay = latest.LitersPerDay
		next.Date = maintenance.PredictNextRefuel(latest, vehicle.TankCapacity)
	}
	return next, nil
}
