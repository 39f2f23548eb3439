package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
	"maintenance-service/internal/repository"
)

type OdometerService struct {
	deps Deps
	now  func() time.Time
}

func NewOdometerService(deps Deps) *OdometerService {
	return &OdometerService{deps: deps, now: deps.clock()}
}

type ReadingResult struct {
	Reading *model.OdometerReading `json:"reading"`
	Alerts  []maintenance.Alert    `json:"alerts"`
}

type CorrectionResult struct {
	Reading            *model.OdometerReading `json:"reading"`
	RefuelsAdvanced    int64                  `json:"refuels_advanced"`
	OilChangesAdvanced int64                  `json:"oil_changes_advanced"`
	Alerts             []maintenance.Alert    `json:"alerts"`
}

// Record appends a reading to the ledger.
func (s *OdometerService) Record(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, value int64) (*ReadingResult, error) {
	now := s.now()
	var (
		vehicle *model.Vehicle
		result  ReadingResult
	)

	err := s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		vehicle, err = ownedVehicle(ctx, tx, principal, vehicleID, vehicleAccess{lock: true})
		if err != nil {
			return err
		}

		result.Reading, err = appendReading(ctx, tx, vehicle.ID, value, principal.UserID, now)
		if err != nil {
			return err
		}

		result.Alerts, err = currentAlerts(ctx, tx, vehicle.ID, value, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishAlerts(ctx, s.deps, vehicle, result.Alerts, now)
	return &result, nil
}

// Correct appends the corrected value and advances every refuel and oil
// change still sitting below it. Nothing is written if any step fails.
func (s *OdometerService) Correct(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, value int64) (*CorrectionResult, error) {
	now := s.now()
	var (
		vehicle *model.Vehicle
		result  CorrectionResult
	)

	err := s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		vehicle, err = ownedVehicle(ctx, tx, principal, vehicleID, vehicleAccess{lock: true})
		if err != nil {
			return err
		}

		result.Reading, err = appendReading(ctx, tx, vehicle.ID, value, principal.UserID, now)
		if err != nil {
			return err
		}

		refuels, err := tx.Refuels.ListBelowOdometer(ctx, vehicle.ID, value)
		if err != nil {
			return err
		}
		changes, err := tx.OilChanges.ListBelowOdometer(ctx, vehicle.ID, value)
		if err != nil {
			return err
		}

		plan := maintenance.PlanCascade(refuels, changes, value)
		if result.RefuelsAdvanced, err = tx.Refuels.AdvanceOdometer(ctx, plan.RefuelIDs, plan.Value); err != nil {
			return err
		}
		if result.OilChangesAdvanced, err = tx.OilChanges.AdvanceOdometer(ctx, plan.OilChangeIDs, plan.Value); err != nil {
			return err
		}

		result.Alerts, err = currentAlerts(ctx, tx, vehicle.ID, value, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deps.Log.Info().
		Str("vehicle_id", vehicle.ID.String()).
		Int64("value", value).
		Int64("refuels_advanced", result.RefuelsAdvanced).
		Int64("oil_changes_advanced", result.OilChangesAdvanced).
		Msg("odometer corrected")

	publishAlerts(ctx, s.deps, vehicle, result.Alerts, now)
	return &result, nil
}

func (s *OdometerService) History(ctx context.Context, principal model.Principal, vehicleID uuid.UUID) ([]model.OdometerReading, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{allowDeleted: true})
	if err != nil {
		return nil, err
	}
	return s.deps.Store.Readings.ListByVehicle(ctx, vehicle.ID)
}

func appendReading(ctx context.Context, tx *repository.Store, vehicleID uuid.UUID, value int64, author uuid.UUID, at time.Time) (*model.OdometerReading, error) {
	latest, err := tx.Readings.Latest(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	reading, err := maintenance.NextReading(latest, vehicleID, value, author, at)
	if err != nil {
		return nil, err
	}
	if err := tx.Readings.Create(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func currentAlerts(ctx context.Context, store *repository.Store, vehicleID uuid.UUID, odometer int64, today time.Time) ([]maintenance.Alert, error) {
	last, err := store.OilChanges.Latest(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return maintenance.CheckAlerts(last, odometer, today), nil
}
