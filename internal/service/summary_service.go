package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
)

type SummaryService struct {
	deps Deps
	now  func() time.Time
}

func NewSummaryService(deps Deps) *SummaryService {
	return &SummaryService{deps: deps, now: deps.clock()}
}

type NextOilChange struct {
	Odometer int64     `json:"odometer"`
	Date     time.Time `json:"date"`
}

type VehicleSummary struct {
	Vehicle        *model.Vehicle          `json:"vehicle"`
	Odometer       *int64                  `json:"odometer"`
	FuelSpend      decimal.Decimal         `json:"fuel_spend"`
	OilChangeSpend decimal.Decimal         `json:"oil_change_spend"`
	ServiceSpend   decimal.Decimal         `json:"service_spend"`
	TotalSpend     decimal.Decimal         `json:"total_spend"`
	LastRefuel     *model.RefuelEvent      `json:"last_refuel"`
	NextRefuel     *time.Time              `json:"next_refuel"`
	LastOilChange  *model.OilChange        `json:"last_oil_change"`
	NextOilChange  *NextOilChange          `json:"next_oil_change"`
	NextService    *model.ScheduledService `json:"next_service"`
	Alerts         []maintenance.Alert     `json:"alerts"`
}

func (s *SummaryService) Summary(ctx context.Context, principal model.Principal, vehicleID uuid.UUID) (*VehicleSummary, error) {
	store := s.deps.Store
	vehicle, err := ownedVehicle(ctx, store, principal, vehicleID, vehicleAccess{allowDeleted: true})
	if err != nil {
		return nil, err
	}

	summary := &VehicleSummary{Vehicle: vehicle, Alerts: []maintenance.Alert{}}

	reading, err := store.Readings.Latest(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	summary.Odometer = maintenance.LatestValue(reading)

	if summary.FuelSpend, err = store.Refuels.TotalSpend(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	if summary.OilChangeSpend, err = store.OilChanges.TotalCost(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	if summary.ServiceSpend, err = store.Services.TotalCompletedCost(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	summary.TotalSpend = summary.FuelSpend.Add(summary.OilChangeSpend).Add(summary.ServiceSpend)

	if summary.LastRefuel, err = store.Refuels.Latest(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	summary.NextRefuel = maintenance.PredictNextRefuel(summary.LastRefuel, vehicle.TankCapacity)

	if summary.LastOilChange, err = store.OilChanges.Latest(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	if last := summary.LastOilChange; last != nil {
		summary.NextOilChange = &NextOilChange{Odometer: last.NextDueOdometer, Date: last.NextDueDate}
		if summary.Odometer != nil {
			summary.Alerts = append(summary.Alerts, maintenance.CheckAlerts(last, *summary.Odometer, s.now())...)
		}
	}

	if summary.NextService, err = store.Services.NextPending(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	return summary, nil
}
