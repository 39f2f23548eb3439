package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
	"maintenance-service/internal/notify"
	"maintenance-service/internal/repository"
)

type ScheduleService struct {
	deps Deps
	now  func() time.Time
}

func NewScheduleService(deps Deps) *ScheduleService {
	return &ScheduleService{deps: deps, now: deps.clock()}
}

type ScheduleServiceInput struct {
	Name          string
	Description   string
	ScheduledDate time.Time
	Cost          decimal.Decimal
}

type CompleteResult struct {
	Service *model.ScheduledService `json:"service"`
	Next    *model.ScheduledService `json:"next"`
}

func (s *ScheduleService) Schedule(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, input ScheduleServiceInput) (*model.ScheduledService, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{})
	if err != nil {
		return nil, err
	}

	name := maintenance.NormalizeServiceName(input.Name)
	if name == "" {
		return nil, &maintenance.FieldError{Field: "name", Message: "service name is required", Kind: maintenance.ErrInvalidValue}
	}
	if input.Cost.IsNegative() {
		return nil, &maintenance.FieldError{Field: "cost", Message: "cost cannot be negative", Kind: maintenance.ErrInvalidValue}
	}
	if err := maintenance.CheckCents("cost", input.Cost); err != nil {
		return nil, err
	}

	service := &model.ScheduledService{
		VehicleID:     vehicle.ID,
		UserID:        principal.UserID,
		Name:          name,
		Description:   input.Description,
		ScheduledDate: input.ScheduledDate,
		Cost:          input.Cost,
	}
	if err := s.deps.Store.Services.Create(ctx, service); err != nil {
		return nil, translateError(err)
	}

	s.announce(ctx, vehicle, service, notify.KindServiceScheduled,
		fmt.Sprintf("%s scheduled for %s", service.Name, service.ScheduledDate.Format("02/01/2006")))
	return service, nil
}

func (s *ScheduleService) List(ctx context.Context, principal model.Principal, vehicleID uuid.UUID, completed *bool) ([]model.ScheduledService, error) {
	vehicle, err := ownedVehicle(ctx, s.deps.Store, principal, vehicleID, vehicleAccess{allowDeleted: true})
	if err != nil {
		return nil, err
	}
	return s.deps.Store.Services.ListByVehicle(ctx, vehicle.ID, completed)
}

// Complete closes a service and, for recurring ones, schedules the next
// occurrence in the same transaction.
func (s *ScheduleService) Complete(ctx context.Context, principal model.Principal, serviceID uuid.UUID) (*CompleteResult, error) {
	now := s.now()
	var (
		vehicle *model.Vehicle
		result  CompleteResult
	)

	err := s.deps.Store.Transaction(ctx, func(tx *repository.Store) error {
		service, err := tx.Services.LockForUpdate(ctx, serviceID)
		if err != nil {
			return translateError(err)
		}
		vehicle, err = ownedVehicle(ctx, tx, principal, service.VehicleID, vehicleAccess{})
		if err != nil {
			return err
		}

		next, err := maintenance.CompleteService(ctx, service, now)
		if err != nil {
			return err
		}
		if err := tx.Services.Update(ctx, service); err != nil {
			return err
		}
		if next != nil {
			if err := tx.Services.Create(ctx, next); err != nil {
				return translateError(err)
			}
		}

		result.Service = service
		result.Next = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(ctx, vehicle, result.Service, notify.KindServiceCompleted, fmt.Sprintf("%s completed", result.Service.Name))
	if result.Next != nil {
		s.announce(ctx, vehicle, result.Next, notify.KindServiceScheduled,
			fmt.Sprintf("%s scheduled for %s", result.Next.Name, result.Next.ScheduledDate.Format("02/01/2006")))
	}
	return &result, nil
}

// announce logs a history entry for the service and notifies the owner.
func (s *ScheduleService) announce(ctx context.Context, vehicle *model.Vehicle, service *model.ScheduledService, kind notify.Kind, message string) {
	s.deps.Log.Info().
		Str("vehicle_id", vehicle.ID.String()).
		Str("service_id", service.ID.String()).
		Str("kind", string(kind)).
		Msg(message)

	publish(ctx, s.deps.Notifier, s.deps.Log, notify.Notification{
		VehicleID: vehicle.ID,
		UserID:    vehicle.UserID,
		Kind:      kind,
		Message:   message,
		Payload:   service,
		At:        s.now(),
	})
}
