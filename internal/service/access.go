package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"maintenance-service/internal/maintenance"
	"maintenance-service/internal/model"
	"maintenance-service/internal/notify"
	"maintenance-service/internal/repository"
)

// Deps is shared by every service.
type Deps struct {
	Store    *repository.Store
	Notifier notify.Notifier
	Log      zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

type vehicleAccess struct {
	allowDeleted bool
	lock         bool
}

// ownedVehicle loads a vehicle and checks that the principal owns it. Soft
// deleted vehicles are reported as missing unless allowDeleted is set.
func ownedVehicle(ctx context.Context, store *repository.Store, principal model.Principal, id uuid.UUID, access vehicleAccess) (*model.Vehicle, error) {
	var (
		vehicle *model.Vehicle
		err     error
	)
	if access.lock {
		vehicle, err = store.Vehicles.LockForUpdate(ctx, id)
	} else {
		vehicle, err = store.Vehicles.GetByID(ctx, id)
	}
	if err != nil {
		return nil, translateError(err)
	}

	if !principal.Owns(vehicle.UserID) {
		return nil, ErrPermissionDenied
	}
	if vehicle.IsDeleted && !access.allowDeleted {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

// publish sends a notification and only logs failures.
func publish(ctx context.Context, notifier notify.Notifier, log zerolog.Logger, n notify.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("notification not sent")
	}
}

func publishAlerts(ctx context.Context, d Deps, vehicle *model.Vehicle, alerts []maintenance.Alert, at time.Time) {
	for _, alert := range alerts {
		publish(ctx, d.Notifier, d.Log, notify.Notification{
			VehicleID: vehicle.ID,
			UserID:    vehicle.UserID,
			Kind:      notify.KindOilChangeAlert,
			Message:   alert.Message,
			Payload:   alert,
			At:        at,
		})
	}
}
