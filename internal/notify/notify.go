package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Kind string

const (
	KindOilChangeAlert   Kind = "oil_change_alert"
	KindRefuelPrediction Kind = "refuel_prediction"
	KindServiceScheduled Kind = "service_scheduled"
	KindServiceCompleted Kind = "service_completed"
)

type Notification struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

// Notifier delivers notifications without any delivery guarantee. Callers
// log a returned error and carry on.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the log only.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, notification Notification) error {
	n.log.Info().
		Str("vehicle_id", notification.VehicleID.String()).
		Str("user_id", notification.UserID.String()).
		Str("kind", string(notification.Kind)).
		Msg(notification.Message)
	return nil
}
