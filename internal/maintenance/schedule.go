package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/looplab/fsm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"maintenance-service/internal/model"
)

const (
	ServiceStateScheduled = "scheduled"
	ServiceStateCompleted = "completed"

	serviceEventComplete = "complete"
)

// recurrence maps a normalized service name to the gap before its next
// occurrence. Names not listed here do not repeat.
var recurrence = map[string]time.Duration{
	"Oil Change":         180 * 24 * time.Hour,
	"General Inspection": 365 * 24 * time.Hour,
}

// NormalizeServiceName collapses whitespace and title-cases the name.
func NormalizeServiceName(name string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
}

// RecurrenceInterval reports the interval for a recurring service name.
func RecurrenceInterval(name string) (time.Duration, bool) {
	interval, ok := recurrence[name]
	return interval, ok
}

func ServiceState(s *model.ScheduledService) string {
	if s.Completed {
		return ServiceStateCompleted
	}
	return ServiceStateScheduled
}

func newServiceLifecycle(initial string) *fsm.FSM {
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: serviceEventComplete, Src: []string{ServiceStateScheduled}, Dst: ServiceStateCompleted},
		},
		fsm.Callbacks{},
	)
}

// CompleteService marks s completed at the given time and returns the next
// occurrence when the service is recurring. The successor has no id yet.
func CompleteService(ctx context.Context, s *model.ScheduledService, at time.Time) (*model.ScheduledService, error) {
	lifecycle := newServiceLifecycle(ServiceState(s))
	if !lifecycle.Can(serviceEventComplete) {
		return nil, fieldError(ErrAlreadyCompleted, "completed", "service %q is already completed", s.Name)
	}
	if err := lifecycle.Event(ctx, serviceEventComplete); err != nil {
		return nil, err
	}

	completedAt := at
	s.Completed = lifecycle.Current() == ServiceStateCompleted
	s.CompletedAt = &completedAt

	interval, ok := RecurrenceInterval(s.Name)
	if !ok {
		return nil, nil
	}

	previousID := s.ID
	return &model.ScheduledService{
		VehicleID:         s.VehicleID,
		UserID:            s.UserID,
		Name:              s.Name,
		Description:       s.Description,
		ScheduledDate:     s.ScheduledDate.Add(interval),
		Cost:              s.Cost,
		PreviousServiceID: &previousID,
	}, nil
}
