package maintenance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/model"
)

const (
	ShortOilInterval int64 = 5000
	LongOilInterval  int64 = 10000

	OilChangeValidity = 180 * 24 * time.Hour

	MileageAlertWindow int64 = 500
	DateAlertWindow          = 30 * 24 * time.Hour
)

type AlertKind string

const (
	AlertKindMileage AlertKind = "mileage"
	AlertKindDate    AlertKind = "date"
)

type AlertLevel string

const (
	AlertLevelUpcoming AlertLevel = "upcoming"
	AlertLevelOverdue  AlertLevel = "overdue"
)

type Alert struct {
	Kind        AlertKind  `json:"kind"`
	Level       AlertLevel `json:"level"`
	Message     string     `json:"message"`
	DueOdometer int64      `json:"due_odometer,omitempty"`
	ExcessKm    int64      `json:"excess_km,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DaysOverdue int        `json:"days_overdue,omitempty"`
}

func OilInterval(oilType model.OilType) int64 {
	if oilType == model.OilTypeShort {
		return ShortOilInterval
	}
	return LongOilInterval
}

// NextDue projects the odometer and date of the change after one done at
// odometer on changedAt.
func NextDue(odometer int64, oilType model.OilType, changedAt time.Time) (int64, time.Time) {
	return odometer + OilInterval(oilType), changedAt.Add(OilChangeValidity)
}

type OilChangeInput struct {
	VehicleID uuid.UUID
	UserID    uuid.UUID
	Odometer  int64
	OilType   model.OilType
	ChangedAt time.Time
	TotalCost decimal.Decimal
}

// RegisterChange validates a new oil change against the previous one and the
// ledger, then fills in its next-due projection.
func RegisterChange(in OilChangeInput, previous *model.OilChange, latestOdometer *int64, now time.Time) (*model.OilChange, error) {
	if err := checkOdometer("odometer", in.Odometer); err != nil {
		return nil, err
	}
	if !in.OilType.Valid() {
		return nil, fieldError(ErrInvalidValue, "oil_type", "oil type must be %s or %s", model.OilTypeShort, model.OilTypeLong)
	}
	if in.TotalCost.IsNegative() {
		return nil, fieldError(ErrInvalidValue, "total_cost", "total cost cannot be negative")
	}
	if err := CheckCents("total_cost", in.TotalCost); err != nil {
		return nil, err
	}
	if in.ChangedAt.After(now) {
		return nil, fieldError(ErrFutureDate, "changed_at", "oil changes cannot be registered with a future date")
	}

	var delta int64
	if latestOdometer != nil {
		if in.Odometer < *latestOdometer {
			return nil, fieldError(ErrOdometerRegression, "odometer",
				"odometer (%d) cannot be lower than the last recorded value (%d)", in.Odometer, *latestOdometer)
		}
		delta = in.Odometer - *latestOdometer
	}

	if previous != nil && len(CheckAlerts(previous, in.Odometer, in.ChangedAt)) == 0 {
		return nil, fieldError(ErrChangeNotDue, "odometer",
			"oil change not needed yet: next change due at %d km or on %s",
			previous.NextDueOdometer, previous.NextDueDate.Format("02/01/2006"))
	}

	nextOdometer, nextDate := NextDue(in.Odometer, in.OilType, in.ChangedAt)
	return &model.OilChange{
		VehicleID:       in.VehicleID,
		UserID:          in.UserID,
		Odometer:        in.Odometer,
		OdometerDelta:   delta,
		OilType:         in.OilType,
		ChangedAt:       in.ChangedAt,
		TotalCost:       in.TotalCost,
		NextDueOdometer: nextOdometer,
		NextDueDate:     nextDate,
	}, nil
}

// CheckAlerts compares the current odometer and day against the projection of
// the last oil change. The mileage alert, if any, comes first.
func CheckAlerts(last *model.OilChange, currentOdometer int64, today time.Time) []Alert {
	if last == nil {
		return nil
	}

	var alerts []Alert

	due := last.NextDueOdometer
	if currentOdometer >= due-MileageAlertWindow {
		if currentOdometer < due {
			alerts = append(alerts, Alert{
				Kind:        AlertKindMileage,
				Level:       AlertLevelUpcoming,
				Message:     fmt.Sprintf("less than %d km left until the next oil change (%d km)", MileageAlertWindow, due),
				DueOdometer: due,
			})
		} else {
			excess := currentOdometer - due
			alerts = append(alerts, Alert{
				Kind:        AlertKindMileage,
				Level:       AlertLevelOverdue,
				Message:     fmt.Sprintf("oil change is overdue, you have exceeded it by %d km", excess),
				DueOdometer: due,
				ExcessKm:    excess,
			})
		}
	}

	day := truncateToDay(today)
	dueDay := truncateToDay(last.NextDueDate)
	if !day.Before(dueDay.Add(-DateAlertWindow)) {
		formatted := dueDay.Format("02/01/2006")
		if day.Before(dueDay) {
			alerts = append(alerts, Alert{
				Kind:    AlertKindDate,
				Level:   AlertLevelUpcoming,
				Message: fmt.Sprintf("oil change is close to its due date (%s)", formatted),
				DueDate: &dueDay,
			})
		} else {
			overdue := int(day.Sub(dueDay).Hours() / 24)
			alerts = append(alerts, Alert{
				Kind:        AlertKindDate,
				Level:       AlertLevelOverdue,
				Message:     fmt.Sprintf("oil change is %d days overdue (%s)", overdue, formatted),
				DueDate:     &dueDay,
				DaysOverdue: overdue,
			})
		}
	}

	return alerts
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
