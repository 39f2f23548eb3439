package maintenance

import (
	"time"

	"github.com/google/uuid"

	"maintenance-service/internal/model"
)

// MaxOdometer is the largest odometer value any record accepts.
const MaxOdometer int64 = 9_999_999

func checkOdometer(field string, value int64) error {
	if value < 0 {
		return fieldError(ErrInvalidValue, field, "odometer must be a non-negative integer, got %d", value)
	}
	if value > MaxOdometer {
		return fieldError(ErrInvalidValue, field, "odometer cannot exceed %d, got %d", MaxOdometer, value)
	}
	return nil
}

// LatestValue returns the value of the most recently inserted reading.
func LatestValue(latest *model.OdometerReading) *int64 {
	if latest == nil {
		return nil
	}
	value := latest.Value
	return &value
}

// NextReading builds the ledger entry that follows latest. Readings are never
// edited, so a correction is always a new entry with a non-negative delta.
func NextReading(latest *model.OdometerReading, vehicleID uuid.UUID, value int64, author uuid.UUID, at time.Time) (*model.OdometerReading, error) {
	if err := checkOdometer("value", value); err != nil {
		return nil, err
	}

	var delta int64
	if latest != nil {
		if value < latest.Value {
			return nil, fieldError(ErrInvalidValue, "value",
				"odometer (%d) cannot be lower than the last recorded value (%d)", value, latest.Value)
		}
		delta = value - latest.Value
	}

	return &model.OdometerReading{
		VehicleID:  vehicleID,
		Value:      value,
		Delta:      delta,
		RecordedBy: author,
		RecordedAt: at,
	}, nil
}

// ValidateSequence reports whether readings, in insertion order, never decrease.
func ValidateSequence(readings []model.OdometerReading) bool {
	for i := 1; i < len(readings); i++ {
		if readings[i].Value < readings[i-1].Value {
			return false
		}
	}
	return true
}
