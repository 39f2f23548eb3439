package model

import (
	"time"

	"github.com/google/uuid"
)

// OdometerReading is one immutable ledger entry. ID is a sequence and defines
// the per-vehicle order.
type OdometerReading struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Value      int64     `gorm:"not null" json:"value"`
	Delta      int64     `gorm:"not null;default:0" json:"delta"`
	RecordedBy uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OdometerReading) TableName() string {
	return "odometer_readings"
}
