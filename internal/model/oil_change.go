package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OilType string

const (
	OilTypeShort OilType = "5K"
	OilTypeLong  OilType = "10K"
)

func (t OilType) Valid() bool {
	return t == OilTypeShort || t == OilTypeLong
}

// OilChange keeps the next-due values computed at registration; a later
// odometer correction moves Odometer but leaves them untouched.
type OilChange struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_oil_vehicle_date" json:"vehicle_id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Odometer        int64           `gorm:"not null" json:"odometer"`
	OdometerDelta   int64           `gorm:"not null;default:0" json:"odometer_delta"`
	OilType         OilType         `gorm:"type:varchar(3);not null" json:"oil_type"`
	ChangedAt       time.Time       `gorm:"not null;uniqueIndex:idx_oil_vehicle_date" json:"changed_at"`
	TotalCost       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_cost"`
	NextDueOdometer int64           `gorm:"not null" json:"next_due_odometer"`
	NextDueDate     time.Time       `gorm:"not null" json:"next_due_date"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (OilChange) TableName() string {
	return "oil_changes"
}
