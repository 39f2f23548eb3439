package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefuelEvent struct {
	ID                int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID         uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_refuel_vehicle_time" json:"vehicle_id"`
	UserID            uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	Odometer          int64               `gorm:"not null" json:"odometer"`
	LiterPrice        decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"liter_price"`
	TotalLiters       decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"total_liters"`
	TotalPaid         decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"total_paid"`
	RefueledAt        time.Time           `gorm:"not null;uniqueIndex:idx_refuel_vehicle_time" json:"refueled_at"`
	DistanceSinceLast int64               `gorm:"not null;default:0" json:"distance_since_last"`
	DaysSincePrevious *int64              `json:"days_since_previous"`
	LitersPerDay      decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"liters_per_day"`
	KmPerDay          *int64              `json:"km_per_day"`
	FuelEconomy       decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"fuel_economy"`
	CumulativeSpend   decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0" json:"cumulative_spend"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (RefuelEvent) TableName() string {
	return "refuel_events"
}
