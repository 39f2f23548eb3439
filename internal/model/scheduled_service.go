package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ScheduledService struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Description       string          `gorm:"type:text" json:"description"`
	ScheduledDate     time.Time       `gorm:"not null" json:"scheduled_date"`
	Completed         bool            `gorm:"not null;default:false" json:"completed"`
	CompletedAt       *time.Time      `json:"completed_at"`
	Cost              decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"cost"`
	PreviousServiceID *uuid.UUID      `gorm:"type:uuid" json:"previous_service_id"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduledService) TableName() string {
	return "scheduled_services"
}

func (s *ScheduledService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
