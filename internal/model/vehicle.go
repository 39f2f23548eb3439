package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Plate        string    `gorm:"type:varchar(7);uniqueIndex;not null" json:"plate"`
	Make         string    `gorm:"type:varchar(255);not null" json:"make"`
	Model        string    `gorm:"type:varchar(255);not null" json:"model"`
	Color        string    `gorm:"type:varchar(255);not null" json:"color"`
	Year         int       `gorm:"not null" json:"year"`
	TankCapacity int       `gorm:"not null;default:0" json:"tank_capacity"`
	IsDeleted    bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
