package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
)

// OdometerRepository only appends and reads; ledger rows are never updated.
type OdometerRepository struct {
	db *gorm.DB
}

func NewOdometerRepository(db *gorm.DB) *OdometerRepository {
	return &OdometerRepository{db: db}
}

func (r *OdometerRepository) Create(ctx context.Context, reading *model.OdometerReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *OdometerRepository) Latest(ctx context.Context, vehicleID uuid.UUID) (*model.OdometerReading, error) {
	var reading model.OdometerReading
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("id DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (r *OdometerRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.OdometerReading, error) {
	var readings []model.OdometerReading
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("id ASC").
		Find(&readings).Error
	return readings, err
}
