package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
)

type OilChangeRepository struct {
	db *gorm.DB
}

func NewOilChangeRepository(db *gorm.DB) *OilChangeRepository {
	return &OilChangeRepository{db: db}
}

func (r *OilChangeRepository) Create(ctx context.Context, change *model.OilChange) error {
	return r.db.WithContext(ctx).Create(change).Error
}

func (r *OilChangeRepository) Latest(ctx context.Context, vehicleID uuid.UUID) (*model.OilChange, error) {
	var change model.OilChange
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("id DESC").
		First(&change).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &change, nil
}

func (r *OilChangeRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.OilChange, error) {
	var changes []model.OilChange
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("id DESC").
		Find(&changes).Error
	return changes, err
}

func (r *OilChangeRepository) ListBelowOdometer(ctx context.Context, vehicleID uuid.UUID, value int64) ([]model.OilChange, error) {
	var changes []model.OilChange
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND odometer < ?", vehicleID, value).
		Order("id ASC").
		Find(&changes).Error
	return changes, err
}

func (r *OilChangeRepository) AdvanceOdometer(ctx context.Context, ids []int64, value int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.OilChange{}).
		Where("id IN ? AND odometer < ?", ids, value).
		Update("odometer", value)
	if res.Error != nil {
		return 0, fmt.Errorf("advance oil change odometer: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *OilChangeRepository) TotalCost(ctx context.Context, vehicleID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&model.OilChange{}).
		Select("COALESCE(SUM(total_cost), 0)").
		Where("vehicle_id = ?", vehicleID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum oil change cost: %w", err)
	}
	return total, nil
}
