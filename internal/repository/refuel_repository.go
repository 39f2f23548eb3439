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

type RefuelRepository struct {
	db *gorm.DB
}

func NewRefuelRepository(db *gorm.DB) *RefuelRepository {
	return &RefuelRepository{db: db}
}

func (r *RefuelRepository) Create(ctx context.Context, event *model.RefuelEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Latest returns the most recently inserted refuel.
func (r *RefuelRepository) Latest(ctx context.Context, vehicleID uuid.UUID) (*model.RefuelEvent, error) {
	return r.first(ctx, vehicleID, "id DESC")
}

// LatestByDate returns the refuel with the newest timestamp.
func (r *RefuelRepository) LatestByDate(ctx context.Context, vehicleID uuid.UUID) (*model.RefuelEvent, error) {
	return r.first(ctx, vehicleID, "refueled_at DESC")
}

func (r *RefuelRepository) first(ctx context.Context, vehicleID uuid.UUID, order string) (*model.RefuelEvent, error) {
	var event model.RefuelEvent
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order(order).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *RefuelRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.RefuelEvent, error) {
	var events []model.RefuelEvent
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}

func (r *RefuelRepository) ListBelowOdometer(ctx context.Context, vehicleID uuid.UUID, value int64) ([]model.RefuelEvent, error) {
	var events []model.RefuelEvent
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND odometer < ?", vehicleID, value).
		Order("id ASC").
		Find(&events).Error
	return events, err
}

// AdvanceOdometer raises the odometer of the given rows to value. Rows that
// already sit at or above value are left alone.
func (r *RefuelRepository) AdvanceOdometer(ctx context.Context, ids []int64, value int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.RefuelEvent{}).
		Where("id IN ? AND odometer < ?", ids, value).
		Update("odometer", value)
	if res.Error != nil {
		return 0, fmt.Errorf("advance refuel odometer: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *RefuelRepository) TotalSpend(ctx context.Context, vehicleID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&model.RefuelEvent{}).
		Select("COALESCE(SUM(total_paid), 0)").
		Where("vehicle_id = ?", vehicleID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum refuel spend: %w", err)
	}
	return total, nil
}
