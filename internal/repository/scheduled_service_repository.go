package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"maintenance-service/internal/model"
)

type ScheduledServiceRepository struct {
	db *gorm.DB
}

func NewScheduledServiceRepository(db *gorm.DB) *ScheduledServiceRepository {
	return &ScheduledServiceRepository{db: db}
}

func (r *ScheduledServiceRepository) Create(ctx context.Context, service *model.ScheduledService) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *ScheduledServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduledService, error) {
	var service model.ScheduledService
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &service, nil
}

// LockForUpdate keeps two completions of the same service from both
// spawning a successor.
func (r *ScheduledServiceRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*model.ScheduledService, error) {
	var service model.ScheduledService
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("lock service %s: %w", id, err)
	}
	return &service, nil
}

func (r *ScheduledServiceRepository) Update(ctx context.Context, service *model.ScheduledService) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *ScheduledServiceRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, completed *bool) ([]model.ScheduledService, error) {
	var services []model.ScheduledService
	query := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}
	err := query.Order("scheduled_date ASC").Find(&services).Error
	return services, err
}

// NextPending returns the earliest service that is still open.
func (r *ScheduledServiceRepository) NextPending(ctx context.Context, vehicleID uuid.UUID) (*model.ScheduledService, error) {
	var service model.ScheduledService
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND completed = ?", vehicleID, false).
		Order("scheduled_date ASC").
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *ScheduledServiceRepository) TotalCompletedCost(ctx context.Context, vehicleID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&model.ScheduledService{}).
		Select("COALESCE(SUM(cost), 0)").
		Where("vehicle_id = ? AND completed = ?", vehicleID, true).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum service cost: %w", err)
	}
	return total, nil
}
