package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"maintenance-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// LockForUpdate loads the vehicle with a row lock held until the surrounding
// transaction ends. Writers to the same vehicle queue up behind it.
func (r *VehicleRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("lock vehicle %s: %w", id, err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	if plate == "" {
		return nil, nil
	}
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).
		Where("plate = ?", plate).
		First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

type VehicleListFilter struct {
	IncludeDeleted bool
	Make           *string
	Model          *string
	Plate          *string
}

func (r *VehicleRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter VehicleListFilter) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.Make != nil {
		query = query.Where("make ILIKE ?", "%"+*filter.Make+"%")
	}
	if filter.Model != nil {
		query = query.Where("model ILIKE ?", "%"+*filter.Model+"%")
	}
	if filter.Plate != nil {
		query = query.Where("plate = ?", *filter.Plate)
	}

	if err := query.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
