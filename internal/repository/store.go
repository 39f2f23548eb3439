package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Vehicles   *VehicleRepository
	Readings   *OdometerRepository
	Refuels    *RefuelRepository
	OilChanges *OilChangeRepository
	Services   *ScheduledServiceRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Vehicles:   NewVehicleRepository(db),
		Readings:   NewOdometerRepository(db),
		Refuels:    NewRefuelRepository(db),
		OilChanges: NewOilChangeRepository(db),
		Services:   NewScheduledServiceRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
