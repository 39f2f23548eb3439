package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL,
		plate VARCHAR(7) NOT NULL UNIQUE,
		make VARCHAR(255) NOT NULL,
		model VARCHAR(255) NOT NULL,
		color VARCHAR(255) NOT NULL,
		year INTEGER NOT NULL,
		tank_capacity INTEGER NOT NULL DEFAULT 0 CHECK (tank_capacity >= 0),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_user_id ON vehicles (user_id);`,
	`CREATE TABLE IF NOT EXISTS odometer_readings (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id UUID NOT NULL REFERENCES vehicles (id),
		value BIGINT NOT NULL CHECK (value >= 0),
		delta BIGINT NOT NULL DEFAULT 0 CHECK (delta >= 0),
		recorded_by UUID NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_odometer_readings_vehicle ON odometer_readings (vehicle_id, id DESC);`,
	`CREATE TABLE IF NOT EXISTS refuel_events (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id UUID NOT NULL REFERENCES vehicles (id),
		user_id UUID NOT NULL,
		odometer BIGINT NOT NULL CHECK (odometer >= 0),
		liter_price NUMERIC(10,2) NOT NULL CHECK (liter_price > 0),
		total_liters NUMERIC(10,2) NOT NULL CHECK (total_liters > 0),
		total_paid NUMERIC(10,2) NOT NULL CHECK (total_paid <= 999.99),
		refueled_at TIMESTAMPTZ NOT NULL,
		distance_since_last BIGINT NOT NULL DEFAULT 0,
		days_since_previous BIGINT,
		liters_per_day NUMERIC(10,2),
		km_per_day BIGINT,
		fuel_economy NUMERIC(10,2),
		cumulative_spend NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT idx_refuel_vehicle_time UNIQUE (vehicle_id, refueled_at)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_refuel_events_vehicle_odometer ON refuel_events (vehicle_id, odometer);`,
	`CREATE TABLE IF NOT EXISTS oil_changes (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id UUID NOT NULL REFERENCES vehicles (id),
		user_id UUID NOT NULL,
		odometer BIGINT NOT NULL CHECK (odometer >= 0),
		odometer_delta BIGINT NOT NULL DEFAULT 0,
		oil_type VARCHAR(3) NOT NULL CHECK (oil_type IN ('5K', '10K')),
		changed_at TIMESTAMPTZ NOT NULL,
		total_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		next_due_odometer BIGINT NOT NULL,
		next_due_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT idx_oil_vehicle_date UNIQUE (vehicle_id, changed_at)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_oil_changes_vehicle_odometer ON oil_changes (vehicle_id, odometer);`,
	`CREATE TABLE IF NOT EXISTS scheduled_services (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles (id),
		user_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		scheduled_date TIMESTAMPTZ NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		previous_service_id UUID REFERENCES scheduled_services (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_services_vehicle ON scheduled_services (vehicle_id, scheduled_date);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_scheduled_services_updated_at') THEN
			CREATE TRIGGER trg_scheduled_services_updated_at
				BEFORE UPDATE ON scheduled_services
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
