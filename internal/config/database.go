package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SetupDatabase initializes the database connection for the configured
// driver and applies the schema.
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Database.Driver, cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.Driver == "sqlite3" {
		// SQLite allows a single writer; keep one connection so writes
		// never contend inside the pool.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database. The DDL
// sticks to types both SQLite and PostgreSQL accept.
func createTables(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(10) NOT NULL,
			must_change_password BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id VARCHAR(36) PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			type VARCHAR(32) NOT NULL,
			brand VARCHAR(64) NOT NULL,
			model VARCHAR(64) NOT NULL,
			year INTEGER NOT NULL,
			plate VARCHAR(16) NOT NULL DEFAULT '',
			mileage INTEGER NOT NULL DEFAULT 0,
			mileage_date TIMESTAMP NOT NULL,
			photo TEXT,
			renavam VARCHAR(32),
			chassis VARCHAR(32),
			insurer VARCHAR(64),
			policy_until VARCHAR(32),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_records (
			id VARCHAR(36) PRIMARY KEY,
			vehicle_id VARCHAR(36) NOT NULL,
			account_id VARCHAR(36) NOT NULL,
			category_id VARCHAR(36),
			service_type VARCHAR(128) NOT NULL,
			date TIMESTAMP NOT NULL,
			mileage INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			location VARCHAR(255) NOT NULL DEFAULT '',
			cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			next_due_mileage INTEGER,
			next_due_date TIMESTAMP,
			photo TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tax_records (
			id VARCHAR(36) PRIMARY KEY,
			vehicle_id VARCHAR(36) NOT NULL,
			account_id VARCHAR(36) NOT NULL,
			year INTEGER NOT NULL,
			kind VARCHAR(10) NOT NULL,
			ipva_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			licensing_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			due_date TIMESTAMP NOT NULL,
			status VARCHAR(10) NOT NULL,
			payment_date TIMESTAMP,
			payment_method VARCHAR(32),
			installments INTEGER NOT NULL DEFAULT 0,
			paid_installments INTEGER NOT NULL DEFAULT 0,
			documents TEXT,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(36) PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			name VARCHAR(64) NOT NULL,
			color VARCHAR(16) NOT NULL DEFAULT '',
			icon VARCHAR(32) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			account_id VARCHAR(36) PRIMARY KEY,
			dark_mode BOOLEAN NOT NULL DEFAULT FALSE,
			notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			maintenance_alert_km INTEGER NOT NULL DEFAULT 1000,
			tax_alert_days INTEGER NOT NULL DEFAULT 30,
			current_vehicle_id VARCHAR(36),
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS read_notifications (
			id VARCHAR(36) NOT NULL,
			account_id VARCHAR(36) NOT NULL,
			read_at TIMESTAMP NOT NULL,
			PRIMARY KEY (id, account_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_account ON vehicles(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle ON maintenance_records(vehicle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_account ON maintenance_records(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tax_vehicle ON tax_records(vehicle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tax_account ON tax_records(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_account ON categories(account_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
