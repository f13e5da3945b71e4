package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmn/autocare-server/internal/models"
)

// Vehicle repository methods
func (r *SQLRepository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	query := r.db.Rebind(`
		INSERT INTO vehicles (id, account_id, type, brand, model, year, plate, mileage, mileage_date,
			photo, renavam, chassis, insurer, policy_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	if vehicle.MileageDate.IsZero() {
		vehicle.MileageDate = now
	}

	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID, vehicle.AccountID, vehicle.Type, vehicle.Brand, vehicle.Model, vehicle.Year,
		vehicle.Plate, vehicle.Mileage, vehicle.MileageDate, vehicle.Photo, vehicle.Renavam,
		vehicle.Chassis, vehicle.Insurer, vehicle.PolicyUntil, vehicle.CreatedAt, vehicle.UpdatedAt)

	return err
}

func (r *SQLRepository) GetVehicle(ctx context.Context, accountID, id string) (*models.Vehicle, error) {
	query := r.db.Rebind(`SELECT * FROM vehicles WHERE id = ? AND account_id = ?`)

	var vehicle models.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Vehicle not found
		}
		return nil, err
	}

	return &vehicle, nil
}

func (r *SQLRepository) ListVehicles(ctx context.Context, accountID string) ([]models.Vehicle, error) {
	query := r.db.Rebind(`SELECT * FROM vehicles WHERE account_id = ? ORDER BY created_at DESC`)

	var vehicles []models.Vehicle
	err := r.db.SelectContext(ctx, &vehicles, query, accountID)
	if err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *SQLRepository) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	query := r.db.Rebind(`
		UPDATE vehicles SET type = ?, brand = ?, model = ?, year = ?, plate = ?, mileage = ?,
			mileage_date = ?, photo = ?, renavam = ?, chassis = ?, insurer = ?, policy_until = ?,
			updated_at = ?
		WHERE id = ? AND account_id = ?
	`)

	vehicle.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query,
		vehicle.Type, vehicle.Brand, vehicle.Model, vehicle.Year, vehicle.Plate, vehicle.Mileage,
		vehicle.MileageDate, vehicle.Photo, vehicle.Renavam, vehicle.Chassis, vehicle.Insurer,
		vehicle.PolicyUntil, vehicle.UpdatedAt, vehicle.ID, vehicle.AccountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

// DeleteVehicle removes a vehicle together with its maintenance and tax
// records in one transaction, and clears the current-vehicle pointer
// when it pointed at the deleted vehicle.
func (r *SQLRepository) DeleteVehicle(ctx context.Context, accountID, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM maintenance_records WHERE vehicle_id = ? AND account_id = ?`), id, accountID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM tax_records WHERE vehicle_id = ? AND account_id = ?`), id, accountID)
	if err != nil {
		return err
	}

	// Deleting the current vehicle clears the pointer; no auto-select
	// of another vehicle.
	_, err = tx.ExecContext(ctx,
		r.db.Rebind(`UPDATE settings SET current_vehicle_id = NULL, updated_at = ? WHERE account_id = ? AND current_vehicle_id = ?`),
		time.Now().UTC(), accountID, id)
	if err != nil {
		return err
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM vehicles WHERE id = ? AND account_id = ?`), id, accountID)
	if err != nil {
		return err
	}
	if err = requireRowsAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLRepository) CountVehicles(ctx context.Context, accountID string) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM vehicles WHERE account_id = ?`)

	var count int
	err := r.db.GetContext(ctx, &count, query, accountID)
	return count, err
}

// UpdateVehicleMileage unconditionally overwrites the mileage and its
// as-of date; monotonicity is the caller's decision.
func (r *SQLRepository) UpdateVehicleMileage(ctx context.Context, accountID, id string, mileage int, date time.Time) error {
	query := r.db.Rebind(`UPDATE vehicles SET mileage = ?, mileage_date = ?, updated_at = ? WHERE id = ? AND account_id = ?`)

	res, err := r.db.ExecContext(ctx, query, mileage, date, time.Now().UTC(), id, accountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

// Category repository methods
func (r *SQLRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := r.db.Rebind(`
		INSERT INTO categories (id, account_id, name, color, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.AccountID, category.Name, category.Color, category.Icon, category.CreatedAt)

	return err
}

func (r *SQLRepository) GetCategory(ctx context.Context, accountID, id string) (*models.Category, error) {
	query := r.db.Rebind(`SELECT * FROM categories WHERE id = ? AND account_id = ?`)

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Category not found
		}
		return nil, err
	}

	return &category, nil
}

func (r *SQLRepository) ListCategories(ctx context.Context, accountID string) ([]models.Category, error) {
	query := r.db.Rebind(`SELECT * FROM categories WHERE account_id = ? ORDER BY name ASC`)

	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, query, accountID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *SQLRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := r.db.Rebind(`UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ? AND account_id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		category.Name, category.Color, category.Icon, category.ID, category.AccountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

// DeleteCategory refuses to delete a category that maintenance records
// still reference.
func (r *SQLRepository) DeleteCategory(ctx context.Context, accountID, id string) error {
	check := r.db.Rebind(`SELECT COUNT(*) FROM maintenance_records WHERE category_id = ? AND account_id = ?`)

	var inUse int
	if err := r.db.GetContext(ctx, &inUse, check, id, accountID); err != nil {
		return err
	}
	if inUse > 0 {
		return models.ErrCategoryInUse
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM categories WHERE id = ? AND account_id = ?`), id, accountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

func (r *SQLRepository) CountCategories(ctx context.Context, accountID string) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM categories WHERE account_id = ?`)

	var count int
	err := r.db.GetContext(ctx, &count, query, accountID)
	return count, err
}
