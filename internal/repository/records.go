package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmn/autocare-server/internal/models"
)

// Maintenance record repository methods
func (r *SQLRepository) CreateMaintenance(ctx context.Context, record *models.MaintenanceRecord) error {
	query := r.db.Rebind(`
		INSERT INTO maintenance_records (id, vehicle_id, account_id, category_id, service_type, date,
			mileage, description, location, cost, next_due_mileage, next_due_date, photo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.VehicleID, record.AccountID, record.CategoryID, record.ServiceType,
		record.Date, record.Mileage, record.Description, record.Location, record.Cost,
		record.NextDueMileage, record.NextDueDate, record.Photo, record.CreatedAt, record.UpdatedAt)

	return err
}

func (r *SQLRepository) GetMaintenance(ctx context.Context, accountID, id string) (*models.MaintenanceRecord, error) {
	query := r.db.Rebind(`SELECT * FROM maintenance_records WHERE id = ? AND account_id = ?`)

	var record models.MaintenanceRecord
	err := r.db.GetContext(ctx, &record, query, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Record not found
		}
		return nil, err
	}

	return &record, nil
}

func (r *SQLRepository) ListMaintenanceByVehicle(ctx context.Context, accountID, vehicleID string) ([]models.MaintenanceRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM maintenance_records
		WHERE vehicle_id = ? AND account_id = ?
		ORDER BY date DESC
	`)

	var records []models.MaintenanceRecord
	err := r.db.SelectContext(ctx, &records, query, vehicleID, accountID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *SQLRepository) UpdateMaintenance(ctx context.Context, record *models.MaintenanceRecord) error {
	query := r.db.Rebind(`
		UPDATE maintenance_records SET category_id = ?, service_type = ?, date = ?, mileage = ?,
			description = ?, location = ?, cost = ?, next_due_mileage = ?, next_due_date = ?,
			photo = ?, updated_at = ?
		WHERE id = ? AND account_id = ?
	`)

	record.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query,
		record.CategoryID, record.ServiceType, record.Date, record.Mileage, record.Description,
		record.Location, record.Cost, record.NextDueMileage, record.NextDueDate, record.Photo,
		record.UpdatedAt, record.ID, record.AccountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

func (r *SQLRepository) DeleteMaintenance(ctx context.Context, accountID, id string) error {
	query := r.db.Rebind(`DELETE FROM maintenance_records WHERE id = ? AND account_id = ?`)

	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

func (r *SQLRepository) ListMaintenanceByAccount(ctx context.Context, accountID string) ([]models.MaintenanceRecord, error) {
	query := r.db.Rebind(`SELECT * FROM maintenance_records WHERE account_id = ? ORDER BY date DESC`)

	var records []models.MaintenanceRecord
	err := r.db.SelectContext(ctx, &records, query, accountID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// UpcomingMaintenance returns records whose next-due mileage lies in
// the half-open window (currentMileage, currentMileage+alertDistance].
// Records with no next-due mileage are excluded. A record due exactly
// at the current mileage is in neither the upcoming nor the overdue
// list; that boundary is deliberate.
func (r *SQLRepository) UpcomingMaintenance(ctx context.Context, accountID, vehicleID string, currentMileage, alertDistance int) ([]models.MaintenanceRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM maintenance_records
		WHERE vehicle_id = ? AND account_id = ?
			AND next_due_mileage IS NOT NULL
			AND next_due_mileage > ? AND next_due_mileage <= ?
		ORDER BY next_due_mileage ASC
	`)

	var records []models.MaintenanceRecord
	err := r.db.SelectContext(ctx, &records, query,
		vehicleID, accountID, currentMileage, currentMileage+alertDistance)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// OverdueMaintenance returns records whose next-due mileage is strictly
// below the current mileage, ascending.
func (r *SQLRepository) OverdueMaintenance(ctx context.Context, accountID, vehicleID string, currentMileage int) ([]models.MaintenanceRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM maintenance_records
		WHERE vehicle_id = ? AND account_id = ?
			AND next_due_mileage IS NOT NULL
			AND next_due_mileage < ?
		ORDER BY next_due_mileage ASC
	`)

	var records []models.MaintenanceRecord
	err := r.db.SelectContext(ctx, &records, query, vehicleID, accountID, currentMileage)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Tax record repository methods
func (r *SQLRepository) CreateTaxRecord(ctx context.Context, record *models.TaxRecord) error {
	query := r.db.Rebind(`
		INSERT INTO tax_records (id, vehicle_id, account_id, year, kind, ipva_value, licensing_value,
			total_value, due_date, status, payment_date, payment_method, installments,
			paid_installments, documents, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Status == "" {
		record.Status = models.TaxStatusPending
	}

	// The total is always derived from the two components.
	record.TotalValue = record.IPVAValue + record.LicensingValue

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.VehicleID, record.AccountID, record.Year, record.Kind,
		record.IPVAValue, record.LicensingValue, record.TotalValue, record.DueDate, record.Status,
		record.PaymentDate, record.PaymentMethod, record.Installments, record.PaidInstallments,
		record.Documents, record.Notes, record.CreatedAt, record.UpdatedAt)

	return err
}

func (r *SQLRepository) GetTaxRecord(ctx context.Context, accountID, id string) (*models.TaxRecord, error) {
	query := r.db.Rebind(`SELECT * FROM tax_records WHERE id = ? AND account_id = ?`)

	var record models.TaxRecord
	err := r.db.GetContext(ctx, &record, query, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Record not found
		}
		return nil, err
	}

	return &record, nil
}

func (r *SQLRepository) ListTaxRecordsByVehicle(ctx context.Context, accountID, vehicleID string) ([]models.TaxRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM tax_records
		WHERE vehicle_id = ? AND account_id = ?
		ORDER BY year DESC
	`)

	var records []models.TaxRecord
	err := r.db.SelectContext(ctx, &records, query, vehicleID, accountID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *SQLRepository) UpdateTaxRecord(ctx context.Context, record *models.TaxRecord) error {
	query := r.db.Rebind(`
		UPDATE tax_records SET year = ?, kind = ?, ipva_value = ?, licensing_value = ?,
			total_value = ?, due_date = ?, status = ?, payment_date = ?, payment_method = ?,
			installments = ?, paid_installments = ?, documents = ?, notes = ?, updated_at = ?
		WHERE id = ? AND account_id = ?
	`)

	// Recompute on every update so the stored total can never drift
	// from its components.
	record.TotalValue = record.IPVAValue + record.LicensingValue
	record.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query,
		record.Year, record.Kind, record.IPVAValue, record.LicensingValue, record.TotalValue,
		record.DueDate, record.Status, record.PaymentDate, record.PaymentMethod,
		record.Installments, record.PaidInstallments, record.Documents, record.Notes,
		record.UpdatedAt, record.ID, record.AccountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

func (r *SQLRepository) DeleteTaxRecord(ctx context.Context, accountID, id string) error {
	query := r.db.Rebind(`DELETE FROM tax_records WHERE id = ? AND account_id = ?`)

	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

func (r *SQLRepository) ListTaxRecordsByAccount(ctx context.Context, accountID string) ([]models.TaxRecord, error) {
	query := r.db.Rebind(`SELECT * FROM tax_records WHERE account_id = ? ORDER BY due_date ASC`)

	var records []models.TaxRecord
	err := r.db.SelectContext(ctx, &records, query, accountID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListUnpaidTaxRecords returns all non-paid tax records for an account
// ordered by due date. The day-count window filtering happens in the
// service because the rule is calendar-day based.
func (r *SQLRepository) ListUnpaidTaxRecords(ctx context.Context, accountID string) ([]models.TaxRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM tax_records
		WHERE account_id = ? AND status <> ?
		ORDER BY due_date ASC
	`)

	var records []models.TaxRecord
	err := r.db.SelectContext(ctx, &records, query, accountID, models.TaxStatusPaid)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Dashboard aggregates
func (r *SQLRepository) MaintenanceTotals(ctx context.Context, accountID, vehicleID string) (int, float64, error) {
	query := r.db.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(cost), 0)
		FROM maintenance_records
		WHERE vehicle_id = ? AND account_id = ?
	`)

	var count int
	var total float64
	err := r.db.QueryRowContext(ctx, query, vehicleID, accountID).Scan(&count, &total)
	if err != nil {
		return 0, 0, err
	}

	return count, total, nil
}

func (r *SQLRepository) SpendByCategory(ctx context.Context, accountID, vehicleID string) ([]models.CategorySpend, error) {
	query := r.db.Rebind(`
		SELECT c.id AS category_id, c.name AS name, c.color AS color,
			COUNT(m.id) AS count, COALESCE(SUM(m.cost), 0) AS amount
		FROM maintenance_records m
		JOIN categories c ON c.id = m.category_id
		WHERE m.vehicle_id = ? AND m.account_id = ?
		GROUP BY c.id, c.name, c.color
		ORDER BY amount DESC
	`)

	var spend []models.CategorySpend
	err := r.db.SelectContext(ctx, &spend, query, vehicleID, accountID)
	if err != nil {
		return nil, err
	}

	return spend, nil
}

func (r *SQLRepository) PendingTaxTotal(ctx context.Context, accountID string) (float64, error) {
	query := r.db.Rebind(`
		SELECT COALESCE(SUM(total_value), 0)
		FROM tax_records
		WHERE account_id = ? AND status <> ?
	`)

	var total float64
	err := r.db.GetContext(ctx, &total, query, accountID, models.TaxStatusPaid)
	return total, err
}
