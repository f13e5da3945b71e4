package repository

import (
	"context"
	"time"

	"github.com/lucasmn/autocare-server/internal/models"
)

// ReplaceAccountData swaps the account's collections for the contents
// of a backup document in one transaction. Ids and timestamps from the
// document are written verbatim; owning-account ids are forced to the
// importing account.
func (r *SQLRepository) ReplaceAccountData(ctx context.Context, accountID string, doc *models.BackupDocument) error {
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

	owned := []string{
		`DELETE FROM read_notifications WHERE account_id = ?`,
		`DELETE FROM maintenance_records WHERE account_id = ?`,
		`DELETE FROM tax_records WHERE account_id = ?`,
		`DELETE FROM vehicles WHERE account_id = ?`,
		`DELETE FROM categories WHERE account_id = ?`,
		`DELETE FROM settings WHERE account_id = ?`,
	}
	for _, q := range owned {
		if _, err = tx.ExecContext(ctx, r.db.Rebind(q), accountID); err != nil {
			return err
		}
	}

	insertVehicle := r.db.Rebind(`
		INSERT INTO vehicles (id, account_id, type, brand, model, year, plate, mileage, mileage_date,
			photo, renavam, chassis, insurer, policy_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for _, v := range doc.Vehicles {
		_, err = tx.ExecContext(ctx, insertVehicle,
			v.ID, accountID, v.Type, v.Brand, v.Model, v.Year, v.Plate, v.Mileage, v.MileageDate,
			v.Photo, v.Renavam, v.Chassis, v.Insurer, v.PolicyUntil, v.CreatedAt, v.UpdatedAt)
		if err != nil {
			return err
		}
	}

	insertCategory := r.db.Rebind(`
		INSERT INTO categories (id, account_id, name, color, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	for _, c := range doc.Categories {
		_, err = tx.ExecContext(ctx, insertCategory, c.ID, accountID, c.Name, c.Color, c.Icon, c.CreatedAt)
		if err != nil {
			return err
		}
	}

	insertMaintenance := r.db.Rebind(`
		INSERT INTO maintenance_records (id, vehicle_id, account_id, category_id, service_type, date,
			mileage, description, location, cost, next_due_mileage, next_due_date, photo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for _, m := range doc.MaintenanceRecords {
		_, err = tx.ExecContext(ctx, insertMaintenance,
			m.ID, m.VehicleID, accountID, m.CategoryID, m.ServiceType, m.Date, m.Mileage,
			m.Description, m.Location, m.Cost, m.NextDueMileage, m.NextDueDate, m.Photo,
			m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return err
		}
	}

	insertTax := r.db.Rebind(`
		INSERT INTO tax_records (id, vehicle_id, account_id, year, kind, ipva_value, licensing_value,
			total_value, due_date, status, payment_date, payment_method, installments,
			paid_installments, documents, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for _, t := range doc.TaxRecords {
		_, err = tx.ExecContext(ctx, insertTax,
			t.ID, t.VehicleID, accountID, t.Year, t.Kind, t.IPVAValue, t.LicensingValue,
			t.IPVAValue+t.LicensingValue, t.DueDate, t.Status, t.PaymentDate, t.PaymentMethod,
			t.Installments, t.PaidInstallments, t.Documents, t.Notes, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return err
		}
	}

	insertRead := r.db.Rebind(`
		INSERT INTO read_notifications (id, account_id, read_at)
		VALUES (?, ?, ?)
	`)
	for _, n := range doc.ReadNotifications {
		if _, err = tx.ExecContext(ctx, insertRead, n.ID, accountID, n.ReadAt); err != nil {
			return err
		}
	}

	if doc.Settings != nil {
		insertSettings := r.db.Rebind(`
			INSERT INTO settings (account_id, dark_mode, notifications_enabled, maintenance_alert_km, tax_alert_days, current_vehicle_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		s := doc.Settings
		updatedAt := s.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		_, err = tx.ExecContext(ctx, insertSettings,
			accountID, s.DarkMode, s.NotificationsEnabled, s.MaintenanceAlertKm, s.TaxAlertDays,
			s.CurrentVehicleID, updatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
