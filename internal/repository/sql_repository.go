package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lucasmn/autocare-server/internal/models"
)

// SQLRepository implements the Repository interface over sqlx. Queries
// are written with ? placeholders and passed through Rebind so the same
// code runs on SQLite and PostgreSQL.
type SQLRepository struct {
	db *sqlx.DB
}

// NewSQLRepository creates a new SQL-backed repository
func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{
		db: db,
	}
}

// Account repository methods
func (r *SQLRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := r.db.Rebind(`
		INSERT INTO accounts (id, username, password, name, email, role, must_change_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.Password, account.Name, account.Email,
		account.Role, account.MustChangePassword, account.CreatedAt, account.UpdatedAt)

	return err
}

func (r *SQLRepository) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	query := r.db.Rebind(`SELECT * FROM accounts WHERE id = ?`)

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Account not found
		}
		return nil, err
	}

	return &account, nil
}

func (r *SQLRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := r.db.Rebind(`SELECT * FROM accounts WHERE username = ?`)

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Account not found
		}
		return nil, err
	}

	return &account, nil
}

func (r *SQLRepository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.SelectContext(ctx, &accounts, `SELECT * FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *SQLRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := r.db.Rebind(`
		UPDATE accounts SET username = ?, password = ?, name = ?, email = ?, role = ?,
			must_change_password = ?, updated_at = ?
		WHERE id = ?
	`)

	account.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query,
		account.Username, account.Password, account.Name, account.Email, account.Role,
		account.MustChangePassword, account.UpdatedAt, account.ID)
	if err != nil {
		return err
	}

	return requireRowsAffected(res)
}

// DeleteAccount removes an account and everything it owns in one
// transaction.
func (r *SQLRepository) DeleteAccount(ctx context.Context, id string) error {
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
		if _, err = tx.ExecContext(ctx, r.db.Rebind(q), id); err != nil {
			return err
		}
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM accounts WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if err = requireRowsAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLRepository) CountAccounts(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts`)
	return count, err
}

func (r *SQLRepository) CountAdmins(ctx context.Context) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM accounts WHERE role = ?`)

	var count int
	err := r.db.GetContext(ctx, &count, query, models.RoleAdmin)
	return count, err
}

// Settings repository methods

// GetSettings returns the account's settings row, creating it with
// defaults on first read.
func (r *SQLRepository) GetSettings(ctx context.Context, accountID string) (*models.Settings, error) {
	query := r.db.Rebind(`SELECT * FROM settings WHERE account_id = ?`)

	var settings models.Settings
	err := r.db.GetContext(ctx, &settings, query, accountID)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	settings = models.Settings{
		AccountID:            accountID,
		NotificationsEnabled: true,
		MaintenanceAlertKm:   1000,
		TaxAlertDays:         30,
		UpdatedAt:            time.Now().UTC(),
	}

	insert := r.db.Rebind(`
		INSERT INTO settings (account_id, dark_mode, notifications_enabled, maintenance_alert_km, tax_alert_days, current_vehicle_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = r.db.ExecContext(ctx, insert,
		settings.AccountID, settings.DarkMode, settings.NotificationsEnabled,
		settings.MaintenanceAlertKm, settings.TaxAlertDays, settings.CurrentVehicleID, settings.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *SQLRepository) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	// Make sure the row exists before updating it.
	if _, err := r.GetSettings(ctx, settings.AccountID); err != nil {
		return err
	}

	query := r.db.Rebind(`
		UPDATE settings SET dark_mode = ?, notifications_enabled = ?, maintenance_alert_km = ?,
			tax_alert_days = ?, current_vehicle_id = ?, updated_at = ?
		WHERE account_id = ?
	`)

	settings.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		settings.DarkMode, settings.NotificationsEnabled, settings.MaintenanceAlertKm,
		settings.TaxAlertDays, settings.CurrentVehicleID, settings.UpdatedAt, settings.AccountID)
	return err
}

// SetCurrentVehicle updates only the current-vehicle pointer. A nil
// vehicleID clears it.
func (r *SQLRepository) SetCurrentVehicle(ctx context.Context, accountID string, vehicleID *string) error {
	if _, err := r.GetSettings(ctx, accountID); err != nil {
		return err
	}

	query := r.db.Rebind(`UPDATE settings SET current_vehicle_id = ?, updated_at = ? WHERE account_id = ?`)
	_, err := r.db.ExecContext(ctx, query, vehicleID, time.Now().UTC(), accountID)
	return err
}

// Read-notification repository methods

// MarkRead records an acknowledged alert id. Marking an already-read id
// is a no-op.
func (r *SQLRepository) MarkRead(ctx context.Context, accountID, id string, at time.Time) error {
	var exists bool
	check := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM read_notifications WHERE id = ? AND account_id = ?)`)
	if err := r.db.GetContext(ctx, &exists, check, id, accountID); err != nil {
		return err
	}
	if exists {
		return nil
	}

	insert := r.db.Rebind(`INSERT INTO read_notifications (id, account_id, read_at) VALUES (?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, insert, id, accountID, at)
	return err
}

func (r *SQLRepository) ListReadNotifications(ctx context.Context, accountID string) ([]models.ReadNotification, error) {
	query := r.db.Rebind(`SELECT * FROM read_notifications WHERE account_id = ?`)

	var notifications []models.ReadNotification
	err := r.db.SelectContext(ctx, &notifications, query, accountID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *SQLRepository) PruneReadNotifications(ctx context.Context, accountID string, olderThan time.Time) (int, error) {
	query := r.db.Rebind(`DELETE FROM read_notifications WHERE account_id = ? AND read_at < ?`)

	res, err := r.db.ExecContext(ctx, query, accountID, olderThan)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}

// requireRowsAffected turns a zero-row write into ErrNotFound so
// callers can tell a missing id apart from success.
func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
