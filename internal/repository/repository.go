package repository

import (
	"context"
	"time"

	"github.com/lucasmn/autocare-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// Account operations
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string) error
	CountAccounts(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)

	// Vehicle operations
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, accountID, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, accountID string) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	DeleteVehicle(ctx context.Context, accountID, id string) error
	CountVehicles(ctx context.Context, accountID string) (int, error)
	UpdateVehicleMileage(ctx context.Context, accountID, id string, mileage int, date time.Time) error

	// Maintenance record operations
	CreateMaintenance(ctx context.Context, record *models.MaintenanceRecord) error
	GetMaintenance(ctx context.Context, accountID, id string) (*models.MaintenanceRecord, error)
	ListMaintenanceByVehicle(ctx context.Context, accountID, vehicleID string) ([]models.MaintenanceRecord, error)
	UpdateMaintenance(ctx context.Context, record *models.MaintenanceRecord) error
	DeleteMaintenance(ctx context.Context, accountID, id string) error
	ListMaintenanceByAccount(ctx context.Context, accountID string) ([]models.MaintenanceRecord, error)
	UpcomingMaintenance(ctx context.Context, accountID, vehicleID string, currentMileage, alertDistance int) ([]models.MaintenanceRecord, error)
	OverdueMaintenance(ctx context.Context, accountID, vehicleID string, currentMileage int) ([]models.MaintenanceRecord, error)

	// Tax record operations
	CreateTaxRecord(ctx context.Context, record *models.TaxRecord) error
	GetTaxRecord(ctx context.Context, accountID, id string) (*models.TaxRecord, error)
	ListTaxRecordsByVehicle(ctx context.Context, accountID, vehicleID string) ([]models.TaxRecord, error)
	UpdateTaxRecord(ctx context.Context, record *models.TaxRecord) error
	DeleteTaxRecord(ctx context.Context, accountID, id string) error
	ListTaxRecordsByAccount(ctx context.Context, accountID string) ([]models.TaxRecord, error)
	ListUnpaidTaxRecords(ctx context.Context, accountID string) ([]models.TaxRecord, error)

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, accountID, id string) (*models.Category, error)
	ListCategories(ctx context.Context, accountID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, accountID, id string) error
	CountCategories(ctx context.Context, accountID string) (int, error)

	// Settings operations
	GetSettings(ctx context.Context, accountID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, settings *models.Settings) error
	SetCurrentVehicle(ctx context.Context, accountID string, vehicleID *string) error

	// Read-notification operations
	MarkRead(ctx context.Context, accountID, id string, at time.Time) error
	ListReadNotifications(ctx context.Context, accountID string) ([]models.ReadNotification, error)
	PruneReadNotifications(ctx context.Context, accountID string, olderThan time.Time) (int, error)

	// Dashboard aggregates
	MaintenanceTotals(ctx context.Context, accountID, vehicleID string) (int, float64, error)
	SpendByCategory(ctx context.Context, accountID, vehicleID string) ([]models.CategorySpend, error)
	PendingTaxTotal(ctx context.Context, accountID string) (float64, error)

	// Backup
	ReplaceAccountData(ctx context.Context, accountID string, doc *models.BackupDocument) error
}
