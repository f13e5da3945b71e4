package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/lucasmn/autocare-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication and accounts
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error)
	UpdateAccount(ctx context.Context, id string, req models.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(ctx context.Context, callerID, id string) error
	ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error
	EnsureAdminAccount(ctx context.Context) (bool, error)

	// Vehicles
	CreateVehicle(ctx context.Context, accountID string, req models.CreateVehicleRequest) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, accountID, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, accountID string) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, accountID, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, accountID, id string) error
	UpdateMileage(ctx context.Context, accountID, id string, req models.UpdateMileageRequest) (*models.Vehicle, error)
	SetCurrentVehicle(ctx context.Context, accountID, id string) error

	// Maintenance records
	CreateMaintenance(ctx context.Context, accountID, vehicleID string, req models.CreateMaintenanceRequest) (*models.MaintenanceRecord, error)
	ListMaintenance(ctx context.Context, accountID, vehicleID string) ([]models.MaintenanceRecord, error)
	UpdateMaintenance(ctx context.Context, accountID, id string, req models.UpdateMaintenanceRequest) (*models.MaintenanceRecord, error)
	DeleteMaintenance(ctx context.Context, accountID, id string) error
	UpcomingMaintenance(ctx context.Context, accountID, vehicleID string, mileage, distance *int) ([]models.MaintenanceRecord, error)
	OverdueMaintenance(ctx context.Context, accountID, vehicleID string, mileage *int) ([]models.MaintenanceRecord, error)

	// Tax records
	CreateTaxRecord(ctx context.Context, accountID, vehicleID string, req models.CreateTaxRequest) (*models.TaxRecord, error)
	ListTaxRecords(ctx context.Context, accountID, vehicleID string) ([]models.TaxRecord, error)
	UpdateTaxRecord(ctx context.Context, accountID, id string, req models.UpdateTaxRequest) (*models.TaxRecord, error)
	DeleteTaxRecord(ctx context.Context, accountID, id string) error
	SetTaxStatus(ctx context.Context, accountID, id, status string) (*models.TaxRecord, error)
	UpcomingTaxes(ctx context.Context, accountID string, alertDays *int) ([]models.TaxRecord, error)
	OverdueTaxes(ctx context.Context, accountID string) ([]models.TaxRecord, error)

	// Categories
	CreateCategory(ctx context.Context, accountID string, req models.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, accountID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, accountID, id string, req models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, accountID, id string) error
	SeedDefaultCategories(ctx context.Context, accountID string) ([]models.Category, error)

	// Settings
	GetSettings(ctx context.Context, accountID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, accountID string, req models.UpdateSettingsRequest) (*models.Settings, error)

	// Alerts and read notifications
	GetAlerts(ctx context.Context, accountID string) ([]models.Alert, error)
	MarkAlertRead(ctx context.Context, accountID, id string) error
	MarkAlertsRead(ctx context.Context, accountID string, ids []string) error
	ListReadNotifications(ctx context.Context, accountID string) ([]models.ReadNotification, error)

	// Backup
	ExportBackup(ctx context.Context, accountID string) (*models.ExportResponse, error)
	ImportBackup(ctx context.Context, accountID string, doc models.BackupDocument) error

	// Dashboard
	GetDashboard(ctx context.Context, accountID string) (*models.DashboardResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string, tokenDuration time.Duration) Service {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// Authentication methods

// Login checks the credentials against the stored bcrypt hash and
// issues a JWT on success. It never mutates the account set.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	account, err := s.repo.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error getting account: %w", err)
	}

	if account == nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.generateJWT(account)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:             "success",
		AccountID:          account.ID,
		Username:           account.Username,
		Name:               account.Name,
		Role:               account.Role,
		MustChangePassword: account.MustChangePassword,
		Token:              token,
		ExpiresIn:          int(s.tokenDuration.Seconds()),
	}, nil
}

func (s *DefaultService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting account: %w", err)
	}
	if account == nil {
		return nil, models.ErrNotFound
	}
	return account, nil
}

func (s *DefaultService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return accounts, nil
}

func (s *DefaultService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	existing, err := s.repo.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking account existence: %w", err)
	}
	if existing != nil {
		return nil, models.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		ID:       uuid.New().String(),
		Username: req.Username,
		Password: string(hashedPassword),
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

func (s *DefaultService) UpdateAccount(ctx context.Context, id string, req models.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Role != nil {
		// Demoting the only admin would leave the system without one.
		if account.Role == models.RoleAdmin && *req.Role != models.RoleAdmin {
			admins, err := s.repo.CountAdmins(ctx)
			if err != nil {
				return nil, fmt.Errorf("error counting admins: %w", err)
			}
			if admins <= 1 {
				return nil, models.ErrLastAdmin
			}
		}
		account.Role = *req.Role
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("error updating account: %w", err)
	}

	return account, nil
}

func (s *DefaultService) DeleteAccount(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return models.ErrDeleteSelf
	}

	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	if account.Role == models.RoleAdmin {
		admins, err := s.repo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("error counting admins: %w", err)
		}
		if admins <= 1 {
			return models.ErrLastAdmin
		}
	}

	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	return nil
}

// ChangePassword overwrites the password unconditionally and clears the
// must-change flag.
func (s *DefaultService) ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	account.Password = string(hashedPassword)
	account.MustChangePassword = false

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return fmt.Errorf("error updating account: %w", err)
	}

	return nil
}

// EnsureAdminAccount seeds the initial admin account on an empty
// install. Returns true when an account was created.
func (s *DefaultService) EnsureAdminAccount(ctx context.Context) (bool, error) {
	count, err := s.repo.CountAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("error counting accounts: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		ID:                 uuid.New().String(),
		Username:           "admin",
		Password:           string(hashedPassword),
		Name:               "Administrator",
		Role:               models.RoleAdmin,
		MustChangePassword: true,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return false, fmt.Errorf("error creating admin account: %w", err)
	}

	return true, nil
}

// Helper methods
func (s *DefaultService) generateJWT(account *models.Account) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  account.ID, // subject
		"role": account.Role,
		"exp":  expirationTime.Unix(),
		"iat":  time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
