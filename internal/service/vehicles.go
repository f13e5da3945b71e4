package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmn/autocare-server/internal/models"
)

// Vehicle operations
func (s *DefaultService) CreateVehicle(ctx context.Context, accountID string, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Type:        req.Type,
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Plate:       req.Plate,
		Mileage:     req.Mileage,
		MileageDate: req.MileageDate,
		Photo:       req.Photo,
		Renavam:     req.Renavam,
		Chassis:     req.Chassis,
		Insurer:     req.Insurer,
		PolicyUntil: req.PolicyUntil,
	}

	count, err := s.repo.CountVehicles(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error counting vehicles: %w", err)
	}

	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("error creating vehicle: %w", err)
	}

	// The very first vehicle becomes the current one automatically.
	if count == 0 {
		if err := s.repo.SetCurrentVehicle(ctx, accountID, &vehicle.ID); err != nil {
			return nil, fmt.Errorf("error setting current vehicle: %w", err)
		}
	}

	return vehicle, nil
}

func (s *DefaultService) GetVehicle(ctx context.Context, accountID, id string) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetVehicle(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, models.ErrNotFound
	}
	return vehicle, nil
}

func (s *DefaultService) ListVehicles(ctx context.Context, accountID string) ([]models.Vehicle, error) {
	vehicles, err := s.repo.ListVehicles(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *DefaultService) UpdateVehicle(ctx context.Context, accountID, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		vehicle.Type = *req.Type
	}
	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Plate != nil {
		vehicle.Plate = *req.Plate
	}
	if req.Photo != nil {
		vehicle.Photo = req.Photo
	}
	if req.Renavam != nil {
		vehicle.Renavam = req.Renavam
	}
	if req.Chassis != nil {
		vehicle.Chassis = req.Chassis
	}
	if req.Insurer != nil {
		vehicle.Insurer = req.Insurer
	}
	if req.PolicyUntil != nil {
		vehicle.PolicyUntil = req.PolicyUntil
	}

	if err := s.repo.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("error updating vehicle: %w", err)
	}

	return vehicle, nil
}

func (s *DefaultService) DeleteVehicle(ctx context.Context, accountID, id string) error {
	if err := s.repo.DeleteVehicle(ctx, accountID, id); err != nil {
		if err == models.ErrNotFound {
			return err
		}
		return fmt.Errorf("error deleting vehicle: %w", err)
	}
	return nil
}

// UpdateMileage overwrites the odometer reading unconditionally; the
// caller decides whether the new value is actually higher.
func (s *DefaultService) UpdateMileage(ctx context.Context, accountID, id string, req models.UpdateMileageRequest) (*models.Vehicle, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	if err := s.repo.UpdateVehicleMileage(ctx, accountID, id, req.Mileage, date); err != nil {
		if err == models.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("error updating mileage: %w", err)
	}

	return s.GetVehicle(ctx, accountID, id)
}

func (s *DefaultService) SetCurrentVehicle(ctx context.Context, accountID, id string) error {
	// The pointer may only reference an existing vehicle of the account.
	if _, err := s.GetVehicle(ctx, accountID, id); err != nil {
		return err
	}

	if err := s.repo.SetCurrentVehicle(ctx, accountID, &id); err != nil {
		return fmt.Errorf("error setting current vehicle: %w", err)
	}

	return nil
}

// Category operations

// defaultCategories is the built-in list seeded for fresh accounts.
var defaultCategories = []models.Category{
	{Name: "Troca de óleo", Color: "#F59E0B", Icon: "oil"},
	{Name: "Pneus", Color: "#3B82F6", Icon: "tire"},
	{Name: "Freios", Color: "#EF4444", Icon: "brake"},
	{Name: "Revisão", Color: "#10B981", Icon: "wrench"},
	{Name: "Elétrica", Color: "#8B5CF6", Icon: "battery"},
	{Name: "Outros", Color: "#6B7280", Icon: "tools"},
}

func (s *DefaultService) CreateCategory(ctx context.Context, accountID string, req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return category, nil
}

func (s *DefaultService) ListCategories(ctx context.Context, accountID string) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return categories, nil
}

func (s *DefaultService) UpdateCategory(ctx context.Context, accountID, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting category: %w", err)
	}
	if category == nil {
		return nil, models.ErrNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("error updating category: %w", err)
	}

	return category, nil
}

func (s *DefaultService) DeleteCategory(ctx context.Context, accountID, id string) error {
	err := s.repo.DeleteCategory(ctx, accountID, id)
	if err == models.ErrCategoryInUse || err == models.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	return nil
}

// SeedDefaultCategories inserts the built-in list only when the account
// has no categories at all. Wiping every category by hand re-arms it.
func (s *DefaultService) SeedDefaultCategories(ctx context.Context, accountID string) ([]models.Category, error) {
	count, err := s.repo.CountCategories(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error counting categories: %w", err)
	}
	if count > 0 {
		return s.ListCategories(ctx, accountID)
	}

	for _, def := range defaultCategories {
		category := &models.Category{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      def.Name,
			Color:     def.Color,
			Icon:      def.Icon,
		}
		if err := s.repo.CreateCategory(ctx, category); err != nil {
			return nil, fmt.Errorf("error seeding category %q: %w", def.Name, err)
		}
	}

	return s.ListCategories(ctx, accountID)
}

// Settings operations
func (s *DefaultService) GetSettings(ctx context.Context, accountID string) (*models.Settings, error) {
	settings, err := s.repo.GetSettings(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	return settings, nil
}

func (s *DefaultService) UpdateSettings(ctx context.Context, accountID string, req models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.GetSettings(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.DarkMode != nil {
		settings.DarkMode = *req.DarkMode
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.MaintenanceAlertKm != nil {
		settings.MaintenanceAlertKm = *req.MaintenanceAlertKm
	}
	if req.TaxAlertDays != nil {
		settings.TaxAlertDays = *req.TaxAlertDays
	}

	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error updating settings: %w", err)
	}

	return settings, nil
}
