package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmn/autocare-server/internal/models"
)

// readNotificationTTL is how long an acknowledged alert stays recorded
// before opportunistic pruning removes it.
const readNotificationTTL = 30 * 24 * time.Hour

// Maintenance record operations
func (s *DefaultService) CreateMaintenance(ctx context.Context, accountID, vehicleID string, req models.CreateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	if _, err := s.GetVehicle(ctx, accountID, vehicleID); err != nil {
		return nil, err
	}

	record := &models.MaintenanceRecord{
		ID:             uuid.New().String(),
		VehicleID:      vehicleID,
		AccountID:      accountID,
		CategoryID:     req.CategoryID,
		ServiceType:    req.ServiceType,
		Date:           req.Date,
		Mileage:        req.Mileage,
		Description:    req.Description,
		Location:       req.Location,
		Cost:           req.Cost,
		NextDueMileage: req.NextDueMileage,
		NextDueDate:    req.NextDueDate,
		Photo:          req.Photo,
	}

	if err := s.repo.CreateMaintenance(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating maintenance record: %w", err)
	}

	return record, nil
}

func (s *DefaultService) ListMaintenance(ctx context.Context, accountID, vehicleID string) ([]models.MaintenanceRecord, error) {
	records, err := s.repo.ListMaintenanceByVehicle(ctx, accountID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error listing maintenance records: %w", err)
	}
	return records, nil
}

func (s *DefaultService) UpdateMaintenance(ctx context.Context, accountID, id string, req models.UpdateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	record, err := s.repo.GetMaintenance(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting maintenance record: %w", err)
	}
	if record == nil {
		return nil, models.ErrNotFound
	}

	if req.CategoryID != nil {
		record.CategoryID = req.CategoryID
	}
	if req.ServiceType != nil {
		record.ServiceType = *req.ServiceType
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.Mileage != nil {
		record.Mileage = *req.Mileage
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Location != nil {
		record.Location = *req.Location
	}
	if req.Cost != nil {
		record.Cost = *req.Cost
	}
	if req.NextDueMileage != nil {
		record.NextDueMileage = req.NextDueMileage
	}
	if req.NextDueDate != nil {
		record.NextDueDate = req.NextDueDate
	}
	if req.Photo != nil {
		record.Photo = req.Photo
	}

	if err := s.repo.UpdateMaintenance(ctx, record); err != nil {
		return nil, fmt.Errorf("error updating maintenance record: %w", err)
	}

	return record, nil
}

func (s *DefaultService) DeleteMaintenance(ctx context.Context, accountID, id string) error {
	err := s.repo.DeleteMaintenance(ctx, accountID, id)
	if err == models.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("error deleting maintenance record: %w", err)
	}
	return nil
}

// UpcomingMaintenance returns records due within the alert window.
// Nil mileage/distance fall back to the vehicle's odometer and the
// account's configured alert distance.
func (s *DefaultService) UpcomingMaintenance(ctx context.Context, accountID, vehicleID string, mileage, distance *int) ([]models.MaintenanceRecord, error) {
	m, d, err := s.resolveMaintenanceWindow(ctx, accountID, vehicleID, mileage, distance)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.UpcomingMaintenance(ctx, accountID, vehicleID, m, d)
	if err != nil {
		return nil, fmt.Errorf("error querying upcoming maintenance: %w", err)
	}
	return records, nil
}

func (s *DefaultService) OverdueMaintenance(ctx context.Context, accountID, vehicleID string, mileage *int) ([]models.MaintenanceRecord, error) {
	m, _, err := s.resolveMaintenanceWindow(ctx, accountID, vehicleID, mileage, nil)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.OverdueMaintenance(ctx, accountID, vehicleID, m)
	if err != nil {
		return nil, fmt.Errorf("error querying overdue maintenance: %w", err)
	}
	return records, nil
}

func (s *DefaultService) resolveMaintenanceWindow(ctx context.Context, accountID, vehicleID string, mileage, distance *int) (int, int, error) {
	m, d := 0, 0
	if mileage != nil {
		m = *mileage
	} else {
		vehicle, err := s.GetVehicle(ctx, accountID, vehicleID)
		if err != nil {
			return 0, 0, err
		}
		m = vehicle.Mileage
	}
	if distance != nil {
		d = *distance
	} else {
		settings, err := s.GetSettings(ctx, accountID)
		if err != nil {
			return 0, 0, err
		}
		d = settings.MaintenanceAlertKm
	}
	return m, d, nil
}

// Tax record operations
func (s *DefaultService) CreateTaxRecord(ctx context.Context, accountID, vehicleID string, req models.CreateTaxRequest) (*models.TaxRecord, error) {
	if _, err := s.GetVehicle(ctx, accountID, vehicleID); err != nil {
		return nil, err
	}

	record := &models.TaxRecord{
		ID:             uuid.New().String(),
		VehicleID:      vehicleID,
		AccountID:      accountID,
		Year:           req.Year,
		Kind:           req.Kind,
		IPVAValue:      req.IPVAValue,
		LicensingValue: req.LicensingValue,
		DueDate:        req.DueDate,
		Status:         models.TaxStatusPending,
		Installments:   req.Installments,
		Notes:          req.Notes,
	}

	if err := s.repo.CreateTaxRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating tax record: %w", err)
	}

	return record, nil
}

func (s *DefaultService) ListTaxRecords(ctx context.Context, accountID, vehicleID string) ([]models.TaxRecord, error) {
	records, err := s.repo.ListTaxRecordsByVehicle(ctx, accountID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error listing tax records: %w", err)
	}
	return records, nil
}

func (s *DefaultService) UpdateTaxRecord(ctx context.Context, accountID, id string, req models.UpdateTaxRequest) (*models.TaxRecord, error) {
	record, err := s.repo.GetTaxRecord(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting tax record: %w", err)
	}
	if record == nil {
		return nil, models.ErrNotFound
	}

	if req.Year != nil {
		record.Year = *req.Year
	}
	if req.Kind != nil {
		record.Kind = *req.Kind
	}
	if req.IPVAValue != nil {
		record.IPVAValue = *req.IPVAValue
	}
	if req.LicensingValue != nil {
		record.LicensingValue = *req.LicensingValue
	}
	if req.DueDate != nil {
		record.DueDate = *req.DueDate
	}
	if req.PaymentMethod != nil {
		record.PaymentMethod = req.PaymentMethod
	}
	if req.Installments != nil {
		record.Installments = *req.Installments
	}
	if req.PaidInstallments != nil {
		record.PaidInstallments = *req.PaidInstallments
	}
	if req.Documents != nil {
		record.Documents = req.Documents
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	// UpdateTaxRecord recomputes total_value from the components.
	if err := s.repo.UpdateTaxRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("error updating tax record: %w", err)
	}

	return record, nil
}

func (s *DefaultService) DeleteTaxRecord(ctx context.Context, accountID, id string) error {
	err := s.repo.DeleteTaxRecord(ctx, accountID, id)
	if err == models.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("error deleting tax record: %w", err)
	}
	return nil
}

// SetTaxStatus transitions the record's status. Moving to paid stamps
// the payment date with today only when none was set before, so a
// repeated call never moves it.
func (s *DefaultService) SetTaxStatus(ctx context.Context, accountID, id, status string) (*models.TaxRecord, error) {
	record, err := s.repo.GetTaxRecord(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting tax record: %w", err)
	}
	if record == nil {
		return nil, models.ErrNotFound
	}

	record.Status = status
	if status == models.TaxStatusPaid && record.PaymentDate == nil {
		now := time.Now().UTC()
		record.PaymentDate = &now
	}

	if err := s.repo.UpdateTaxRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("error updating tax record: %w", err)
	}

	return record, nil
}

// UpcomingTaxes returns non-paid records due within [0, alertDays]
// whole calendar days, ascending by days until due.
func (s *DefaultService) UpcomingTaxes(ctx context.Context, accountID string, alertDays *int) ([]models.TaxRecord, error) {
	days := 0
	if alertDays != nil {
		days = *alertDays
	} else {
		settings, err := s.GetSettings(ctx, accountID)
		if err != nil {
			return nil, err
		}
		days = settings.TaxAlertDays
	}

	records, err := s.repo.ListUnpaidTaxRecords(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing tax records: %w", err)
	}

	now := time.Now()
	upcoming := make([]models.TaxRecord, 0, len(records))
	for _, record := range records {
		d := daysUntil(now, record.DueDate)
		if d >= 0 && d <= days {
			upcoming = append(upcoming, record)
		}
	}

	// Already ordered by due date, which equals days-until-due order.
	return upcoming, nil
}

// OverdueTaxes returns non-paid records past their due date, most
// overdue first.
func (s *DefaultService) OverdueTaxes(ctx context.Context, accountID string) ([]models.TaxRecord, error) {
	records, err := s.repo.ListUnpaidTaxRecords(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing tax records: %w", err)
	}

	now := time.Now()
	overdue := make([]models.TaxRecord, 0, len(records))
	for _, record := range records {
		if daysUntil(now, record.DueDate) < 0 {
			overdue = append(overdue, record)
		}
	}

	return overdue, nil
}

// daysUntil computes the whole calendar days between now's local
// midnight and the due date's midnight. Wall-clock time of day never
// influences the result. Rounding absorbs the 23h/25h days around DST
// transitions, which plain duration division would truncate.
func daysUntil(now, due time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(dueDay.Sub(today).Hours() / 24))
}
