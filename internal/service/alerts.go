package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmn/autocare-server/internal/models"
)

// GetAlerts assembles the alert feed for an account: upcoming and
// overdue maintenance for the current vehicle plus upcoming and overdue
// tax records, each flagged with its acknowledged state. Stale read
// markers are pruned opportunistically on the way.
func (s *DefaultService) GetAlerts(ctx context.Context, accountID string) ([]models.Alert, error) {
	cutoff := time.Now().UTC().Add(-readNotificationTTL)
	if _, err := s.repo.PruneReadNotifications(ctx, accountID, cutoff); err != nil {
		return nil, fmt.Errorf("error pruning read notifications: %w", err)
	}

	settings, err := s.GetSettings(ctx, accountID)
	if err != nil {
		return nil, err
	}

	read, err := s.readSet(ctx, accountID)
	if err != nil {
		return nil, err
	}

	alerts := []models.Alert{}

	if settings.CurrentVehicleID != nil {
		vehicle, err := s.GetVehicle(ctx, accountID, *settings.CurrentVehicleID)
		if err != nil {
			return nil, err
		}

		overdue, err := s.repo.OverdueMaintenance(ctx, accountID, vehicle.ID, vehicle.Mileage)
		if err != nil {
			return nil, fmt.Errorf("error querying overdue maintenance: %w", err)
		}
		for _, record := range overdue {
			alerts = append(alerts, maintenanceAlert(record, "overdue", read))
		}

		upcoming, err := s.repo.UpcomingMaintenance(ctx, accountID, vehicle.ID, vehicle.Mileage, settings.MaintenanceAlertKm)
		if err != nil {
			return nil, fmt.Errorf("error querying upcoming maintenance: %w", err)
		}
		for _, record := range upcoming {
			alerts = append(alerts, maintenanceAlert(record, "upcoming", read))
		}
	}

	overdueTaxes, err := s.OverdueTaxes(ctx, accountID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, record := range overdueTaxes {
		alerts = append(alerts, taxAlert(record, "overdue", daysUntil(now, record.DueDate), read))
	}

	upcomingTaxes, err := s.UpcomingTaxes(ctx, accountID, &settings.TaxAlertDays)
	if err != nil {
		return nil, err
	}
	for _, record := range upcomingTaxes {
		alerts = append(alerts, taxAlert(record, "upcoming", daysUntil(now, record.DueDate), read))
	}

	return alerts, nil
}

// MarkAlertRead acknowledges a single alert. Already-acknowledged ids
// are a no-op.
func (s *DefaultService) MarkAlertRead(ctx context.Context, accountID, id string) error {
	if err := s.repo.MarkRead(ctx, accountID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	return nil
}

func (s *DefaultService) MarkAlertsRead(ctx context.Context, accountID string, ids []string) error {
	now := time.Now().UTC()
	for _, id := range ids {
		if err := s.repo.MarkRead(ctx, accountID, id, now); err != nil {
			return fmt.Errorf("error marking notification read: %w", err)
		}
	}
	return nil
}

func (s *DefaultService) ListReadNotifications(ctx context.Context, accountID string) ([]models.ReadNotification, error) {
	notifications, err := s.repo.ListReadNotifications(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing read notifications: %w", err)
	}
	return notifications, nil
}

func (s *DefaultService) readSet(ctx context.Context, accountID string) (map[string]bool, error) {
	notifications, err := s.repo.ListReadNotifications(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing read notifications: %w", err)
	}

	read := make(map[string]bool, len(notifications))
	for _, n := range notifications {
		read[n.ID] = true
	}
	return read, nil
}

func maintenanceAlert(record models.MaintenanceRecord, state string, read map[string]bool) models.Alert {
	return models.Alert{
		ID:         record.ID,
		Kind:       "maintenance",
		State:      state,
		VehicleID:  record.VehicleID,
		Title:      record.ServiceType,
		DueMileage: record.NextDueMileage,
		Read:       read[record.ID],
	}
}

func taxAlert(record models.TaxRecord, state string, days int, read map[string]bool) models.Alert {
	title := ""
	switch record.Kind {
	case models.TaxKindIPVA:
		title = fmt.Sprintf("IPVA %d", record.Year)
	case models.TaxKindLicensing:
		title = fmt.Sprintf("Licenciamento %d", record.Year)
	default:
		title = fmt.Sprintf("IPVA + Licenciamento %d", record.Year)
	}

	return models.Alert{
		ID:           record.ID,
		Kind:         "tax",
		State:        state,
		VehicleID:    record.VehicleID,
		Title:        title,
		DaysUntilDue: &days,
		Read:         read[record.ID],
	}
}
