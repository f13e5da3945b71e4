package service

import (
	"context"
	"fmt"

	"github.com/lucasmn/autocare-server/internal/models"
)

// GetDashboard summarizes the current vehicle's maintenance spend and
// the account's due items. Without a current vehicle the maintenance
// side stays zeroed but tax counters are still reported.
func (s *DefaultService) GetDashboard(ctx context.Context, accountID string) (*models.DashboardResponse, error) {
	settings, err := s.GetSettings(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := &models.DashboardResponse{
		Status:          "success",
		SpendByCategory: []models.CategorySpend{},
	}

	if settings.CurrentVehicleID != nil {
		vehicle, err := s.GetVehicle(ctx, accountID, *settings.CurrentVehicleID)
		if err != nil {
			return nil, err
		}
		resp.VehicleID = vehicle.ID

		count, total, err := s.repo.MaintenanceTotals(ctx, accountID, vehicle.ID)
		if err != nil {
			return nil, fmt.Errorf("error computing maintenance totals: %w", err)
		}
		resp.MaintenanceCount = count
		resp.TotalSpend = total

		spend, err := s.repo.SpendByCategory(ctx, accountID, vehicle.ID)
		if err != nil {
			return nil, fmt.Errorf("error computing spend by category: %w", err)
		}
		if spend != nil {
			resp.SpendByCategory = spend
		}

		upcoming, err := s.repo.UpcomingMaintenance(ctx, accountID, vehicle.ID, vehicle.Mileage, settings.MaintenanceAlertKm)
		if err != nil {
			return nil, fmt.Errorf("error querying upcoming maintenance: %w", err)
		}
		resp.UpcomingMaintenance = len(upcoming)

		overdue, err := s.repo.OverdueMaintenance(ctx, accountID, vehicle.ID, vehicle.Mileage)
		if err != nil {
			return nil, fmt.Errorf("error querying overdue maintenance: %w", err)
		}
		resp.OverdueMaintenance = len(overdue)
	}

	upcomingTaxes, err := s.UpcomingTaxes(ctx, accountID, &settings.TaxAlertDays)
	if err != nil {
		return nil, err
	}
	resp.UpcomingTaxes = len(upcomingTaxes)

	overdueTaxes, err := s.OverdueTaxes(ctx, accountID)
	if err != nil {
		return nil, err
	}
	resp.OverdueTaxes = len(overdueTaxes)

	pendingTotal, err := s.repo.PendingTaxTotal(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error computing pending tax total: %w", err)
	}
	resp.PendingTaxTotal = pendingTotal

	return resp, nil
}
