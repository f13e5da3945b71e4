package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmn/autocare-server/internal/models"
)

// ExportBackup assembles the account's data into a single backup
// document. Validation failures do not block the export; they only
// flag the suggested filename so the user can tell.
func (s *DefaultService) ExportBackup(ctx context.Context, accountID string) (*models.ExportResponse, error) {
	vehicles, err := s.repo.ListVehicles(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}

	maintenance, err := s.repo.ListMaintenanceByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing maintenance records: %w", err)
	}

	taxes, err := s.repo.ListTaxRecordsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing tax records: %w", err)
	}

	categories, err := s.repo.ListCategories(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	settings, err := s.repo.GetSettings(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}

	readNotifications, err := s.repo.ListReadNotifications(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing read notifications: %w", err)
	}

	doc := models.BackupDocument{
		SchemaVersion:      models.BackupSchemaVersion,
		ExportedAt:         time.Now().UTC(),
		Vehicles:           vehicles,
		MaintenanceRecords: maintenance,
		TaxRecords:         taxes,
		Categories:         categories,
		Settings:           settings,
		ReadNotifications:  readNotifications,
	}

	filename := fmt.Sprintf("autocare_backup_%s.json", doc.ExportedAt.Format("2006-01-02"))
	if err := validateBackup(&doc); err != nil {
		filename = "invalid_" + filename
	}

	return &models.ExportResponse{
		Status:   "success",
		Filename: filename,
		Backup:   doc,
	}, nil
}

// ImportBackup validates the document and then swaps the account's
// collections for its contents in one transaction. Ids and timestamps
// survive the round trip untouched.
func (s *DefaultService) ImportBackup(ctx context.Context, accountID string, doc models.BackupDocument) error {
	if err := validateBackup(&doc); err != nil {
		return err
	}

	if err := s.repo.ReplaceAccountData(ctx, accountID, &doc); err != nil {
		return fmt.Errorf("error importing backup: %w", err)
	}

	return nil
}

// validateBackup checks schema version and referential consistency of a
// backup document before it touches the database.
func validateBackup(doc *models.BackupDocument) error {
	if doc.SchemaVersion != models.BackupSchemaVersion {
		return fmt.Errorf("%w: unsupported schema version %d", models.ErrInvalidBackup, doc.SchemaVersion)
	}

	vehicleIDs := make(map[string]bool, len(doc.Vehicles))
	for _, v := range doc.Vehicles {
		if v.ID == "" {
			return fmt.Errorf("%w: vehicle with empty id", models.ErrInvalidBackup)
		}
		if vehicleIDs[v.ID] {
			return fmt.Errorf("%w: duplicate vehicle id %s", models.ErrInvalidBackup, v.ID)
		}
		vehicleIDs[v.ID] = true
	}

	categoryIDs := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category with empty id", models.ErrInvalidBackup)
		}
		if categoryIDs[c.ID] {
			return fmt.Errorf("%w: duplicate category id %s", models.ErrInvalidBackup, c.ID)
		}
		categoryIDs[c.ID] = true
	}

	for _, m := range doc.MaintenanceRecords {
		if m.ID == "" {
			return fmt.Errorf("%w: maintenance record with empty id", models.ErrInvalidBackup)
		}
		if !vehicleIDs[m.VehicleID] {
			return fmt.Errorf("%w: maintenance record %s references unknown vehicle %s", models.ErrInvalidBackup, m.ID, m.VehicleID)
		}
		if m.CategoryID != nil && !categoryIDs[*m.CategoryID] {
			return fmt.Errorf("%w: maintenance record %s references unknown category %s", models.ErrInvalidBackup, m.ID, *m.CategoryID)
		}
	}

	for _, t := range doc.TaxRecords {
		if t.ID == "" {
			return fmt.Errorf("%w: tax record with empty id", models.ErrInvalidBackup)
		}
		if !vehicleIDs[t.VehicleID] {
			return fmt.Errorf("%w: tax record %s references unknown vehicle %s", models.ErrInvalidBackup, t.ID, t.VehicleID)
		}
	}

	if doc.Settings != nil && doc.Settings.CurrentVehicleID != nil && !vehicleIDs[*doc.Settings.CurrentVehicleID] {
		return fmt.Errorf("%w: settings reference unknown vehicle %s", models.ErrInvalidBackup, *doc.Settings.CurrentVehicleID)
	}

	readIDs := make(map[string]bool, len(doc.ReadNotifications))
	for _, n := range doc.ReadNotifications {
		if n.ID == "" {
			return fmt.Errorf("%w: read notification with empty id", models.ErrInvalidBackup)
		}
		if readIDs[n.ID] {
			return fmt.Errorf("%w: duplicate read notification id %s", models.ErrInvalidBackup, n.ID)
		}
		readIDs[n.ID] = true
	}

	return nil
}
