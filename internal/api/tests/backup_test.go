package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lucasmn/autocare-server/internal/api/testutils"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func exportBackup(t *testing.T, testCtx *testutils.TestContext, jwt string) models.ExportResponse {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/backup/export",
		nil, testutils.AuthHeaders(jwt))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ExportResponse
	testutils.DecodeJSON(t, w, &resp)
	return resp
}

func TestBackupRoundTrip(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	vehicle := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Volkswagen", Model: "Polo", Year: 2022, Mileage: 25000,
	})

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Motor", Color: "#c0392b", Icon: "engine"},
		testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	testutils.DecodeJSON(t, w, &category)

	nextDue := 30000
	createMaintenance(t, testCtx, testCtx.AdminJWT, vehicle.ID, models.CreateMaintenanceRequest{
		CategoryID:     &category.ID,
		ServiceType:    "Troca de correia",
		Date:           time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		Mileage:        24500,
		Cost:           850,
		NextDueMileage: &nextDue,
	})
	tax := createTax(t, testCtx, testCtx.AdminJWT, vehicle.ID, models.CreateTaxRequest{
		Year: 2026, Kind: models.TaxKindBoth, IPVAValue: 1100, LicensingValue: 155,
		DueDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})

	// An acknowledged alert travels with the backup.
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/notifications/read",
		models.MarkReadRequest{ID: tax.ID}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	first := exportBackup(t, testCtx, testCtx.AdminJWT)
	assert.Equal(t, models.BackupSchemaVersion, first.Backup.SchemaVersion)
	assert.True(t, strings.HasPrefix(first.Filename, "autocare_backup_"))
	assert.True(t, strings.HasSuffix(first.Filename, ".json"))
	assert.Len(t, first.Backup.Vehicles, 1)
	assert.Len(t, first.Backup.MaintenanceRecords, 1)
	assert.Len(t, first.Backup.TaxRecords, 1)
	assert.Len(t, first.Backup.Categories, 1)
	assert.Len(t, first.Backup.ReadNotifications, 1)
	if assert.NotNil(t, first.Backup.Settings) {
		assert.Equal(t, vehicle.ID, *first.Backup.Settings.CurrentVehicleID)
	}

	// Import into a different account; its collections become a copy.
	otherID, otherJWT := testutils.CreateTestAccount(
		t, testCtx.Repository, "restored", "password123", models.RoleUser)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/backup/import",
		first.Backup, testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	second := exportBackup(t, testCtx, otherJWT)

	// Ids and timestamps survive the round trip; only ownership moves.
	assert.Equal(t, first.Backup.Vehicles[0].ID, second.Backup.Vehicles[0].ID)
	assert.Equal(t, otherID, second.Backup.Vehicles[0].AccountID)
	assert.True(t, first.Backup.Vehicles[0].CreatedAt.Equal(second.Backup.Vehicles[0].CreatedAt))

	assert.Equal(t, first.Backup.MaintenanceRecords[0].ID, second.Backup.MaintenanceRecords[0].ID)
	assert.Equal(t, first.Backup.MaintenanceRecords[0].Cost, second.Backup.MaintenanceRecords[0].Cost)
	if assert.NotNil(t, second.Backup.MaintenanceRecords[0].CategoryID) {
		assert.Equal(t, category.ID, *second.Backup.MaintenanceRecords[0].CategoryID)
	}

	assert.Equal(t, first.Backup.TaxRecords[0].ID, second.Backup.TaxRecords[0].ID)
	assert.Equal(t, first.Backup.TaxRecords[0].TotalValue, second.Backup.TaxRecords[0].TotalValue)
	assert.True(t, first.Backup.TaxRecords[0].DueDate.Equal(second.Backup.TaxRecords[0].DueDate))

	assert.Equal(t, first.Backup.Categories[0].ID, second.Backup.Categories[0].ID)
	assert.Equal(t, "Motor", second.Backup.Categories[0].Name)

	if assert.Len(t, second.Backup.ReadNotifications, 1) {
		assert.Equal(t, tax.ID, second.Backup.ReadNotifications[0].ID)
	}

	// The restored account sees the alert as already acknowledged.
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/notifications/read",
		nil, testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var notifications []models.ReadNotification
	testutils.DecodeJSON(t, w, &notifications)
	if assert.Len(t, notifications, 1) {
		assert.Equal(t, tax.ID, notifications[0].ID)
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Existing data that the import must wipe.
	stale := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Fiat", Model: "Mobi", Year: 2019,
	})
	createMaintenance(t, testCtx, testCtx.AdminJWT, stale.ID, models.CreateMaintenanceRequest{
		ServiceType: "Troca de óleo",
		Date:        time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	})

	doc := models.BackupDocument{
		SchemaVersion: models.BackupSchemaVersion,
		ExportedAt:    time.Now().UTC(),
		Vehicles: []models.Vehicle{{
			ID: "veh-imported", AccountID: "ignored",
			Type: "motorcycle", Brand: "Yamaha", Model: "Fazer 250", Year: 2020,
			Mileage: 12000, MileageDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/backup/import",
		doc, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var vehicles []models.Vehicle
	testutils.DecodeJSON(t, w, &vehicles)
	if assert.Len(t, vehicles, 1) {
		assert.Equal(t, "veh-imported", vehicles[0].ID)
		assert.Equal(t, testCtx.AdminID, vehicles[0].AccountID)
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet,
		"/api/vehicles/"+stale.ID+"/maintenance", nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var records []models.MaintenanceRecord
	testutils.DecodeJSON(t, w, &records)
	assert.Empty(t, records)
}

func TestImportRejectsBrokenBackups(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	expectRejected := func(doc models.BackupDocument) {
		t.Helper()
		w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/backup/import",
			doc, testutils.AuthHeaders(testCtx.AdminJWT))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp models.ErrorResponse
		testutils.DecodeJSON(t, w, &errResp)
		assert.Equal(t, "INVALID_BACKUP", errResp.Code)
	}

	// Wrong schema version.
	expectRejected(models.BackupDocument{SchemaVersion: 99})

	// Maintenance record pointing at a vehicle the document lacks.
	expectRejected(models.BackupDocument{
		SchemaVersion: models.BackupSchemaVersion,
		MaintenanceRecords: []models.MaintenanceRecord{{
			ID: "m1", VehicleID: "ghost",
			ServiceType: "Revisão", Date: time.Now(),
		}},
	})

	// Duplicate vehicle ids.
	expectRejected(models.BackupDocument{
		SchemaVersion: models.BackupSchemaVersion,
		Vehicles: []models.Vehicle{
			{ID: "v1", Type: "car", Brand: "A", Model: "B", Year: 2020},
			{ID: "v1", Type: "car", Brand: "C", Model: "D", Year: 2021},
		},
	})

	// A rejected import leaves existing data untouched.
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)
}
