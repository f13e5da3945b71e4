package api_test

import (
	"net/http"
	"testing"

	"github.com/lucasmn/autocare-server/internal/api/testutils"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSettingsDefaultsAndPatch(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// First read creates the row with defaults.
	settings := getSettings(t, testCtx, testCtx.AdminJWT)
	assert.False(t, settings.DarkMode)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, 1000, settings.MaintenanceAlertKm)
	assert.Equal(t, 30, settings.TaxAlertDays)
	assert.Nil(t, settings.CurrentVehicleID)

	// Patch a subset; untouched fields keep their values.
	dark := true
	alertKm := 500
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/settings",
		models.UpdateSettingsRequest{DarkMode: &dark, MaintenanceAlertKm: &alertKm},
		testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Settings
	testutils.DecodeJSON(t, w, &updated)
	assert.True(t, updated.DarkMode)
	assert.Equal(t, 500, updated.MaintenanceAlertKm)
	assert.True(t, updated.NotificationsEnabled)
	assert.Equal(t, 30, updated.TaxAlertDays)

	// Persisted across reads.
	settings = getSettings(t, testCtx, testCtx.AdminJWT)
	assert.True(t, settings.DarkMode)
	assert.Equal(t, 500, settings.MaintenanceAlertKm)
}

func TestSettingsScopedToAccount(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	_, otherJWT := testutils.CreateTestAccount(
		t, testCtx.Repository, "tenant", "password123", models.RoleUser)

	dark := true
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/settings",
		models.UpdateSettingsRequest{DarkMode: &dark}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	// The other account still sees its own defaults.
	settings := getSettings(t, testCtx, otherJWT)
	assert.False(t, settings.DarkMode)
}
