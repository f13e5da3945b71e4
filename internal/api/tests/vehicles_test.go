package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/lucasmn/autocare-server/internal/api/testutils"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func createVehicle(t *testing.T, testCtx *testutils.TestContext, jwt string, req models.CreateVehicleRequest) models.Vehicle {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/vehicles",
		req, testutils.AuthHeaders(jwt))
	assert.Equal(t, http.StatusCreated, w.Code)

	var vehicle models.Vehicle
	testutils.DecodeJSON(t, w, &vehicle)
	return vehicle
}

func getSettings(t *testing.T, testCtx *testutils.TestContext, jwt string) models.Settings {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/settings",
		nil, testutils.AuthHeaders(jwt))
	assert.Equal(t, http.StatusOK, w.Code)

	var settings models.Settings
	testutils.DecodeJSON(t, w, &settings)
	return settings
}

func TestVehicleCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	vehicle := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type:    "car",
		Brand:   "Volkswagen",
		Model:   "Gol",
		Year:    2018,
		Plate:   "ABC1D23",
		Mileage: 45000,
	})
	assert.NotEmpty(t, vehicle.ID)
	assert.Equal(t, 45000, vehicle.Mileage)

	// Get
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles/"+vehicle.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched models.Vehicle
	testutils.DecodeJSON(t, w, &fetched)
	assert.Equal(t, vehicle.ID, fetched.ID)
	assert.Equal(t, "Gol", fetched.Model)

	// Partial update leaves untouched fields alone
	newPlate := "XYZ9Z99"
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/vehicles/"+vehicle.ID,
		models.UpdateVehicleRequest{Plate: &newPlate}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Vehicle
	testutils.DecodeJSON(t, w, &updated)
	assert.Equal(t, newPlate, updated.Plate)
	assert.Equal(t, "Volkswagen", updated.Brand)
	assert.Equal(t, 45000, updated.Mileage)

	// Delete
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/vehicles/"+vehicle.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles/"+vehicle.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFirstVehicleBecomesCurrent(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	settings := getSettings(t, testCtx, testCtx.AdminJWT)
	assert.Nil(t, settings.CurrentVehicleID)

	first := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Fiat", Model: "Uno", Year: 2010,
	})

	settings = getSettings(t, testCtx, testCtx.AdminJWT)
	if assert.NotNil(t, settings.CurrentVehicleID) {
		assert.Equal(t, first.ID, *settings.CurrentVehicleID)
	}

	// A second vehicle does not steal the pointer.
	second := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "motorcycle", Brand: "Honda", Model: "CG 160", Year: 2022,
	})

	settings = getSettings(t, testCtx, testCtx.AdminJWT)
	if assert.NotNil(t, settings.CurrentVehicleID) {
		assert.Equal(t, first.ID, *settings.CurrentVehicleID)
	}

	// Switching explicitly works.
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/vehicles/"+second.ID+"/current",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	settings = getSettings(t, testCtx, testCtx.AdminJWT)
	if assert.NotNil(t, settings.CurrentVehicleID) {
		assert.Equal(t, second.ID, *settings.CurrentVehicleID)
	}
}

func TestDeleteCurrentVehicleClearsPointer(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	first := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Fiat", Model: "Uno", Year: 2010,
	})
	createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Chevrolet", Model: "Onix", Year: 2021,
	})

	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/vehicles/"+first.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	// No auto-selection of a replacement.
	settings := getSettings(t, testCtx, testCtx.AdminJWT)
	assert.Nil(t, settings.CurrentVehicleID)
}

func TestUpdateMileageOverwrites(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	vehicle := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Toyota", Model: "Corolla", Year: 2020, Mileage: 60000,
	})

	readingDate := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/vehicles/"+vehicle.ID+"/mileage",
		models.UpdateMileageRequest{Mileage: 61500, Date: readingDate},
		testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Vehicle
	testutils.DecodeJSON(t, w, &updated)
	assert.Equal(t, 61500, updated.Mileage)
	assert.True(t, readingDate.Equal(updated.MileageDate))

	// A lower reading is accepted as a correction.
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/vehicles/"+vehicle.ID+"/mileage",
		models.UpdateMileageRequest{Mileage: 59000, Date: readingDate},
		testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	testutils.DecodeJSON(t, w, &updated)
	assert.Equal(t, 59000, updated.Mileage)
}

func TestVehiclesScopedToAccount(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	_, otherJWT := testutils.CreateTestAccount(
		t, testCtx.Repository, "otheruser", "password123", models.RoleUser)

	vehicle := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Fiat", Model: "Argo", Year: 2023,
	})

	// Another account cannot see, update or delete it.
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles/"+vehicle.ID,
		nil, testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/vehicles/"+vehicle.ID,
		nil, testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles",
		nil, testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var vehicles []models.Vehicle
	testutils.DecodeJSON(t, w, &vehicles)
	assert.Empty(t, vehicles)
}
