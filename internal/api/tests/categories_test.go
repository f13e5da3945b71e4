package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/lucasmn/autocare-server/internal/api/testutils"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func listCategories(t *testing.T, testCtx *testutils.TestContext, jwt string) []models.Category {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/categories",
		nil, testutils.AuthHeaders(jwt))
	assert.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	testutils.DecodeJSON(t, w, &categories)
	return categories
}

func TestSeedDefaultCategories(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	assert.Empty(t, listCategories(t, testCtx, testCtx.AdminJWT))

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories/seed",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	seeded := listCategories(t, testCtx, testCtx.AdminJWT)
	assert.Len(t, seeded, 6)

	names := make(map[string]bool)
	for _, c := range seeded {
		names[c.Name] = true
		assert.NotEmpty(t, c.Color)
		assert.NotEmpty(t, c.Icon)
	}
	assert.True(t, names["Troca de óleo"])
	assert.True(t, names["Revisão"])

	// Seeding again over a non-empty set is a no-op.
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories/seed",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listCategories(t, testCtx, testCtx.AdminJWT), 6)

	// After deleting everything the seed repopulates.
	for _, c := range seeded {
		w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+c.ID,
			nil, testutils.AuthHeaders(testCtx.AdminJWT))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Empty(t, listCategories(t, testCtx, testCtx.AdminJWT))

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories/seed",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listCategories(t, testCtx, testCtx.AdminJWT), 6)
}

func TestCategoryCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Suspensão", Color: "#8e44ad", Icon: "car-wrench"},
		testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var category models.Category
	testutils.DecodeJSON(t, w, &category)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Suspensão", category.Name)

	newName := "Suspensão e direção"
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/categories/"+category.ID,
		models.UpdateCategoryRequest{Name: &newName}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Category
	testutils.DecodeJSON(t, w, &updated)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "#8e44ad", updated.Color)

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+category.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listCategories(t, testCtx, testCtx.AdminJWT))
}

func TestDeleteCategoryInUse(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	vehicle := createVehicle(t, testCtx, testCtx.AdminJWT, models.CreateVehicleRequest{
		Type: "car", Brand: "Fiat", Model: "Toro", Year: 2023,
	})

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Freios"}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var category models.Category
	testutils.DecodeJSON(t, w, &category)

	createMaintenance(t, testCtx, testCtx.AdminJWT, vehicle.ID, models.CreateMaintenanceRequest{
		CategoryID:  &category.ID,
		ServiceType: "Troca de pastilhas",
		Date:        time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
	})

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+category.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeJSON(t, w, &errResp)
	assert.Equal(t, "CATEGORY_IN_USE", errResp.Code)

	// Still listed.
	assert.Len(t, listCategories(t, testCtx, testCtx.AdminJWT), 1)
}
