package api_test

import (
	"net/http"
	"testing"

	"github.com/lucasmn/autocare-server/internal/api/testutils"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAccountCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Create
	createReq := models.CreateAccountRequest{
		Username: "carlos",
		Password: "password123",
		Name:     "Carlos Silva",
		Email:    "carlos@example.com",
		Role:     models.RoleUser,
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		createReq, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Account
	testutils.DecodeJSON(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "carlos", created.Username)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.Empty(t, created.Password)

	// Duplicate username is rejected
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		createReq, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusConflict, w.Code)

	// List includes both accounts
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var accounts []models.Account
	testutils.DecodeJSON(t, w, &accounts)
	assert.Len(t, accounts, 2)

	// Update name
	newName := "Carlos A. Silva"
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/accounts/"+created.ID,
		models.UpdateAccountRequest{Name: &newName}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Account
	testutils.DecodeJSON(t, w, &updated)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "carlos", updated.Username)

	// Delete
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/accounts/"+created.ID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts",
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	testutils.DecodeJSON(t, w, &accounts)
	assert.Len(t, accounts, 1)
}

func TestLastAdminProtected(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	secondAdminID, secondAdminJWT := testutils.CreateTestAccount(
		t, testCtx.Repository, "admin2", "password123", models.RoleAdmin)

	// With two admins, deleting one is fine (not self).
	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/accounts/"+testCtx.AdminID,
		nil, testutils.AuthHeaders(secondAdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	// The survivor is the last admin and cannot be demoted.
	userRole := models.RoleUser
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/accounts/"+secondAdminID,
		models.UpdateAccountRequest{Role: &userRole}, testutils.AuthHeaders(secondAdminJWT))
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeJSON(t, w, &errResp)
	assert.Equal(t, "LAST_ADMIN", errResp.Code)
}

func TestDeleteSelfRejected(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/accounts/"+testCtx.AdminID,
		nil, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeJSON(t, w, &errResp)
	assert.Equal(t, "DELETE_SELF", errResp.Code)
}

func TestAccountEndpointsRequireAdmin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	_, userJWT := testutils.CreateTestAccount(
		t, testCtx.Repository, "plainuser", "password123", models.RoleUser)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts",
		nil, testutils.AuthHeaders(userJWT))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{
			Username: "x", Password: "password123", Name: "X", Role: models.RoleUser,
		}, testutils.AuthHeaders(userJWT))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminResetsUserPassword(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	userID, _ := testutils.CreateTestAccount(
		t, testCtx.Repository, "maria", "oldpassword", models.RoleUser)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts/"+userID+"/password",
		models.ChangePasswordRequest{Password: "freshpassword"}, testutils.AuthHeaders(testCtx.AdminJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Username: "maria", Password: "freshpassword"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
