package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/lucasmn/autocare-server/internal/api/testutils"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	before, err := testCtx.Repository.ListAccounts(context.Background())
	assert.NoError(t, err)

	// Test case 1: Successful login
	loginReq := models.LoginRequest{
		Username: "testadmin",
		Password: "testpassword",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	testutils.DecodeJSON(t, w, &resp)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, testCtx.AdminID, resp.AccountID)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.Token)

	// Test case 2: Wrong password
	invalidLoginReq := models.LoginRequest{
		Username: "testadmin",
		Password: "wrongpassword",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		invalidLoginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Account not found
	nonExistentReq := models.LoginRequest{
		Username: "nonexistent",
		Password: "testpassword",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		nonExistentReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login never mutates the account set, no matter the outcome.
	after, err := testCtx.Repository.ListAccounts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestChangeOwnPassword(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/password",
		models.ChangePasswordRequest{Password: "newpassword"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Username: "testadmin", Password: "testpassword"},
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// New password does
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Username: "testadmin", Password: "newpassword"},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/vehicles", nil,
		testutils.AuthHeaders("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
