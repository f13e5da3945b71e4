package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lucasmn/autocare-server/internal/api"
	"github.com/lucasmn/autocare-server/internal/config"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/lucasmn/autocare-server/internal/repository"
	"github.com/lucasmn/autocare-server/internal/service"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	JWTSecret  []byte
	DB         *sqlx.DB
	AdminID    string
	AdminJWT   string
}

// SetupTestContext creates a new test context backed by a private
// in-memory SQLite database, so tests are hermetic and independent.
func SetupTestContext(t *testing.T) *TestContext {
	cfg := config.LoadConfig()
	cfg.Database.Driver = "sqlite3"
	// A unique shared-cache name keeps each test's database isolated
	// while it stays alive for every pooled connection.
	cfg.Database.SQLitePath = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	cfg.Auth.JWTSecret = testJWTSecret

	db, err := config.SetupDatabase(cfg)
	assert.NoError(t, err, "Failed to set up test database")
	t.Cleanup(func() { db.Close() })

	repo := repository.NewSQLRepository(db)
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, 24*time.Hour)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	adminID, adminJWT := CreateTestAccount(t, repo, "testadmin", "testpassword", models.RoleAdmin)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		DB:         db,
		AdminID:    adminID,
		AdminJWT:   adminJWT,
	}
}

// CreateTestAccount inserts an account directly through the repository
// and returns its id together with a signed JWT.
func CreateTestAccount(t *testing.T, repo repository.Repository, username, password, role string) (string, string) {
	t.Helper()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	account := &models.Account{
		ID:       uuid.New().String(),
		Username: username,
		Password: string(hashedPassword),
		Name:     "Test " + username,
		Email:    username + "@example.com",
		Role:     role,
	}

	err := repo.CreateAccount(context.Background(), account)
	assert.NoError(t, err, "Failed to create test account")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err, "Failed to generate JWT token")

	return account.ID, tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// DecodeJSON unmarshals a recorded response body into out.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	assert.NoError(t, err, "Failed to decode response body")
}
