package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/lucasmn/autocare-server/internal/service"
)

// Handler holds the service and implements the HTTP handlers
type Handler struct {
	service service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{service: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/auth/login", h.Login)

	auth := api.Group("")
	auth.Use(AuthMiddleware())
	{
		auth.GET("/auth/me", h.Me)
		auth.POST("/auth/password", h.ChangeOwnPassword)

		auth.GET("/vehicles", h.ListVehicles)
		auth.POST("/vehicles", h.CreateVehicle)
		auth.GET("/vehicles/:id", h.GetVehicle)
		auth.PUT("/vehicles/:id", h.UpdateVehicle)
		auth.DELETE("/vehicles/:id", h.DeleteVehicle)
		auth.PUT("/vehicles/:id/mileage", h.UpdateMileage)
		auth.PUT("/vehicles/:id/current", h.SetCurrentVehicle)

		auth.GET("/vehicles/:id/maintenance", h.ListMaintenance)
		auth.POST("/vehicles/:id/maintenance", h.CreateMaintenance)
		auth.GET("/vehicles/:id/maintenance/upcoming", h.UpcomingMaintenance)
		auth.GET("/vehicles/:id/maintenance/overdue", h.OverdueMaintenance)
		auth.PUT("/maintenance/:id", h.UpdateMaintenance)
		auth.DELETE("/maintenance/:id", h.DeleteMaintenance)

		auth.GET("/vehicles/:id/taxes", h.ListTaxRecords)
		auth.POST("/vehicles/:id/taxes", h.CreateTaxRecord)
		auth.GET("/taxes/upcoming", h.UpcomingTaxes)
		auth.GET("/taxes/overdue", h.OverdueTaxes)
		auth.PUT("/taxes/:id", h.UpdateTaxRecord)
		auth.DELETE("/taxes/:id", h.DeleteTaxRecord)
		auth.PUT("/taxes/:id/status", h.SetTaxStatus)

		auth.GET("/categories", h.ListCategories)
		auth.POST("/categories", h.CreateCategory)
		auth.POST("/categories/seed", h.SeedCategories)
		auth.PUT("/categories/:id", h.UpdateCategory)
		auth.DELETE("/categories/:id", h.DeleteCategory)

		auth.GET("/settings", h.GetSettings)
		auth.PUT("/settings", h.UpdateSettings)

		auth.GET("/alerts", h.GetAlerts)
		auth.GET("/notifications/read", h.ListReadNotifications)
		auth.POST("/notifications/read", h.MarkNotificationRead)
		auth.POST("/notifications/read-all", h.MarkAllNotificationsRead)

		auth.GET("/backup/export", h.ExportBackup)
		auth.POST("/backup/import", h.ImportBackup)

		auth.GET("/dashboard", h.GetDashboard)

		admin := auth.Group("")
		admin.Use(AdminMiddleware())
		{
			admin.GET("/accounts", h.ListAccounts)
			admin.POST("/accounts", h.CreateAccount)
			admin.PUT("/accounts/:id", h.UpdateAccount)
			admin.DELETE("/accounts/:id", h.DeleteAccount)
			admin.POST("/accounts/:id/password", h.ChangeAccountPassword)
		}
	}
}

// Authentication handlers
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	account, err := h.service.GetAccount(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *Handler) ChangeOwnPassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetString("accountId"), req); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Password changed"})
}

// Account administration handlers
func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.service.ListAccounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	account, err := h.service.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	account, err := h.service.UpdateAccount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	err := h.service.DeleteAccount(c.Request.Context(), c.GetString("accountId"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Account deleted"})
}

func (h *Handler) ChangeAccountPassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.Param("id"), req); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Password changed"})
}

// Error helpers
func (h *Handler) bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "BAD_REQUEST",
		Message: err.Error(),
	})
}

// handleError maps sentinel errors to HTTP status codes in one place.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status: "error", Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status: "error", Code: "INVALID_CREDENTIALS", Message: err.Error(),
		})
	case errors.Is(err, models.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "DUPLICATE_USERNAME", Message: err.Error(),
		})
	case errors.Is(err, models.ErrLastAdmin):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "LAST_ADMIN", Message: err.Error(),
		})
	case errors.Is(err, models.ErrDeleteSelf):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "DELETE_SELF", Message: err.Error(),
		})
	case errors.Is(err, models.ErrCategoryInUse):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "CATEGORY_IN_USE", Message: err.Error(),
		})
	case errors.Is(err, models.ErrInvalidBackup):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status: "error", Code: "INVALID_BACKUP", Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: "error", Code: "INTERNAL_ERROR", Message: err.Error(),
		})
	}
}
