package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucasmn/autocare-server/internal/models"
)

// Maintenance handlers
func (h *Handler) ListMaintenance(c *gin.Context) {
	records, err := h.service.ListMaintenance(c.Request.Context(), c.GetString("accountId"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) CreateMaintenance(c *gin.Context) {
	var req models.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	record, err := h.service.CreateMaintenance(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *Handler) UpdateMaintenance(c *gin.Context) {
	var req models.UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	record, err := h.service.UpdateMaintenance(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteMaintenance(c *gin.Context) {
	if err := h.service.DeleteMaintenance(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Maintenance record deleted"})
}

// UpcomingMaintenance accepts optional mileage and distance query
// overrides; defaults come from the vehicle odometer and the account's
// alert distance.
func (h *Handler) UpcomingMaintenance(c *gin.Context) {
	mileage, ok := h.optionalIntQuery(c, "mileage")
	if !ok {
		return
	}
	distance, ok := h.optionalIntQuery(c, "distance")
	if !ok {
		return
	}

	records, err := h.service.UpcomingMaintenance(c.Request.Context(), c.GetString("accountId"), c.Param("id"), mileage, distance)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) OverdueMaintenance(c *gin.Context) {
	mileage, ok := h.optionalIntQuery(c, "mileage")
	if !ok {
		return
	}

	records, err := h.service.OverdueMaintenance(c.Request.Context(), c.GetString("accountId"), c.Param("id"), mileage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Tax record handlers
func (h *Handler) ListTaxRecords(c *gin.Context) {
	records, err := h.service.ListTaxRecords(c.Request.Context(), c.GetString("accountId"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) CreateTaxRecord(c *gin.Context) {
	var req models.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	record, err := h.service.CreateTaxRecord(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *Handler) UpdateTaxRecord(c *gin.Context) {
	var req models.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	record, err := h.service.UpdateTaxRecord(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteTaxRecord(c *gin.Context) {
	if err := h.service.DeleteTaxRecord(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Tax record deleted"})
}

func (h *Handler) SetTaxStatus(c *gin.Context) {
	var req models.SetTaxStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	record, err := h.service.SetTaxStatus(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) UpcomingTaxes(c *gin.Context) {
	days, ok := h.optionalIntQuery(c, "days")
	if !ok {
		return
	}

	records, err := h.service.UpcomingTaxes(c.Request.Context(), c.GetString("accountId"), days)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) OverdueTaxes(c *gin.Context) {
	records, err := h.service.OverdueTaxes(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Alert and notification handlers
func (h *Handler) GetAlerts(c *gin.Context) {
	alerts, err := h.service.GetAlerts(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AlertsResponse{Status: "success", Alerts: alerts})
}

func (h *Handler) ListReadNotifications(c *gin.Context) {
	notifications, err := h.service.ListReadNotifications(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	var req models.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	if err := h.service.MarkAlertRead(c.Request.Context(), c.GetString("accountId"), req.ID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	var req models.MarkAllReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	if err := h.service.MarkAlertsRead(c.Request.Context(), c.GetString("accountId"), req.IDs); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// Backup handlers
func (h *Handler) ExportBackup(c *gin.Context) {
	resp, err := h.service.ExportBackup(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ImportBackup(c *gin.Context) {
	var doc models.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.bindingError(c, err)
		return
	}

	if err := h.service.ImportBackup(c.Request.Context(), c.GetString("accountId"), doc); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Backup imported"})
}

// Dashboard handler
func (h *Handler) GetDashboard(c *gin.Context) {
	resp, err := h.service.GetDashboard(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// optionalIntQuery parses an optional integer query parameter. The
// second return value is false when a response was already written.
func (h *Handler) optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "BAD_REQUEST",
			Message: "invalid " + name + " parameter",
		})
		return nil, false
	}

	return &value, true
}
