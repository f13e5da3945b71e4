package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucasmn/autocare-server/internal/models"
)

// Vehicle handlers
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), c.GetString("accountId"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.service.GetVehicle(c.Request.Context(), c.GetString("accountId"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	if err := h.service.DeleteVehicle(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Vehicle deleted"})
}

func (h *Handler) UpdateMileage(c *gin.Context) {
	var req models.UpdateMileageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	vehicle, err := h.service.UpdateMileage(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) SetCurrentVehicle(c *gin.Context) {
	if err := h.service.SetCurrentVehicle(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Current vehicle updated"})
}

// Category handlers
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), c.GetString("accountId"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) SeedCategories(c *gin.Context) {
	categories, err := h.service.SeedDefaultCategories(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), c.GetString("accountId"), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Category deleted"})
}

// Settings handlers
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), c.GetString("accountId"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
