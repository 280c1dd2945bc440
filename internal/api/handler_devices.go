package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"console-rental-backend/internal/model"
	"console-rental-backend/internal/rental"
)

// GetDevices handles GET /api/devices.
func GetDevices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var devices []model.Device
		if err := db.Order("id").Find(&devices).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve devices"})
			return
		}
		c.JSON(http.StatusOK, devices)
	}
}

type postDeviceRequest struct {
	Name       string  `json:"name" binding:"required"`
	HourlyRate float64 `json:"hourlyRate" binding:"required,gte=0"`
}

// PostDevice handles POST /api/devices. The new device is always created
// available, whatever the caller sent.
func (h *Handler) PostDevice(c *gin.Context) {
	var req postDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device := model.Device{
		Name:       req.Name,
		HourlyRate: req.HourlyRate,
	}
	if err := h.store.AddDevice(c.Request.Context(), &device); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create device"})
		return
	}
	c.JSON(http.StatusCreated, device)
}

// PatchDevice handles PATCH /api/devices/:device_id as a full replace by id.
func (h *Handler) PatchDevice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("device_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	var device model.Device
	if err := c.ShouldBindJSON(&device); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device.ID = id

	if err := h.store.UpdateDevice(c.Request.Context(), &device); err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device"})
		return
	}
	c.JSON(http.StatusOK, device)
}

// DeleteDevice handles DELETE /api/devices/:device_id. Sessions of the
// deleted device are orphaned on purpose.
func (h *Handler) DeleteDevice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("device_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	if err := h.store.DeleteDevice(c.Request.Context(), id); err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete device"})
		return
	}
	c.Status(http.StatusNoContent)
}
