package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"console-rental-backend/internal/model"
)

type postMaintenanceRequest struct {
	DeviceID            int64   `json:"deviceId" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	Description         string  `json:"description"`
	Cost                float64 `json:"cost"`
	Technician          string  `json:"technician"`
	NextMaintenanceDate string  `json:"nextMaintenanceDate"`
}

// PostMaintenance handles POST /api/maintenance. The record is stored even
// when the device no longer exists; only the device-side history update is
// skipped in that case.
func (h *Handler) PostMaintenance(c *gin.Context) {
	var req postMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := model.MaintenanceRecord{
		DeviceID:            req.DeviceID,
		Date:                req.Date,
		Description:         req.Description,
		Cost:                req.Cost,
		Technician:          req.Technician,
		NextMaintenanceDate: req.NextMaintenanceDate,
	}
	if err := h.store.AddMaintenance(c.Request.Context(), &record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add maintenance record"})
		return
	}
	c.JSON(http.StatusCreated, record)
}
