package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"console-rental-backend/internal/model"
	"console-rental-backend/internal/rental"
)

// GetSessions handles GET /api/sessions.
func GetSessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessions []model.Session
		if err := db.Order("id").Find(&sessions).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

type startSessionRequest struct {
	CustomerName string `json:"customerName"`
}

// StartSession handles POST /api/devices/:device_id/sessions.
func (h *Handler) StartSession(c *gin.Context) {
	deviceID, err := strconv.ParseInt(c.Param("device_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	var req startSessionRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session, err := h.store.StartSession(c.Request.Context(), deviceID, req.CustomerName, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, rental.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		case errors.Is(err, rental.ErrDeviceBusy):
			c.JSON(http.StatusConflict, gin.H{"error": rental.ErrDeviceBusy.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// EndSession handles POST /api/devices/:device_id/sessions/end. A drifted
// device (occupied with no session row) is released and reported as a
// warning, not a failure.
func (h *Handler) EndSession(c *gin.Context) {
	deviceID, err := strconv.ParseInt(c.Param("device_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	session, err := h.store.EndSession(c.Request.Context(), deviceID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, rental.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		case errors.Is(err, rental.ErrNoActiveSession):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rental.ErrNoActiveSession.Error()})
		case errors.Is(err, rental.ErrSessionDrift):
			h.pool.Dispatch(deviceID)
			c.JSON(http.StatusOK, gin.H{"warning": rental.ErrSessionDrift.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		}
		return
	}

	h.pool.Dispatch(deviceID)
	c.JSON(http.StatusOK, session)
}

// PatchSession handles PATCH /api/sessions/:session_id for corrective edits.
func (h *Handler) PatchSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("session_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session model.Session
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.ID = id

	if err := h.store.UpdateSession(c.Request.Context(), &session); err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
		return
	}
	c.JSON(http.StatusOK, session)
}
