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

// GetReservations handles GET /api/reservations.
func GetReservations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reservations []model.Reservation
		if err := db.Order("id").Find(&reservations).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}

type postReservationRequest struct {
	DeviceID   int64   `json:"deviceId" binding:"required"`
	CustomerID int64   `json:"customerId" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"startTime"`
	Duration   float64 `json:"duration"`
	Status     string  `json:"status"`
	Deposit    float64 `json:"deposit"`
}

// PostReservation handles POST /api/reservations.
func (h *Handler) PostReservation(c *gin.Context) {
	var req postReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation := model.Reservation{
		DeviceID:   req.DeviceID,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Duration:   req.Duration,
		Status:     req.Status,
		Deposit:    req.Deposit,
	}
	if err := h.store.AddReservation(c.Request.Context(), &reservation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// PatchReservation handles PATCH /api/reservations/:reservation_id.
func (h *Handler) PatchReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("reservation_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	var reservation model.Reservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reservation.ID = id

	if err := h.store.UpdateReservation(c.Request.Context(), &reservation); err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}
	c.JSON(http.StatusOK, reservation)
}
