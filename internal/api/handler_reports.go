package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"console-rental-backend/internal/model"
)

// GetReports handles GET /api/reports.
func GetReports(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reports []model.DailyReport
		if err := db.Order("id").Find(&reports).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

// GenerateDailyReport handles POST /api/reports/daily?date=YYYY-MM-DD.
// Every call appends a new report entry, even for an already-reported date.
func (h *Handler) GenerateDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	rep, err := h.store.GenerateDailyReport(c.Request.Context(), date, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusCreated, rep)
}
