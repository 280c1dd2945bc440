package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSnapshot handles GET /api/snapshot, returning the full state document.
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read snapshot"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Reset handles POST /api/reset: wipes all sessions and devices.
func (h *Handler) Reset(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في مسح البيانات"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم مسح البيانات بنجاح"})
}
