// internal/api/handlers/admin_handler.go
package handlers

import (
	"net/http"

	"freightflow-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Store store.Store
}

// GetStats returns document counts for the admin dashboard.
func (h *AdminHandler) GetStats(c *gin.Context) {
	counts, err := h.Store.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes":    counts.Quotes,
		"bookings":  counts.Bookings,
		"shipments": counts.Shipments,
		"documents": counts.Documents,
	})
}
