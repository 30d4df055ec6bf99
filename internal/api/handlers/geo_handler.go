// internal/api/handlers/geo_handler.go
package handlers

import (
	"net/http"

	"freightflow-api-server/internal/geo"

	"github.com/gin-gonic/gin"
)

type GeoHandler struct {
	Geo *geo.Client
}

// GetRoute resolves the map polyline between ?origin= and ?dest= using
// the optional ?profile=. Blocked lanes return 200 with empty points.
func (h *GeoHandler) GetRoute(c *gin.Context) {
	origin := c.Query("origin")
	dest := c.Query("dest")
	if origin == "" || dest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing origin or destination"})
		return
	}

	result, err := h.Geo.GetRoute(c.Request.Context(), origin, dest, c.Query("profile"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Route calculation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
