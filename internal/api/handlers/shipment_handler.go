// internal/api/handlers/shipment_handler.go
package handlers

import (
	"net/http"

	"freightflow-api-server/internal/api/middleware"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/service"
	"freightflow-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	Shipments *service.ShipmentService
}

type TrackingEventRequest struct {
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type UpsertTrackingRequest struct {
	Status            string                 `json:"status" binding:"required"`
	CurrentLocation   models.Location        `json:"currentLocation"`
	EstimatedDelivery string                 `json:"estimatedDelivery"`
	Carrier           string                 `json:"carrier"`
	TrackingNumber    string                 `json:"trackingNumber"`
	Service           string                 `json:"service"`
	ShipmentDetails   models.ShipmentDetails `json:"shipmentDetails"`
	Events            []TrackingEventRequest `json:"events"`
}

// UpsertTracking applies a tracking snapshot for the shipment id in the
// path, creating the shipment on first sight.
func (h *ShipmentHandler) UpsertTracking(c *gin.Context) {
	var req UpsertTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events := make([]service.TrackingEventInput, 0, len(req.Events))
	for _, e := range req.Events {
		events = append(events, service.TrackingEventInput{
			Timestamp:   e.Timestamp,
			Status:      e.Status,
			Location:    e.Location,
			Description: e.Description,
		})
	}

	ident := middleware.IdentityFromContext(c)
	shipment, err := h.Shipments.Upsert(c.Request.Context(), ident, c.Param("id"), service.TrackingSnapshot{
		Status:            req.Status,
		CurrentLocation:   req.CurrentLocation,
		EstimatedDelivery: req.EstimatedDelivery,
		Carrier:           req.Carrier,
		TrackingNumber:    req.TrackingNumber,
		Service:           req.Service,
		ShipmentDetails:   req.ShipmentDetails,
		Events:            events,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tracking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "shipment": shipment})
}

// GetTracking returns the shipment, its accumulated events and the
// derived delivery stage.
func (h *ShipmentHandler) GetTracking(c *gin.Context) {
	shipment, events, err := h.Shipments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shipment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipment":   shipment,
		"events":     events,
		"stageIndex": service.StageIndex(shipment.Status, events),
		"stages":     service.DeliveryStages,
	})
}

// ListShipments returns shipments with optional search and ownership
// filters (?search=...&mine=true).
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	onlyMine := c.Query("mine") == "true"
	shipments, err := h.Shipments.List(c.Request.Context(), ident, c.Query("search"), onlyMine)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shipments", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, shipments)
}
