// internal/service/shipment.go
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/socket"
	"freightflow-api-server/internal/store"
)

// TrackingEventInput is one carrier status line as received from a
// tracking refresh.
type TrackingEventInput struct {
	Timestamp   string
	Status      string
	Location    string
	Description string
}

// TrackingSnapshot is the full tracking state submitted on each
// refresh.
type TrackingSnapshot struct {
	Status            string
	CurrentLocation   models.Location
	EstimatedDelivery string
	Carrier           string
	TrackingNumber    string
	Service           string
	ShipmentDetails   models.ShipmentDetails
	Events            []TrackingEventInput
}

// ShipmentService owns the tracking upsert and lookup flows. Updates
// are pushed to the owning user's websocket connection when one is
// registered.
type ShipmentService struct {
	store store.Store
	hub   *socket.Hub
}

func NewShipmentService(st store.Store, hub *socket.Hub) *ShipmentService {
	return &ShipmentService{store: st, hub: hub}
}

// Upsert applies a tracking snapshot to the shipment keyed by
// shipmentID. On first sight the row is inserted and the caller (if
// authenticated) is bound as owner; the owner is never changed
// afterwards, even when a different user later tracks the same id. On
// refresh every mutable tracking field is overwritten. Events are
// appended unconditionally, without deduplication against earlier
// refreshes.
func (s *ShipmentService) Upsert(ctx context.Context, ident *auth.Identity, shipmentID string, snapshot TrackingSnapshot) (*models.Shipment, error) {
	now := time.Now()
	shipment := models.Shipment{
		ShipmentID:        shipmentID,
		Status:            snapshot.Status,
		CurrentLocation:   snapshot.CurrentLocation,
		EstimatedDelivery: snapshot.EstimatedDelivery,
		Carrier:           snapshot.Carrier,
		TrackingNumber:    snapshot.TrackingNumber,
		Service:           snapshot.Service,
		ShipmentDetails:   snapshot.ShipmentDetails,
		LastUpdated:       now,
	}

	existing, err := s.store.GetShipment(ctx, shipmentID)
	switch {
	case err == store.ErrNotFound:
		if ident != nil {
			shipment.UserID = ident.ExternalID
		}
		shipment.CreatedAt = now
		if err := s.store.InsertShipment(ctx, shipment); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := s.store.UpdateShipmentTracking(ctx, shipment); err != nil {
			return nil, err
		}
		shipment.UserID = existing.UserID
		shipment.CreatedAt = existing.CreatedAt
	}

	if len(snapshot.Events) > 0 {
		events := make([]models.TrackingEvent, 0, len(snapshot.Events))
		for _, e := range snapshot.Events {
			events = append(events, models.TrackingEvent{
				Timestamp:   e.Timestamp,
				Status:      e.Status,
				Location:    e.Location,
				Description: e.Description,
				CreatedAt:   now,
			})
		}
		if err := s.store.AppendTrackingEvents(ctx, shipmentID, events); err != nil {
			return nil, err
		}
	}

	s.notifyOwner(&shipment)
	return &shipment, nil
}

func (s *ShipmentService) notifyOwner(shipment *models.Shipment) {
	if s.hub == nil || shipment.UserID == "" {
		return
	}
	payload := map[string]interface{}{
		"type":     "shipment.updated",
		"shipment": shipment,
	}
	if err := s.hub.SendJSON(shipment.UserID, payload); err != nil {
		log.Printf("shipment: failed to push update for %s: %v", shipment.ShipmentID, err)
	}
}

// Get returns the shipment row plus its full accumulated event
// collection.
func (s *ShipmentService) Get(ctx context.Context, shipmentID string) (*models.Shipment, []models.TrackingEvent, error) {
	shipment, err := s.store.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.store.ListTrackingEvents(ctx, shipmentID)
	if err != nil {
		return nil, nil, err
	}
	return shipment, events, nil
}

// List returns shipments, optionally scoped to the caller and
// optionally filtered by a case-insensitive substring across
// identifier, status, carrier, service, tracking number, origin and
// destination.
func (s *ShipmentService) List(ctx context.Context, ident *auth.Identity, search string, onlyMine bool) ([]models.Shipment, error) {
	var shipments []models.Shipment
	var err error
	if onlyMine {
		if ident == nil {
			return []models.Shipment{}, nil
		}
		shipments, err = s.store.ListShipmentsByUser(ctx, ident.ExternalID)
	} else {
		shipments, err = s.store.ListShipments(ctx)
	}
	if err != nil {
		return nil, err
	}

	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return shipments, nil
	}

	filtered := []models.Shipment{}
	for _, sh := range shipments {
		fields := []string{
			sh.ShipmentID,
			sh.Status,
			sh.Carrier,
			sh.Service,
			sh.TrackingNumber,
			sh.ShipmentDetails.Origin,
			sh.ShipmentDetails.Destination,
		}
		for _, f := range fields {
			if f != "" && strings.Contains(strings.ToLower(f), search) {
				filtered = append(filtered, sh)
				break
			}
		}
	}
	return filtered, nil
}
