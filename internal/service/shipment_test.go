// internal/service/shipment_test.go
package service

import (
	"context"
	"testing"

	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesShipmentWithOwner(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	shipment, err := svc.Upsert(context.Background(), testIdentity(), "SHIP-001", TrackingSnapshot{
		Status:  "Picked up",
		Carrier: "DHL",
	})
	require.NoError(t, err)
	assert.Equal(t, "customer-abc12345", shipment.UserID)
	assert.False(t, shipment.CreatedAt.IsZero())
}

func TestUpsertKeepsOriginalOwner(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	_, err := svc.Upsert(context.Background(), testIdentity(), "SHIP-001", TrackingSnapshot{Status: "Picked up"})
	require.NoError(t, err)

	other := &auth.Identity{ExternalID: "customer-other999"}
	shipment, err := svc.Upsert(context.Background(), other, "SHIP-001", TrackingSnapshot{Status: "In Transit"})
	require.NoError(t, err)

	assert.Equal(t, "customer-abc12345", shipment.UserID)
	assert.Equal(t, "In Transit", shipment.Status)

	// Still a single row for the id.
	all, err := st.ListShipments(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertOverwritesTrackingFields(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	_, err := svc.Upsert(context.Background(), testIdentity(), "SHIP-001", TrackingSnapshot{
		Status:  "Picked up",
		Carrier: "DHL",
		CurrentLocation: models.Location{
			City: "London", Country: "UK",
		},
	})
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), testIdentity(), "SHIP-001", TrackingSnapshot{
		Status:  "In Transit",
		Carrier: "DHL",
		CurrentLocation: models.Location{
			City: "Rotterdam", Country: "NL",
		},
		EstimatedDelivery: "2026-09-05",
	})
	require.NoError(t, err)

	stored, err := st.GetShipment(context.Background(), "SHIP-001")
	require.NoError(t, err)
	assert.Equal(t, "In Transit", stored.Status)
	assert.Equal(t, "Rotterdam", stored.CurrentLocation.City)
	assert.Equal(t, "2026-09-05", stored.EstimatedDelivery)
}

func TestUpsertAccumulatesEventsWithoutDeduplication(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	snapshot := TrackingSnapshot{
		Status: "In Transit",
		Events: []TrackingEventInput{
			{Timestamp: "2026-08-28T08:00:00Z", Status: "Picked up", Location: "London"},
			{Timestamp: "2026-08-29T14:00:00Z", Status: "In Transit", Location: "Rotterdam"},
		},
	}

	_, err := svc.Upsert(context.Background(), testIdentity(), "SHIP-001", snapshot)
	require.NoError(t, err)
	// A second refresh resubmits the same events; both copies are kept.
	_, err = svc.Upsert(context.Background(), testIdentity(), "SHIP-001", snapshot)
	require.NoError(t, err)

	_, events, err := svc.Get(context.Background(), "SHIP-001")
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestGetUnknownShipment(t *testing.T) {
	svc := NewShipmentService(store.NewMemoryStore(), nil)

	_, _, err := svc.Get(context.Background(), "SHIP-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListFiltersBySearchTerm(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	_, err := svc.Upsert(context.Background(), testIdentity(), "SHIP-001", TrackingSnapshot{
		Status:  "In Transit",
		Carrier: "DHL",
		ShipmentDetails: models.ShipmentDetails{
			Origin:      "London, UK",
			Destination: "Hamburg, DE",
		},
	})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), testIdentity(), "SHIP-002", TrackingSnapshot{
		Status:  "Delivered",
		Carrier: "FedEx",
		ShipmentDetails: models.ShipmentDetails{
			Origin:      "Paris, FR",
			Destination: "Madrid, ES",
		},
	})
	require.NoError(t, err)

	results, err := svc.List(context.Background(), nil, "hamburg", false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SHIP-001", results[0].ShipmentID)

	results, err = svc.List(context.Background(), nil, "fedex", false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SHIP-002", results[0].ShipmentID)

	results, err = svc.List(context.Background(), nil, "", false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestListOnlyMineRequiresIdentity(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	_, err := svc.Upsert(context.Background(), testIdentity(), "SHIP-001", TrackingSnapshot{Status: "In Transit"})
	require.NoError(t, err)

	results, err := svc.List(context.Background(), nil, "", true)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.List(context.Background(), testIdentity(), "", true)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestOceanFreightTrackingScenario(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShipmentService(st, nil)

	_, err := svc.Upsert(context.Background(), testIdentity(), "MSKU7439871", TrackingSnapshot{
		Status:            "In Transit",
		Carrier:           "Maersk",
		Service:           "ocean_freight",
		EstimatedDelivery: "2026-09-10",
		CurrentLocation:   models.Location{City: "Rotterdam", Country: "NL"},
		ShipmentDetails: models.ShipmentDetails{
			Origin:      "London, UK",
			Destination: "Hamburg, DE",
			Weight:      "2400 kg",
		},
		Events: []TrackingEventInput{
			{Timestamp: "2026-08-25T09:00:00Z", Status: "Picked up", Location: "London, UK"},
			{Timestamp: "2026-08-28T16:30:00Z", Status: "In Transit", Location: "Rotterdam, NL"},
		},
	})
	require.NoError(t, err)

	shipment, events, err := svc.Get(context.Background(), "MSKU7439871")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, StageIndex(shipment.Status, events))
}
