// internal/geo/client_test.go
package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRouteBlocksLongHaulLane(t *testing.T) {
	client := NewClient(config.GeoConfig{APIKey: "test-key"}, store.NewMemoryStore())

	result, err := client.GetRoute(context.Background(), "Mumbai, India", "Lagos, Africa", "")
	require.NoError(t, err)
	assert.True(t, result.Blocked)
	assert.Empty(t, result.Points)
	assert.NotEmpty(t, result.Message)
}

func TestGetRouteServesFromCache(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	require.NoError(t, st.UpsertGeoRoute(context.Background(), models.GeoRoute{
		Key:       "driving-car::London, UK=>Hamburg, DE",
		Points:    []models.Coordinates{{Lat: 51.5, Lng: -0.1}, {Lat: 53.5, Lng: 10.0}},
		Distance:  740,
		Duration:  28000,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	// No provider behind the client; a cache miss would fail.
	client := NewClient(config.GeoConfig{APIKey: "test-key", BaseURL: "http://localhost:0"}, st)

	result, err := client.GetRoute(context.Background(), "London, UK", "Hamburg, DE", "")
	require.NoError(t, err)
	require.Len(t, result.Points, 2)
	assert.Equal(t, 740.0, result.Distance)
}

func TestGetRouteIgnoresExpiredCacheEntry(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	require.NoError(t, st.UpsertGeoRoute(context.Background(), models.GeoRoute{
		Key:       "driving-car::A=>B",
		Points:    []models.Coordinates{{Lat: 1, Lng: 1}},
		ExpiresAt: now.Add(-time.Hour),
	}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/driving-car", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features": [{
			"geometry": {"coordinates": [[10.0, 53.5], [9.9, 53.4]]},
			"properties": {"summary": {"distance": 12.3, "duration": 900}}
		}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeoConfig{APIKey: "test-key", BaseURL: srv.URL}, st)

	result, err := client.GetRoute(context.Background(), "A", "B", "")
	require.NoError(t, err)
	require.Len(t, result.Points, 2)
	// GeoJSON pairs are [lng, lat].
	assert.Equal(t, 53.5, result.Points[0].Lat)
	assert.Equal(t, 10.0, result.Points[0].Lng)
	assert.Equal(t, 12.3, result.Distance)

	// The fresh route replaces the expired cache entry.
	cached, err := st.GetGeoRoute(context.Background(), "driving-car::A=>B")
	require.NoError(t, err)
	assert.True(t, cached.ExpiresAt.After(time.Now()))
	assert.Len(t, cached.Points, 2)
}

func TestGetRouteRequiresAPIKey(t *testing.T) {
	client := NewClient(config.GeoConfig{}, store.NewMemoryStore())

	_, err := client.GetRoute(context.Background(), "A", "B", "")
	assert.Error(t, err)
}
