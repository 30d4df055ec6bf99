// internal/service/stage.go
package service

import (
	"strings"
	"time"

	"freightflow-api-server/internal/models"
)

// DeliveryStages is the ordered coarse progress scale derived from
// free-form carrier status text. Index 0 is the initial stage.
var DeliveryStages = []string{
	"picked_up",
	"in_transit",
	"out_for_delivery",
	"delivered",
}

// normalizeStatus lower-cases the raw status, collapses whitespace to
// underscores and matches it against the known stages by substring.
// Returns -1 when nothing matches; carrier status text is free-form,
// so this is a heuristic, not a state machine.
func normalizeStatus(raw string) int {
	if raw == "" {
		return -1
	}
	s := strings.Join(strings.Fields(strings.ToLower(raw)), "_")
	for i, stage := range DeliveryStages {
		if strings.Contains(s, stage) {
			return i
		}
	}
	return -1
}

// StageIndex classifies a shipment onto the delivery-stage scale. The
// explicit status wins; otherwise the most recent event's status (by
// parsed timestamp) is used. Unrecognized statuses default to stage 0.
func StageIndex(status string, events []models.TrackingEvent) int {
	if idx := normalizeStatus(status); idx >= 0 {
		return idx
	}

	var latest *models.TrackingEvent
	var latestTime time.Time
	for i := range events {
		t, err := time.Parse(time.RFC3339, events[i].Timestamp)
		if err != nil {
			// Unparsable provider timestamps sort first.
			t = time.Time{}
		}
		if latest == nil || t.After(latestTime) {
			latest = &events[i]
			latestTime = t
		}
	}
	if latest != nil {
		if idx := normalizeStatus(latest.Status); idx >= 0 {
			return idx
		}
	}
	return 0
}
