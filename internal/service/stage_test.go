// internal/service/stage_test.go
package service

import (
	"testing"

	"freightflow-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, 0, normalizeStatus("Picked Up"))
	assert.Equal(t, 1, normalizeStatus("In Transit"))
	assert.Equal(t, 1, normalizeStatus("package in   transit at hub"))
	assert.Equal(t, 2, normalizeStatus("Out for Delivery"))
	assert.Equal(t, 3, normalizeStatus("DELIVERED"))
	assert.Equal(t, -1, normalizeStatus("customs hold"))
	assert.Equal(t, -1, normalizeStatus(""))
}

func TestStageIndexExplicitStatusWins(t *testing.T) {
	events := []models.TrackingEvent{
		{Timestamp: "2026-08-29T10:00:00Z", Status: "Delivered"},
	}
	assert.Equal(t, 1, StageIndex("In Transit", events))
}

func TestStageIndexFallsBackToLatestEvent(t *testing.T) {
	events := []models.TrackingEvent{
		{Timestamp: "2026-08-27T10:00:00Z", Status: "Picked up"},
		{Timestamp: "2026-08-29T10:00:00Z", Status: "Out for delivery"},
		{Timestamp: "2026-08-28T10:00:00Z", Status: "In Transit"},
	}
	assert.Equal(t, 2, StageIndex("customs hold", events))
}

func TestStageIndexUnparsableTimestampsSortFirst(t *testing.T) {
	events := []models.TrackingEvent{
		{Timestamp: "yesterday", Status: "Delivered"},
		{Timestamp: "2026-08-29T10:00:00Z", Status: "In Transit"},
	}
	assert.Equal(t, 1, StageIndex("", events))
}

func TestStageIndexDefaultsToZero(t *testing.T) {
	assert.Equal(t, 0, StageIndex("", nil))
	assert.Equal(t, 0, StageIndex("customs hold", []models.TrackingEvent{
		{Timestamp: "2026-08-29T10:00:00Z", Status: "arrived at facility"},
	}))
}
