// internal/store/store.go
package store

import (
	"context"
	"errors"

	"freightflow-api-server/internal/models"
)

// ErrNotFound is returned when a record referenced by its external id
// does not exist.
var ErrNotFound = errors.New("record not found")

// Counts holds the record totals shown on the admin dashboard.
type Counts struct {
	Quotes    int64 `json:"quotes"`
	Bookings  int64 `json:"bookings"`
	Shipments int64 `json:"shipments"`
	Documents int64 `json:"documents"`
}

// Store is the document-store boundary for every workflow. Records are
// keyed by their externally visible ids (quoteId, bookingId, shipmentId,
// documentId, externalId) with one row per key. Implementations:
// MongoStore for production, MemoryStore for tests.
type Store interface {
	// Users
	InsertUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// Quotes (write-once)
	InsertQuote(ctx context.Context, quote models.Quote) error
	GetQuote(ctx context.Context, quoteID string) (*models.Quote, error)
	ListQuotesByUser(ctx context.Context, userID string) ([]models.Quote, error)

	// Bookings
	InsertBooking(ctx context.Context, booking models.Booking) error
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID, status, notes string) error

	// Shipments. UpdateShipmentTracking overwrites the mutable tracking
	// fields only; userID and createdAt are set on insert and never
	// changed afterwards.
	InsertShipment(ctx context.Context, shipment models.Shipment) error
	GetShipment(ctx context.Context, shipmentID string) (*models.Shipment, error)
	UpdateShipmentTracking(ctx context.Context, shipment models.Shipment) error
	ListShipments(ctx context.Context) ([]models.Shipment, error)
	ListShipmentsByUser(ctx context.Context, userID string) ([]models.Shipment, error)

	// AppendTrackingEvents is the single append point for tracking
	// events. Events are insert-only and not deduplicated; a future
	// dedup policy (timestamp+status+location) belongs here.
	AppendTrackingEvents(ctx context.Context, shipmentID string, events []models.TrackingEvent) error
	ListTrackingEvents(ctx context.Context, shipmentID string) ([]models.TrackingEvent, error)

	// Documents. SetDocumentEnvelope overwrites the envelope sub-record;
	// docStatus is applied when non-empty.
	InsertDocument(ctx context.Context, doc models.Document) error
	GetDocument(ctx context.Context, documentID string) (*models.Document, error)
	ListDocumentsByUser(ctx context.Context, userID string) ([]models.Document, error)
	SetDocumentEnvelope(ctx context.Context, documentID, docStatus string, env models.Envelope) error

	// Geo route cache
	GetGeoRoute(ctx context.Context, key string) (*models.GeoRoute, error)
	UpsertGeoRoute(ctx context.Context, route models.GeoRoute) error

	// Admin
	Counts(ctx context.Context) (Counts, error)
}
