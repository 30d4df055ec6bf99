// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"freightflow-api-server/internal/models"
)

// MemoryStore is an in-memory Store used by tests. It mirrors the
// Mongo implementation's semantics: one row per external id, updates
// patch only the mutable fields, events are insert-only.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]models.User // keyed by externalId
	quotes    map[string]models.Quote
	bookings  map[string]models.Booking
	shipments map[string]models.Shipment
	events    map[string][]models.TrackingEvent // keyed by shipmentId
	documents map[string]models.Document
	routes    map[string]models.GeoRoute
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]models.User),
		quotes:    make(map[string]models.Quote),
		bookings:  make(map[string]models.Booking),
		shipments: make(map[string]models.Shipment),
		events:    make(map[string][]models.TrackingEvent),
		documents: make(map[string]models.Document),
		routes:    make(map[string]models.GeoRoute),
	}
}

// --- Users ---

func (s *MemoryStore) InsertUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ExternalID] = user
	return nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[externalID]; ok {
		user := u
		return &user, nil
	}
	return nil, ErrNotFound
}

// --- Quotes ---

func (s *MemoryStore) InsertQuote(ctx context.Context, quote models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[quote.QuoteID] = quote
	return nil
}

func (s *MemoryStore) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.quotes[quoteID]; ok {
		quote := q
		return &quote, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListQuotesByUser(ctx context.Context, userID string) ([]models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quotes := []models.Quote{}
	for _, q := range s.quotes {
		if q.UserID == userID {
			quotes = append(quotes, q)
		}
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].CreatedAt.After(quotes[j].CreatedAt) })
	return quotes, nil
}

// --- Bookings ---

func (s *MemoryStore) InsertBooking(ctx context.Context, booking models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.BookingID] = booking
	return nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.bookings[bookingID]; ok {
		booking := b
		return &booking, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := []models.Booking{}
	for _, b := range s.bookings {
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	return bookings, nil
}

func (s *MemoryStore) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	return bookings, nil
}

func (s *MemoryStore) UpdateBookingStatus(ctx context.Context, bookingID, status, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[bookingID]
	if !ok {
		return ErrNotFound
	}
	booking.Status = status
	if notes != "" {
		booking.Notes = notes
	}
	booking.UpdatedAt = time.Now()
	s.bookings[bookingID] = booking
	return nil
}

// --- Shipments ---

func (s *MemoryStore) InsertShipment(ctx context.Context, shipment models.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments[shipment.ShipmentID] = shipment
	return nil
}

func (s *MemoryStore) GetShipment(ctx context.Context, shipmentID string) (*models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sh, ok := s.shipments[shipmentID]; ok {
		shipment := sh
		return &shipment, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateShipmentTracking(ctx context.Context, shipment models.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.shipments[shipment.ShipmentID]
	if !ok {
		return ErrNotFound
	}
	existing.Status = shipment.Status
	existing.CurrentLocation = shipment.CurrentLocation
	existing.EstimatedDelivery = shipment.EstimatedDelivery
	existing.Carrier = shipment.Carrier
	existing.TrackingNumber = shipment.TrackingNumber
	existing.Service = shipment.Service
	existing.ShipmentDetails = shipment.ShipmentDetails
	existing.LastUpdated = shipment.LastUpdated
	s.shipments[shipment.ShipmentID] = existing
	return nil
}

func (s *MemoryStore) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shipments := []models.Shipment{}
	for _, sh := range s.shipments {
		shipments = append(shipments, sh)
	}
	return shipments, nil
}

func (s *MemoryStore) ListShipmentsByUser(ctx context.Context, userID string) ([]models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shipments := []models.Shipment{}
	for _, sh := range s.shipments {
		if sh.UserID == userID {
			shipments = append(shipments, sh)
		}
	}
	return shipments, nil
}

func (s *MemoryStore) AppendTrackingEvents(ctx context.Context, shipmentID string, events []models.TrackingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		e.ShipmentID = shipmentID
		s.events[shipmentID] = append(s.events[shipmentID], e)
	}
	return nil
}

func (s *MemoryStore) ListTrackingEvents(ctx context.Context, shipmentID string) ([]models.TrackingEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := []models.TrackingEvent{}
	events = append(events, s.events[shipmentID]...)
	return events, nil
}

// --- Documents ---

func (s *MemoryStore) InsertDocument(ctx context.Context, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.DocumentID] = doc
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.documents[documentID]; ok {
		doc := d
		return &doc, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListDocumentsByUser(ctx context.Context, userID string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := []models.Document{}
	for _, d := range s.documents {
		if d.UserID == userID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

func (s *MemoryStore) SetDocumentEnvelope(ctx context.Context, documentID, docStatus string, env models.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return ErrNotFound
	}
	doc.Envelope = &env
	if docStatus != "" {
		doc.Status = docStatus
	}
	doc.UpdatedAt = time.Now()
	s.documents[documentID] = doc
	return nil
}

// --- Geo route cache ---

func (s *MemoryStore) GetGeoRoute(ctx context.Context, key string) (*models.GeoRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.routes[key]; ok {
		route := r
		return &route, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpsertGeoRoute(ctx context.Context, route models.GeoRoute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.routes[route.Key]; ok {
		route.CreatedAt = existing.CreatedAt
	}
	s.routes[route.Key] = route
	return nil
}

// --- Admin ---

func (s *MemoryStore) Counts(ctx context.Context) (Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Quotes:    int64(len(s.quotes)),
		Bookings:  int64(len(s.bookings)),
		Shipments: int64(len(s.shipments)),
		Documents: int64(len(s.documents)),
	}, nil
}
