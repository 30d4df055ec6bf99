// internal/service/booking.go
package service

import (
	"context"
	"log"
	"time"

	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/rates"
	"freightflow-api-server/internal/store"
)

// BookingRequest converts one carrier offer of an existing quote into
// a booking.
type BookingRequest struct {
	QuoteID             string
	CarrierQuoteID      string
	CustomerDetails     models.ContactInfo
	PickupDetails       models.StopDetails
	DeliveryDetails     models.StopDetails
	SpecialInstructions string
}

// BookingService converts quotes into bookings and manages booking
// status.
type BookingService struct {
	store  store.Store
	quotes *QuoteService
}

func NewBookingService(st store.Store, quotes *QuoteService) *BookingService {
	return &BookingService{store: st, quotes: quotes}
}

// CreateBooking validates that the referenced quote exists and that the
// chosen offer belongs to it, then persists a confirmed booking.
//
// The offer validity window is a soft check: an offer whose validUntil
// fails to parse does not block the conversion, it is only logged so
// operators can audit how often malformed expiries occur.
func (s *BookingService) CreateBooking(ctx context.Context, ident *auth.Identity, req BookingRequest) (*models.Booking, error) {
	quote, err := s.store.GetQuote(ctx, req.QuoteID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	var selected *models.CarrierOffer
	for i := range quote.Offers {
		if quote.Offers[i].CarrierID == req.CarrierQuoteID {
			selected = &quote.Offers[i]
			break
		}
	}
	if selected == nil {
		return nil, ErrInvalidCarrierOffer
	}

	if selected.ValidUntil != "" {
		validUntil, parseErr := time.Parse(time.RFC3339, selected.ValidUntil)
		if parseErr != nil {
			log.Printf("booking: offer %s on quote %s has unparsable validUntil %q, allowing conversion",
				selected.CarrierID, quote.QuoteID, selected.ValidUntil)
		} else if time.Now().After(validUntil) {
			return nil, ErrOfferExpired
		}
	}

	now := time.Now()
	booking := models.Booking{
		BookingID:           newID("BK"),
		QuoteID:             req.QuoteID,
		CarrierQuoteID:      req.CarrierQuoteID,
		Status:              models.BookingStatusConfirmed,
		CustomerDetails:     req.CustomerDetails,
		PickupDetails:       req.PickupDetails,
		DeliveryDetails:     req.DeliveryDetails,
		SpecialInstructions: req.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if ident != nil {
		booking.UserID = ident.ExternalID
	}

	if err := s.store.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// InstantQuoteAndBook runs the quote and booking steps in one call,
// selecting the lowest-priced offer. Used by the express booking flow.
func (s *BookingService) InstantQuoteAndBook(ctx context.Context, ident *auth.Identity, req QuoteRequest) (*models.Quote, *models.Booking, rates.Source, error) {
	quote, source, err := s.quotes.CreateQuote(ctx, ident, req)
	if err != nil {
		return nil, nil, "", err
	}
	if len(quote.Offers) == 0 {
		return quote, nil, source, ErrNoOffers
	}

	cheapest := quote.Offers[0]
	for _, offer := range quote.Offers[1:] {
		if offer.Price.Amount < cheapest.Price.Amount {
			cheapest = offer
		}
	}

	booking, err := s.CreateBooking(ctx, ident, BookingRequest{
		QuoteID:         quote.QuoteID,
		CarrierQuoteID:  cheapest.CarrierID,
		CustomerDetails: req.ContactInfo,
		PickupDetails:   models.StopDetails{Address: req.Origin},
		DeliveryDetails: models.StopDetails{Address: req.Destination},
	})
	if err != nil {
		return quote, nil, source, err
	}
	return quote, booking, source, nil
}

// GetBooking loads one booking by its external id.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.store.GetBooking(ctx, bookingID)
}

// ListMyBookings returns the caller's bookings, newest first.
func (s *BookingService) ListMyBookings(ctx context.Context, ident *auth.Identity) ([]models.Booking, error) {
	if ident == nil {
		return []models.Booking{}, nil
	}
	return s.store.ListBookingsByUser(ctx, ident.ExternalID)
}

// ListBookings returns every booking, for the admin dashboard.
func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListBookings(ctx)
}

// UpdateStatus applies a back-office status change.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, status, notes string) error {
	return s.store.UpdateBookingStatus(ctx, bookingID, status, notes)
}
