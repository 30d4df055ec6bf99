// internal/service/quote.go
package service

import (
	"context"
	"strconv"
	"time"

	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/rates"
	"freightflow-api-server/internal/store"
)

// offerValidity is how long a carrier offer stays bookable.
const offerValidity = 7 * 24 * time.Hour

// QuoteRequest is a shipment rate request as submitted by the caller.
// Cargo attributes arrive as free text and are stored verbatim.
type QuoteRequest struct {
	Origin             string
	Destination        string
	ServiceType        string
	CargoType          string
	Weight             string
	Dimensions         models.Dimensions
	Value              string
	Incoterms          string
	Urgency            string
	AdditionalServices []string
	ContactInfo        models.ContactInfo
}

// QuoteService builds and persists quotes from normalized carrier
// rates.
type QuoteService struct {
	store store.Store
	rates *rates.Client
}

func NewQuoteService(st store.Store, ratesClient *rates.Client) *QuoteService {
	return &QuoteService{store: st, rates: ratesClient}
}

// CreateQuote shops rates for the request and persists the resulting
// quote. The caller must be authenticated; rate-provider failures are
// already masked by the rates client, so the quote is persisted even
// when only fallback offers are available. The returned source tells
// provider responses from masked failures.
func (s *QuoteService) CreateQuote(ctx context.Context, ident *auth.Identity, req QuoteRequest) (*models.Quote, rates.Source, error) {
	if ident == nil {
		return nil, "", ErrUnauthorized
	}

	result := s.rates.GetRates(ctx, rates.Request{
		Origin:      req.Origin,
		Destination: req.Destination,
		Parcel: rates.Parcel{
			Weight: parseLoose(req.Weight),
			Length: parseLoose(req.Dimensions.Length),
			Width:  parseLoose(req.Dimensions.Width),
			Height: parseLoose(req.Dimensions.Height),
		},
		ServiceType: req.ServiceType,
	})

	validUntil := time.Now().Add(offerValidity).Format(time.RFC3339)
	offers := make([]models.CarrierOffer, 0, len(result.Rates))
	for _, r := range result.Rates {
		serviceType := req.ServiceType
		if serviceType == "" {
			serviceType = r.Service
		}
		offers = append(offers, models.CarrierOffer{
			CarrierID:   r.CarrierID,
			CarrierName: r.CarrierName,
			ServiceType: serviceType,
			TransitTime: r.TransitTime,
			Price: models.OfferPrice{
				Amount:   r.Amount,
				Currency: r.Currency,
				// Surcharges are not itemized by the provider; only
				// the base rate is real.
				Breakdown: models.PriceBreakdown{BaseRate: r.Amount},
			},
			ValidUntil: validUntil,
		})
	}

	quote := models.Quote{
		QuoteID:            newID("QT"),
		Origin:             req.Origin,
		Destination:        req.Destination,
		ServiceType:        req.ServiceType,
		CargoType:          req.CargoType,
		Weight:             req.Weight,
		Dimensions:         req.Dimensions,
		Value:              req.Value,
		Incoterms:          req.Incoterms,
		Urgency:            req.Urgency,
		AdditionalServices: req.AdditionalServices,
		ContactInfo:        req.ContactInfo,
		Status:             result.Status,
		Offers:             offers,
		UserID:             ident.ExternalID,
		CreatedAt:          time.Now(),
	}
	if quote.AdditionalServices == nil {
		quote.AdditionalServices = []string{}
	}

	if err := s.store.InsertQuote(ctx, quote); err != nil {
		return nil, "", err
	}
	return &quote, result.Source, nil
}

// GetQuote loads one quote by its external id.
func (s *QuoteService) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	quote, err := s.store.GetQuote(ctx, quoteID)
	if err == store.ErrNotFound {
		return nil, ErrQuoteNotFound
	}
	return quote, err
}

// ListMyQuotes returns the caller's quotes, newest first.
func (s *QuoteService) ListMyQuotes(ctx context.Context, ident *auth.Identity) ([]models.Quote, error) {
	if ident == nil {
		return []models.Quote{}, nil
	}
	return s.store.ListQuotesByUser(ctx, ident.ExternalID)
}

// parseLoose converts a free-text cargo attribute to a float, falling
// back to zero. Rate provider requests tolerate missing dimensions.
func parseLoose(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
