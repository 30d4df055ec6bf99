// internal/service/quote_test.go
package service

import (
	"context"
	"testing"
	"time"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/rates"
	"freightflow-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuoteService(st store.Store) *QuoteService {
	// No API key configured, so every rate lookup degrades to the
	// deterministic fallback pair.
	return NewQuoteService(st, rates.NewClient(config.RatesConfig{}))
}

func testIdentity() *auth.Identity {
	return &auth.Identity{ExternalID: "customer-abc12345", Email: "jane@example.com", Name: "Jane", Role: "customer"}
}

func TestCreateQuoteRequiresAuthentication(t *testing.T) {
	svc := newTestQuoteService(store.NewMemoryStore())

	_, _, err := svc.CreateQuote(context.Background(), nil, QuoteRequest{Origin: "London, UK", Destination: "Hamburg, DE"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateQuotePersistsOffers(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestQuoteService(st)

	quote, source, err := svc.CreateQuote(context.Background(), testIdentity(), QuoteRequest{
		Origin:      "London, UK",
		Destination: "Hamburg, DE",
		CargoType:   "general",
		Weight:      "120",
		Dimensions:  models.Dimensions{Length: "100", Width: "80", Height: "60"},
	})
	require.NoError(t, err)
	assert.Equal(t, rates.SourceFallback, source)
	assert.Equal(t, "success", quote.Status)
	assert.Equal(t, "customer-abc12345", quote.UserID)
	assert.NotEmpty(t, quote.QuoteID)
	require.Len(t, quote.Offers, 2)

	stored, err := st.GetQuote(context.Background(), quote.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, quote.QuoteID, stored.QuoteID)
}

func TestCreateQuoteBreakdownOnlyHasBaseRate(t *testing.T) {
	svc := newTestQuoteService(store.NewMemoryStore())

	quote, _, err := svc.CreateQuote(context.Background(), testIdentity(), QuoteRequest{
		Origin: "A", Destination: "B", Weight: "10",
	})
	require.NoError(t, err)

	for _, offer := range quote.Offers {
		assert.Equal(t, offer.Price.Amount, offer.Price.Breakdown.BaseRate)
		assert.Zero(t, offer.Price.Breakdown.FuelSurcharge)
		assert.Zero(t, offer.Price.Breakdown.SecurityFee)
		assert.Zero(t, offer.Price.Breakdown.Documentation)
	}
}

func TestCreateQuoteOffersValidForSevenDays(t *testing.T) {
	svc := newTestQuoteService(store.NewMemoryStore())

	quote, _, err := svc.CreateQuote(context.Background(), testIdentity(), QuoteRequest{Origin: "A", Destination: "B"})
	require.NoError(t, err)
	require.NotEmpty(t, quote.Offers)

	validUntil, err := time.Parse(time.RFC3339, quote.Offers[0].ValidUntil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), validUntil, time.Minute)
}

func TestCreateQuoteNormalizesAdditionalServices(t *testing.T) {
	svc := newTestQuoteService(store.NewMemoryStore())

	quote, _, err := svc.CreateQuote(context.Background(), testIdentity(), QuoteRequest{Origin: "A", Destination: "B"})
	require.NoError(t, err)
	assert.NotNil(t, quote.AdditionalServices)
	assert.Empty(t, quote.AdditionalServices)
}

func TestGetQuoteNotFound(t *testing.T) {
	svc := newTestQuoteService(store.NewMemoryStore())

	_, err := svc.GetQuote(context.Background(), "QT-missing")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestParseLoose(t *testing.T) {
	assert.Equal(t, 12.5, parseLoose("12.5"))
	assert.Equal(t, 0.0, parseLoose("about 12 kg"))
	assert.Equal(t, 0.0, parseLoose(""))
}
