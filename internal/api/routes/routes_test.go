// internal/api/routes/routes_test.go
package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/esign"
	"freightflow-api-server/internal/geo"
	"freightflow-api-server/internal/rates"
	"freightflow-api-server/internal/service"
	"freightflow-api-server/internal/socket"
	"freightflow-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	wsHub := socket.NewHub()
	ratesClient := rates.NewClient(config.RatesConfig{})
	esignClient := esign.NewClient(config.ESignConfig{})
	geoClient := geo.NewClient(config.GeoConfig{APIKey: "test-key"}, st)

	quoteService := service.NewQuoteService(st, ratesClient)
	bookingService := service.NewBookingService(st, quoteService)
	shipmentService := service.NewShipmentService(st, wsHub)
	documentService := service.NewDocumentService(st, esignClient, nil, config.DocumentsConfig{
		TemplatesDir:  "./templates",
		AdminEmail:    "admin@freightflow.io",
		CustomerEmail: "customer@freightflow.io",
	})

	return SetupRouter(st, quoteService, bookingService, shipmentService, documentService, geoClient, wsHub)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "jane@example.com",
		"name":     "Jane",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter()
	registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	router := newTestRouter()
	registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "jane@example.com",
		"name":     "Jane Again",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestQuoteToBookingFlow(t *testing.T) {
	router := newTestRouter()
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/quotes/", token, gin.H{
		"origin":      "London, UK",
		"destination": "Hamburg, DE",
		"weight":      "120",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var quoteResp struct {
		RateSource string `json:"rateSource"`
		Quote      struct {
			QuoteID string `json:"quoteId"`
			Offers  []struct {
				CarrierID string `json:"carrierId"`
			} `json:"quotes"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quoteResp))
	require.NotEmpty(t, quoteResp.Quote.QuoteID)
	require.NotEmpty(t, quoteResp.Quote.Offers)
	assert.Equal(t, "fallback", quoteResp.RateSource)

	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings/", token, gin.H{
		"quoteId":        quoteResp.Quote.QuoteID,
		"carrierQuoteId": quoteResp.Quote.Offers[0].CarrierID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var bookingResp struct {
		Booking struct {
			BookingID string `json:"bookingId"`
			Status    string `json:"status"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookingResp))
	assert.Equal(t, "confirmed", bookingResp.Booking.Status)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/"+bookingResp.Booking.BookingID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingRejectsForeignOffer(t *testing.T) {
	router := newTestRouter()
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/quotes/", token, gin.H{
		"origin":      "London, UK",
		"destination": "Hamburg, DE",
		"weight":      "120",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var quoteResp struct {
		Quote struct {
			QuoteID string `json:"quoteId"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quoteResp))

	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings/", token, gin.H{
		"quoteId":        quoteResp.Quote.QuoteID,
		"carrierQuoteId": "NOT-ON-THE-QUOTE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackingIsPubliclyReadable(t *testing.T) {
	router := newTestRouter()
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/shipments/SHIP-001/tracking", token, gin.H{
		"status":  "In Transit",
		"carrier": "DHL",
		"events": []gin.H{
			{"timestamp": "2026-08-28T08:00:00Z", "status": "Picked up", "location": "London"},
			{"timestamp": "2026-08-29T14:00:00Z", "status": "In Transit", "location": "Rotterdam"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Public read, no token.
	w = doJSON(t, router, http.MethodGet, "/api/v1/shipments/SHIP-001/tracking", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var trackResp struct {
		StageIndex int `json:"stageIndex"`
		Events     []struct {
			Status string `json:"status"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trackResp))
	assert.Equal(t, 1, trackResp.StageIndex)
	assert.Len(t, trackResp.Events, 2)
}

func TestTrackingUpsertRequiresAuthentication(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/shipments/SHIP-001/tracking", "", gin.H{
		"status": "In Transit",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	router := newTestRouter()
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGeoRouteBlocksLongHaulLane(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/geo/route?origin=Mumbai,+India&dest=Lagos,+Africa", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Blocked bool `json:"blocked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Blocked)

	w = doJSON(t, router, http.MethodGet, "/api/v1/geo/route?origin=Mumbai", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentCreateAndList(t *testing.T) {
	router := newTestRouter()
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/documents/", token, gin.H{
		"type":      "commercial_invoice",
		"bookingId": "BK-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var docResp struct {
		Document struct {
			DocumentID string `json:"documentId"`
			Status     string `json:"status"`
		} `json:"document"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docResp))
	assert.Equal(t, "draft", docResp.Document.Status)

	w = doJSON(t, router, http.MethodGet, "/api/v1/documents/?bookingId=BK-1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var docs []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	assert.Len(t, docs, 1)
}
