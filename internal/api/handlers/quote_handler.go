// internal/api/handlers/quote_handler.go
package handlers

import (
	"net/http"

	"freightflow-api-server/internal/api/middleware"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/service"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	Quotes *service.QuoteService
}

type CreateQuoteRequest struct {
	Origin             string             `json:"origin" binding:"required"`
	Destination        string             `json:"destination" binding:"required"`
	ServiceType        string             `json:"serviceType"`
	CargoType          string             `json:"cargoType"`
	Weight             string             `json:"weight" binding:"required"`
	Dimensions         models.Dimensions  `json:"dimensions"`
	Value              string             `json:"value"`
	Incoterms          string             `json:"incoterms"`
	Urgency            string             `json:"urgency"`
	AdditionalServices []string           `json:"additionalServices"`
	ContactInfo        models.ContactInfo `json:"contactInfo"`
}

// CreateQuote shops rates for the request and returns the persisted
// quote with its carrier offers.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	quote, source, err := h.Quotes.CreateQuote(c.Request.Context(), ident, service.QuoteRequest{
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
	})
	if err != nil {
		if err == service.ErrUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":     "success",
		"quote":      quote,
		"rateSource": source,
	})
}

// GetQuote returns one quote by its external id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.Quotes.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrQuoteNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quote", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ListMyQuotes returns the caller's quotes, newest first.
func (h *QuoteHandler) ListMyQuotes(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	quotes, err := h.Quotes.ListMyQuotes(c.Request.Context(), ident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quotes", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quotes)
}
