// internal/api/handlers/booking_handler.go
package handlers

import (
	"net/http"

	"freightflow-api-server/internal/api/middleware"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/service"
	"freightflow-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Bookings *service.BookingService
}

type CreateBookingRequest struct {
	QuoteID             string             `json:"quoteId" binding:"required"`
	CarrierQuoteID      string             `json:"carrierQuoteId" binding:"required"`
	CustomerDetails     models.ContactInfo `json:"customerDetails"`
	PickupDetails       models.StopDetails `json:"pickupDetails"`
	DeliveryDetails     models.StopDetails `json:"deliveryDetails"`
	SpecialInstructions string             `json:"specialInstructions"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed in_transit delivered cancelled"`
	Notes  string `json:"notes"`
}

// CreateBooking converts a carrier offer on an existing quote into a
// confirmed booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	booking, err := h.Bookings.CreateBooking(c.Request.Context(), ident, service.BookingRequest{
		QuoteID:             req.QuoteID,
		CarrierQuoteID:      req.CarrierQuoteID,
		CustomerDetails:     req.CustomerDetails,
		PickupDetails:       req.PickupDetails,
		DeliveryDetails:     req.DeliveryDetails,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		switch err {
		case service.ErrQuoteNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		case service.ErrInvalidCarrierOffer:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Carrier offer does not belong to the quote"})
		case service.ErrOfferExpired:
			c.JSON(http.StatusConflict, gin.H{"error": "Carrier offer has expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "booking": booking})
}

// InstantBook runs quoting and booking in one call, picking the
// cheapest carrier offer.
func (h *BookingHandler) InstantBook(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	quote, booking, source, err := h.Bookings.InstantQuoteAndBook(c.Request.Context(), ident, service.QuoteRequest{
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
		switch err {
		case service.ErrUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case service.ErrNoOffers:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No carrier offers available", "quote": quote})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book instantly", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":     "success",
		"quote":      quote,
		"booking":    booking,
		"rateSource": source,
	})
}

// GetBooking returns one booking by its external id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookings returns the caller's bookings, newest first.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	bookings, err := h.Bookings.ListMyBookings(c.Request.Context(), ident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListBookings returns every booking, for the admin dashboard.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateStatus applies a back-office status change to one booking.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "bookingId": c.Param("id")})
}
