// internal/models/booking.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. Only "confirmed" is set by the converter; the rest
// are applied by back-office status updates.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusInTransit = "in_transit"
	BookingStatusDelivered = "delivered"
	BookingStatusCancelled = "cancelled"
)

// StopDetails describes one end of a booking (pickup or delivery).
type StopDetails struct {
	Address       string `bson:"address" json:"address"`
	Date          string `bson:"date" json:"date"`
	TimeWindow    string `bson:"timeWindow" json:"timeWindow"`
	ContactPerson string `bson:"contactPerson" json:"contactPerson"`
	ContactPhone  string `bson:"contactPhone" json:"contactPhone"`
}

// Booking is a confirmed conversion of a quote offer. The referenced
// carrierQuoteId must exist in the source quote's offer list at
// creation time.
type Booking struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	BookingID           string             `bson:"bookingId" json:"bookingId"`
	QuoteID             string             `bson:"quoteId" json:"quoteId"`
	CarrierQuoteID      string             `bson:"carrierQuoteId" json:"carrierQuoteId"`
	Status              string             `bson:"status" json:"status"`
	CustomerDetails     ContactInfo        `bson:"customerDetails" json:"customerDetails"`
	PickupDetails       StopDetails        `bson:"pickupDetails" json:"pickupDetails"`
	DeliveryDetails     StopDetails        `bson:"deliveryDetails" json:"deliveryDetails"`
	SpecialInstructions string             `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	UserID              string             `bson:"userID,omitempty" json:"userID,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
