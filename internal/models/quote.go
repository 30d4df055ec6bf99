// internal/models/quote.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceBreakdown itemizes an offer price. Only the base rate is sourced
// from the rate provider; the surcharge fields are zero placeholders.
type PriceBreakdown struct {
	BaseRate      float64 `bson:"baseRate" json:"baseRate"`
	FuelSurcharge float64 `bson:"fuelSurcharge" json:"fuelSurcharge"`
	SecurityFee   float64 `bson:"securityFee" json:"securityFee"`
	Documentation float64 `bson:"documentation" json:"documentation"`
}

type OfferPrice struct {
	Amount    float64        `bson:"amount" json:"amount"`
	Currency  string         `bson:"currency" json:"currency"`
	Breakdown PriceBreakdown `bson:"breakdown" json:"breakdown"`
}

// CarrierOffer is one normalized rate embedded in a quote.
type CarrierOffer struct {
	CarrierID   string     `bson:"carrierId" json:"carrierId"`
	CarrierName string     `bson:"carrierName" json:"carrierName"`
	ServiceType string     `bson:"serviceType" json:"serviceType"`
	TransitTime string     `bson:"transitTime" json:"transitTime"`
	Price       OfferPrice `bson:"price" json:"price"`
	ValidUntil  string     `bson:"validUntil" json:"validUntil"`
}

// Quote is a persisted rate request plus its carrier offers. Quotes are
// written once and never mutated.
type Quote struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	QuoteID            string             `bson:"quoteId" json:"quoteId"`
	Origin             string             `bson:"origin" json:"origin"`
	Destination        string             `bson:"destination" json:"destination"`
	ServiceType        string             `bson:"serviceType" json:"serviceType"`
	CargoType          string             `bson:"cargoType" json:"cargoType"`
	Weight             string             `bson:"weight" json:"weight"`
	Dimensions         Dimensions         `bson:"dimensions" json:"dimensions"`
	Value              string             `bson:"value" json:"value"`
	Incoterms          string             `bson:"incoterms" json:"incoterms"`
	Urgency            string             `bson:"urgency" json:"urgency"`
	AdditionalServices []string           `bson:"additionalServices" json:"additionalServices"`
	ContactInfo        ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	Status             string             `bson:"status" json:"status"`
	Offers             []CarrierOffer     `bson:"quotes" json:"quotes"`
	UserID             string             `bson:"userID,omitempty" json:"userID,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}
