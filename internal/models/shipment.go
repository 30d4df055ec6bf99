// internal/models/shipment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShipmentDetails is the cargo snapshot carried on a shipment row.
// Values are opaque strings copied from the carrier feed.
type ShipmentDetails struct {
	Weight      string `bson:"weight" json:"weight"`
	Dimensions  string `bson:"dimensions" json:"dimensions"`
	Origin      string `bson:"origin" json:"origin"`
	Destination string `bson:"destination" json:"destination"`
	Value       string `bson:"value" json:"value"`
}

// Shipment is the tracked state of one consignment, unique per
// shipmentId. All tracking fields are overwritten on every refresh;
// UserID and CreatedAt are set on insert and never touched again.
type Shipment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ShipmentID        string             `bson:"shipmentId" json:"shipmentId"`
	Status            string             `bson:"status" json:"status"`
	CurrentLocation   Location           `bson:"currentLocation" json:"currentLocation"`
	EstimatedDelivery string             `bson:"estimatedDelivery" json:"estimatedDelivery"`
	Carrier           string             `bson:"carrier" json:"carrier"`
	TrackingNumber    string             `bson:"trackingNumber" json:"trackingNumber"`
	Service           string             `bson:"service" json:"service"`
	ShipmentDetails   ShipmentDetails    `bson:"shipmentDetails" json:"shipmentDetails"`
	UserID            string             `bson:"userID,omitempty" json:"userID,omitempty"`
	LastUpdated       time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// TrackingEvent is one carrier status line. Events are append-only and
// never deduplicated; the Timestamp is provider-supplied free text and
// not necessarily well-ordered.
type TrackingEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ShipmentID  string             `bson:"shipmentId" json:"shipmentId"`
	Timestamp   string             `bson:"timestamp" json:"timestamp"`
	Status      string             `bson:"status" json:"status"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
