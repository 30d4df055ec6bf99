// internal/models/common.go
package models

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Location is a coarse city-level position reported by carriers.
type Location struct {
	City        string      `bson:"city" json:"city"`
	State       string      `bson:"state" json:"state"`
	Country     string      `bson:"country" json:"country"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
}

// ContactInfo is the contact block attached to quotes and bookings.
type ContactInfo struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Company string `bson:"company" json:"company"`
}

// Dimensions are stored as opaque strings, exactly as submitted.
// Carrier forms accept free text like "12.5" or "12,5"; nothing here
// validates them as numerics.
type Dimensions struct {
	Length string `bson:"length" json:"length"`
	Width  string `bson:"width" json:"width"`
	Height string `bson:"height" json:"height"`
}
