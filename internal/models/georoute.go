// internal/models/georoute.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoRoute is a cached routing-provider polyline, keyed by
// "profile::origin=>dest".
type GeoRoute struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Key       string             `bson:"key" json:"key"`
	Origin    string             `bson:"origin" json:"origin"`
	Dest      string             `bson:"dest" json:"dest"`
	Profile   string             `bson:"profile" json:"profile"`
	Points    []Coordinates      `bson:"points" json:"points"`
	Distance  float64            `bson:"distance,omitempty" json:"distance,omitempty"`
	Duration  float64            `bson:"duration,omitempty" json:"duration,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	ExpiresAt time.Time          `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}
