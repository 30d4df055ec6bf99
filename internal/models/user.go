// internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is an account in the back office or customer portal. ExternalID
// is the stable subject identifier carried in JWTs and used as the
// owner reference on quotes, bookings, shipments and documents.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ExternalID string             `bson:"externalId" json:"externalId"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name" json:"name"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
