// internal/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document types.
const (
	DocumentTypeBillOfLading      = "bill_of_lading"
	DocumentTypeAirWaybill        = "air_waybill"
	DocumentTypeCommercialInvoice = "commercial_invoice"
)

// Document statuses.
const (
	DocumentStatusDraft        = "draft"
	DocumentStatusIssued       = "issued"
	DocumentStatusAcknowledged = "acknowledged"
	DocumentStatusArchived     = "archived"
)

// Party is one legal party named on a shipping document.
type Party struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	Contact string `bson:"contact" json:"contact"`
}

type DocumentParties struct {
	Shipper   Party  `bson:"shipper" json:"shipper"`
	Consignee Party  `bson:"consignee" json:"consignee"`
	Carrier   *Party `bson:"carrier,omitempty" json:"carrier,omitempty"`
}

type CargoDetails struct {
	Description string `bson:"description" json:"description"`
	Weight      string `bson:"weight" json:"weight"`
	Dimensions  string `bson:"dimensions" json:"dimensions"`
	Value       string `bson:"value" json:"value"`
	HSCode      string `bson:"hsCode,omitempty" json:"hsCode,omitempty"`
}

type RouteDetails struct {
	Origin          string `bson:"origin" json:"origin"`
	Destination     string `bson:"destination" json:"destination"`
	PortOfLoading   string `bson:"portOfLoading,omitempty" json:"portOfLoading,omitempty"`
	PortOfDischarge string `bson:"portOfDischarge,omitempty" json:"portOfDischarge,omitempty"`
}

// DocumentData is the structured payload of a shipping document.
type DocumentData struct {
	DocumentNumber string          `bson:"documentNumber" json:"documentNumber"`
	IssueDate      string          `bson:"issueDate" json:"issueDate"`
	Parties        DocumentParties `bson:"parties" json:"parties"`
	CargoDetails   CargoDetails    `bson:"cargoDetails" json:"cargoDetails"`
	RouteDetails   RouteDetails    `bson:"routeDetails" json:"routeDetails"`
	Terms          string          `bson:"terms,omitempty" json:"terms,omitempty"`
}

// EnvelopeRecipient mirrors a signer as reported by the e-signature
// provider.
type EnvelopeRecipient struct {
	Email       string `bson:"email" json:"email"`
	Name        string `bson:"name" json:"name"`
	Role        string `bson:"role,omitempty" json:"role,omitempty"`
	RecipientID string `bson:"recipientId,omitempty" json:"recipientId,omitempty"`
	Status      string `bson:"status,omitempty" json:"status,omitempty"`
}

// Envelope is the e-signature sub-record attached to a document once a
// signature flow has been started. Its Status field comes verbatim from
// the provider and is the source of truth for signature progress.
type Envelope struct {
	EnvelopeID  string              `bson:"envelopeId" json:"envelopeId"`
	Status      string              `bson:"status" json:"status"`
	Recipients  []EnvelopeRecipient `bson:"recipients,omitempty" json:"recipients,omitempty"`
	ArchiveURL  string              `bson:"archiveURL,omitempty" json:"archiveURL,omitempty"`
	LastUpdated time.Time           `bson:"lastUpdated" json:"lastUpdated"`
}

// Document is a persisted shipping document, optionally linked to a
// booking and/or shipment.
type Document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocumentID string             `bson:"documentId" json:"documentId"`
	Type       string             `bson:"type" json:"type"`
	BookingID  string             `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	ShipmentID string             `bson:"shipmentId,omitempty" json:"shipmentId,omitempty"`
	Data       DocumentData       `bson:"documentData" json:"documentData"`
	Status     string             `bson:"status" json:"status"`
	Envelope   *Envelope          `bson:"docusign,omitempty" json:"docusign,omitempty"`
	UserID     string             `bson:"userID,omitempty" json:"userID,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
