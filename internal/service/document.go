// internal/service/document.go
package service

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/esign"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/s3"
	"freightflow-api-server/internal/store"
)

// templateFiles maps a document type to its PDF template. Unknown
// types fall back to the commercial invoice.
var templateFiles = map[string]string{
	"bill_of_lading":              "bill-of-lading.pdf",
	"air_waybill":                 "bill-of-lading.pdf",
	"commercial_invoice":          "commercial-invoice.pdf",
	"certificate_of_origin":       "certificate-of-origin.pdf",
	"dangerous_goods_declaration": "dangerous-goods-declaration.pdf",
}

const fallbackTemplate = "commercial-invoice.pdf"

func templateFile(documentType string) string {
	if name, ok := templateFiles[documentType]; ok {
		return name
	}
	return fallbackTemplate
}

// RecipientInput is a requested envelope signer.
type RecipientInput struct {
	Email string
	Name  string
}

// CreateDocumentRequest carries a new shipping document.
type CreateDocumentRequest struct {
	Type       string
	BookingID  string
	ShipmentID string
	Data       models.DocumentData
	Status     string
}

// DocumentFilter narrows a document listing.
type DocumentFilter struct {
	Type       string
	BookingID  string
	ShipmentID string
}

// DocumentService persists shipping documents and drives the
// e-signature envelope flow.
type DocumentService struct {
	store         store.Store
	esign         *esign.Client
	uploader      *s3.Uploader
	templatesDir  string
	adminEmail    string
	customerEmail string
}

// NewDocumentService wires the dispatcher. uploader may be nil when no
// archive bucket is configured.
func NewDocumentService(st store.Store, esignClient *esign.Client, uploader *s3.Uploader, cfg config.DocumentsConfig) *DocumentService {
	return &DocumentService{
		store:         st,
		esign:         esignClient,
		uploader:      uploader,
		templatesDir:  cfg.TemplatesDir,
		adminEmail:    cfg.AdminEmail,
		customerEmail: cfg.CustomerEmail,
	}
}

// CreateDocument persists a document scoped to the caller.
func (s *DocumentService) CreateDocument(ctx context.Context, ident *auth.Identity, req CreateDocumentRequest) (*models.Document, error) {
	if ident == nil {
		return nil, ErrUnauthorized
	}

	status := req.Status
	if status == "" {
		status = models.DocumentStatusDraft
	}

	now := time.Now()
	doc := models.Document{
		DocumentID: newID("DOC"),
		Type:       req.Type,
		BookingID:  req.BookingID,
		ShipmentID: req.ShipmentID,
		Data:       req.Data,
		Status:     status,
		UserID:     ident.ExternalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertDocument(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocument loads one document by its external id.
func (s *DocumentService) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	return s.store.GetDocument(ctx, documentID)
}

// ListMyDocuments returns the caller's documents, optionally filtered
// by type and booking/shipment linkage.
func (s *DocumentService) ListMyDocuments(ctx context.Context, ident *auth.Identity, filter DocumentFilter) ([]models.Document, error) {
	if ident == nil {
		return []models.Document{}, nil
	}
	docs, err := s.store.ListDocumentsByUser(ctx, ident.ExternalID)
	if err != nil {
		return nil, err
	}

	filtered := []models.Document{}
	for _, d := range docs {
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.BookingID != "" && d.BookingID != filter.BookingID {
			continue
		}
		if filter.ShipmentID != "" && d.ShipmentID != filter.ShipmentID {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

// SendForSignature dispatches the document's PDF template to the
// e-signature provider and stores the returned envelope on the
// document. When no recipients are supplied the fixed admin and
// customer addresses are used; duplicates are removed by
// case-insensitive email.
func (s *DocumentService) SendForSignature(ctx context.Context, ident *auth.Identity, documentID, documentType string, recipients []RecipientInput) (*models.Envelope, error) {
	if ident == nil {
		return nil, ErrUnauthorized
	}

	if _, err := s.store.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}

	filename := templateFile(documentType)
	fileBytes, err := os.ReadFile(filepath.Join(s.templatesDir, filename))
	if err != nil {
		return nil, err
	}

	signers := buildSigners(recipients, s.adminEmail, s.customerEmail)

	result, err := s.esign.CreateEnvelope(ctx,
		esign.EnvelopeDocument{Name: filename, Bytes: fileBytes},
		signers,
		"Please sign this document",
	)
	if err != nil {
		return nil, err
	}

	env := models.Envelope{
		EnvelopeID:  result.EnvelopeID,
		Status:      result.Status,
		LastUpdated: time.Now(),
	}
	for _, signer := range signers {
		env.Recipients = append(env.Recipients, models.EnvelopeRecipient{Email: signer.Email, Name: signer.Name})
	}

	// Archive the exact bytes that went out for signature. Best-effort:
	// a failed upload must not undo a successfully created envelope.
	if s.uploader != nil {
		url, upErr := s.uploader.UploadPDF(ctx, bytes.NewReader(fileBytes), "documents/"+documentID+".pdf")
		if upErr != nil {
			log.Printf("document: failed to archive %s: %v", documentID, upErr)
		} else {
			env.ArchiveURL = url
		}
	}

	if err := s.store.SetDocumentEnvelope(ctx, documentID, models.DocumentStatusIssued, env); err != nil {
		return nil, err
	}
	return &env, nil
}

// RefreshEnvelopeStatus polls the provider and overwrites the stored
// envelope sub-record with the current envelope and recipient state.
func (s *DocumentService) RefreshEnvelopeStatus(ctx context.Context, ident *auth.Identity, documentID, envelopeID string) (*models.Envelope, error) {
	if ident == nil {
		return nil, ErrUnauthorized
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	status, err := s.esign.GetEnvelopeStatus(ctx, envelopeID)
	if err != nil {
		return nil, err
	}
	signers, err := s.esign.ListRecipients(ctx, envelopeID)
	if err != nil {
		return nil, err
	}

	env := models.Envelope{
		EnvelopeID:  envelopeID,
		Status:      status,
		LastUpdated: time.Now(),
	}
	if doc.Envelope != nil {
		env.ArchiveURL = doc.Envelope.ArchiveURL
	}
	for _, signer := range signers {
		env.Recipients = append(env.Recipients, models.EnvelopeRecipient{
			Email:       signer.Email,
			Name:        signer.Name,
			Role:        signer.Role,
			RecipientID: signer.RecipientID,
			Status:      signer.Status,
		})
	}

	if err := s.store.SetDocumentEnvelope(ctx, documentID, "", env); err != nil {
		return nil, err
	}
	return &env, nil
}

// buildSigners normalizes the requested recipients into the provider
// signer list: defaults applied when empty, blank emails dropped,
// duplicates removed by lower-cased email, names defaulting to the
// email address.
func buildSigners(recipients []RecipientInput, adminEmail, customerEmail string) []esign.Signer {
	if len(recipients) == 0 {
		recipients = []RecipientInput{
			{Email: adminEmail, Name: "Admin"},
			{Email: customerEmail, Name: "Customer"},
		}
	}

	seen := make(map[string]bool)
	signers := []esign.Signer{}
	for _, r := range recipients {
		email := strings.TrimSpace(r.Email)
		key := strings.ToLower(email)
		if email == "" || seen[key] {
			continue
		}
		seen[key] = true
		name := r.Name
		if name == "" {
			name = email
		}
		signers = append(signers, esign.Signer{Email: email, Name: name})
	}
	return signers
}
