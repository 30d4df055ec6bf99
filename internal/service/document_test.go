// internal/service/document_test.go
package service

import (
	"context"
	"testing"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(st store.Store) *DocumentService {
	return NewDocumentService(st, nil, nil, config.DocumentsConfig{
		TemplatesDir:  "./templates",
		AdminEmail:    "admin@freightflow.io",
		CustomerEmail: "customer@freightflow.io",
	})
}

func TestTemplateFile(t *testing.T) {
	assert.Equal(t, "bill-of-lading.pdf", templateFile("bill_of_lading"))
	assert.Equal(t, "bill-of-lading.pdf", templateFile("air_waybill"))
	assert.Equal(t, "certificate-of-origin.pdf", templateFile("certificate_of_origin"))
	assert.Equal(t, "dangerous-goods-declaration.pdf", templateFile("dangerous_goods_declaration"))
	// Unknown types fall back to the commercial invoice.
	assert.Equal(t, "commercial-invoice.pdf", templateFile("packing_list"))
	assert.Equal(t, "commercial-invoice.pdf", templateFile(""))
}

func TestBuildSignersDeduplicatesByEmail(t *testing.T) {
	signers := buildSigners([]RecipientInput{
		{Email: "A@example.com", Name: "Alice"},
		{Email: "a@example.com", Name: "Alice Again"},
		{Email: "bob@example.com", Name: "Bob"},
	}, "admin@x.io", "customer@x.io")

	require.Len(t, signers, 2)
	assert.Equal(t, "A@example.com", signers[0].Email)
	assert.Equal(t, "bob@example.com", signers[1].Email)
}

func TestBuildSignersSkipsBlankEmails(t *testing.T) {
	signers := buildSigners([]RecipientInput{
		{Email: "  ", Name: "Nobody"},
		{Email: "jane@example.com"},
	}, "admin@x.io", "customer@x.io")

	require.Len(t, signers, 1)
	assert.Equal(t, "jane@example.com", signers[0].Email)
	// Missing names default to the email address.
	assert.Equal(t, "jane@example.com", signers[0].Name)
}

func TestBuildSignersDefaultsToAdminAndCustomer(t *testing.T) {
	signers := buildSigners(nil, "admin@x.io", "customer@x.io")

	require.Len(t, signers, 2)
	assert.Equal(t, "admin@x.io", signers[0].Email)
	assert.Equal(t, "Admin", signers[0].Name)
	assert.Equal(t, "customer@x.io", signers[1].Email)
	assert.Equal(t, "Customer", signers[1].Name)
}

func TestCreateDocumentRequiresAuthentication(t *testing.T) {
	svc := newTestDocumentService(store.NewMemoryStore())

	_, err := svc.CreateDocument(context.Background(), nil, CreateDocumentRequest{Type: "commercial_invoice"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateDocumentDefaultsToDraft(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDocumentService(st)

	doc, err := svc.CreateDocument(context.Background(), testIdentity(), CreateDocumentRequest{
		Type:      "commercial_invoice",
		BookingID: "BK-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusDraft, doc.Status)
	assert.Equal(t, "customer-abc12345", doc.UserID)
	assert.NotEmpty(t, doc.DocumentID)

	stored, err := st.GetDocument(context.Background(), doc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, "BK-1", stored.BookingID)
}

func TestListMyDocumentsFilters(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDocumentService(st)
	ident := testIdentity()

	_, err := svc.CreateDocument(context.Background(), ident, CreateDocumentRequest{Type: "commercial_invoice", BookingID: "BK-1"})
	require.NoError(t, err)
	_, err = svc.CreateDocument(context.Background(), ident, CreateDocumentRequest{Type: "bill_of_lading", BookingID: "BK-1"})
	require.NoError(t, err)
	_, err = svc.CreateDocument(context.Background(), ident, CreateDocumentRequest{Type: "bill_of_lading", ShipmentID: "SHIP-001"})
	require.NoError(t, err)

	docs, err := svc.ListMyDocuments(context.Background(), ident, DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	docs, err = svc.ListMyDocuments(context.Background(), ident, DocumentFilter{Type: "bill_of_lading"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = svc.ListMyDocuments(context.Background(), ident, DocumentFilter{Type: "bill_of_lading", BookingID: "BK-1"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = svc.ListMyDocuments(context.Background(), ident, DocumentFilter{ShipmentID: "SHIP-001"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
