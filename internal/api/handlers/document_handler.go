// internal/api/handlers/document_handler.go
package handlers

import (
	"net/http"

	"freightflow-api-server/internal/api/middleware"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/service"
	"freightflow-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	Documents *service.DocumentService
}

type CreateDocumentRequest struct {
	Type       string              `json:"type" binding:"required"`
	BookingID  string              `json:"bookingId"`
	ShipmentID string              `json:"shipmentId"`
	Data       models.DocumentData `json:"documentData"`
	Status     string              `json:"status"`
}

type SendForSignatureRequest struct {
	DocumentType string                   `json:"documentType"`
	Recipients   []SignatureRecipientBody `json:"recipients"`
}

type SignatureRecipientBody struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type RefreshEnvelopeRequest struct {
	EnvelopeID string `json:"envelopeId" binding:"required"`
}

// CreateDocument persists a shipping document for the caller.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	doc, err := h.Documents.CreateDocument(c.Request.Context(), ident, service.CreateDocumentRequest{
		Type:       req.Type,
		BookingID:  req.BookingID,
		ShipmentID: req.ShipmentID,
		Data:       req.Data,
		Status:     req.Status,
	})
	if err != nil {
		if err == service.ErrUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "document": doc})
}

// GetDocument returns one document by its external id.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.Documents.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListMyDocuments returns the caller's documents, optionally filtered
// by ?type=, ?bookingId= and ?shipmentId=.
func (h *DocumentHandler) ListMyDocuments(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	docs, err := h.Documents.ListMyDocuments(c.Request.Context(), ident, service.DocumentFilter{
		Type:       c.Query("type"),
		BookingID:  c.Query("bookingId"),
		ShipmentID: c.Query("shipmentId"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// SendForSignature dispatches the document to the e-signature provider
// and stores the resulting envelope.
func (h *DocumentHandler) SendForSignature(c *gin.Context) {
	var req SendForSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipients := make([]service.RecipientInput, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		recipients = append(recipients, service.RecipientInput{Email: r.Email, Name: r.Name})
	}

	ident := middleware.IdentityFromContext(c)
	env, err := h.Documents.SendForSignature(c.Request.Context(), ident, c.Param("id"), req.DocumentType, recipients)
	if err != nil {
		switch err {
		case service.ErrUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send document for signature", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "envelope": env})
}

// RefreshEnvelope re-reads envelope and recipient state from the
// provider and stores the result on the document.
func (h *DocumentHandler) RefreshEnvelope(c *gin.Context) {
	var req RefreshEnvelopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	env, err := h.Documents.RefreshEnvelopeStatus(c.Request.Context(), ident, c.Param("id"), req.EnvelopeID)
	if err != nil {
		switch err {
		case service.ErrUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh envelope", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "envelope": env})
}
