// internal/service/errors.go
package service

import "errors"

// Workflow failure taxonomy. Handlers map these onto HTTP statuses.
var (
	ErrUnauthorized        = errors.New("authentication required")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrInvalidCarrierOffer = errors.New("invalid carrier offer for this quote")
	ErrOfferExpired        = errors.New("selected offer has expired")
	ErrNoOffers            = errors.New("quote has no carrier offers")
)
