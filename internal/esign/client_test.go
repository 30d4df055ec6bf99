// internal/esign/client_test.go
package esign

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func errorResponse(body string) *http.Response {
	return &http.Response{
		Status:     "400 Bad Request",
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestAPIErrorPrefersErrorDescription(t *testing.T) {
	err := apiError(errorResponse(`{"error": "consent_required", "error_description": "user consent required"}`))
	assert.EqualError(t, err, "e-sign provider: user consent required")
}

func TestAPIErrorFallsBackToMessage(t *testing.T) {
	err := apiError(errorResponse(`{"message": "envelope is invalid"}`))
	assert.EqualError(t, err, "e-sign provider: envelope is invalid")
}

func TestAPIErrorFallsBackToErrorField(t *testing.T) {
	err := apiError(errorResponse(`{"error": "invalid_grant"}`))
	assert.EqualError(t, err, "e-sign provider: invalid_grant")
}

func TestAPIErrorUsesRawBodyWhenNotJSON(t *testing.T) {
	err := apiError(errorResponse("upstream timeout\n"))
	assert.EqualError(t, err, "e-sign provider: upstream timeout")
}

func TestAPIErrorUsesStatusWhenBodyEmpty(t *testing.T) {
	err := apiError(errorResponse(""))
	assert.EqualError(t, err, "e-sign provider: status 400 Bad Request")
}
