// internal/esign/client.go
package esign

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"freightflow-api-server/config"

	"github.com/golang-jwt/jwt/v5"
)

// Client talks to the e-signature provider's REST API. Authentication
// uses the JWT grant: a short-lived RS256 assertion is exchanged for an
// access token before each request batch.
type Client struct {
	baseURL        string
	oauthBaseURL   string
	integrationKey string
	userID         string
	accountID      string
	privateKeyPEM  string
	httpClient     *http.Client
}

func NewClient(cfg config.ESignConfig) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		oauthBaseURL:   cfg.OAuthBaseURL,
		integrationKey: cfg.IntegrationKey,
		userID:         cfg.UserID,
		accountID:      cfg.AccountID,
		privateKeyPEM:  cfg.PrivateKey,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Signer is one envelope recipient. The first signer gets the
// sign-here tab on page 1.
type Signer struct {
	Email string
	Name  string
}

// EnvelopeDocument is the PDF sent for signature.
type EnvelopeDocument struct {
	Name  string
	Bytes []byte
}

// EnvelopeResult is the provider's response to envelope creation.
type EnvelopeResult struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
}

// Recipient mirrors a signer's state as reported by the provider.
type Recipient struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"roleName"`
	RecipientID string `json:"recipientId"`
	Status      string `json:"status"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(strings.ReplaceAll(c.privateKeyPEM, `\n`, "\n")))
	if err != nil {
		return "", fmt.Errorf("failed to parse e-sign private key: %w", err)
	}

	oauthHost := strings.TrimPrefix(c.oauthBaseURL, "https://")
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   c.integrationKey,
		"sub":   c.userID,
		"aud":   oauthHost,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"scope": "signature impersonation",
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign e-sign assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthBaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	return tokenResp.AccessToken, nil
}

// CreateEnvelope sends the document for signature. Signer order follows
// the given slice; only the first signer receives a sign-here tab
// (page 1, fixed position).
func (c *Client) CreateEnvelope(ctx context.Context, doc EnvelopeDocument, signers []Signer, emailSubject string) (*EnvelopeResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	signerDefs := make([]map[string]interface{}, 0, len(signers))
	for i, s := range signers {
		def := map[string]interface{}{
			"email":        s.Email,
			"name":         s.Name,
			"recipientId":  fmt.Sprintf("%d", i+1),
			"routingOrder": fmt.Sprintf("%d", i+1),
		}
		if i == 0 {
			def["tabs"] = map[string]interface{}{
				"signHereTabs": []map[string]string{{
					"documentId": "1",
					"pageNumber": "1",
					"xPosition":  "100",
					"yPosition":  "150",
				}},
			}
		}
		signerDefs = append(signerDefs, def)
	}

	envelope := map[string]interface{}{
		"emailSubject": emailSubject,
		"status":       "sent",
		"documents": []map[string]string{{
			"documentBase64": base64.StdEncoding.EncodeToString(doc.Bytes),
			"name":           doc.Name,
			"fileExtension":  "pdf",
			"documentId":     "1",
		}},
		"recipients": map[string]interface{}{"signers": signerDefs},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2.1/accounts/%s/envelopes", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result EnvelopeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetEnvelopeStatus returns the provider's current envelope status.
func (c *Client) GetEnvelopeStatus(ctx context.Context, envelopeID string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v2.1/accounts/%s/envelopes/%s", c.baseURL, c.accountID, envelopeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var envelope struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}
	return envelope.Status, nil
}

// ListRecipients returns the envelope's signers and their statuses.
func (c *Client) ListRecipients(ctx context.Context, envelopeID string) ([]Recipient, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2.1/accounts/%s/envelopes/%s/recipients", c.baseURL, c.accountID, envelopeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var recipientsResp struct {
		Signers []Recipient `json:"signers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&recipientsResp); err != nil {
		return nil, err
	}
	return recipientsResp.Signers, nil
}

// apiError extracts the most useful message from a provider error
// body. The provider uses several shapes depending on which layer
// rejected the request.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var body struct {
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.ErrorDescription != "":
			return fmt.Errorf("e-sign provider: %s", body.ErrorDescription)
		case body.Message != "":
			return fmt.Errorf("e-sign provider: %s", body.Message)
		case body.Error != "":
			return fmt.Errorf("e-sign provider: %s", body.Error)
		}
	}
	if len(raw) > 0 {
		return fmt.Errorf("e-sign provider: %s", strings.TrimSpace(string(raw)))
	}
	return fmt.Errorf("e-sign provider: status %s", resp.Status)
}
