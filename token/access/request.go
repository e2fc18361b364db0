package access

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/streamgate-io/sdk-go/token"
)

// Request describes an access-token issuance request. The zero optional
// fields request a full-access token with the platform's default lifetime.
type Request struct {
	// Tenant is the tenant name or API-client name.
	Tenant string `json:"tenant"`
	// Exp optionally requests an expiry in seconds since the Unix epoch.
	Exp int64 `json:"exp,omitempty"`
	// Claims optionally restricts what the token may be exchanged for.
	Claims *Claims `json:"claims,omitempty"`
}

// NewRequest creates a full-access request for the given tenant.
func NewRequest(tenant string) Request {
	return Request{Tenant: tenant}
}

// WithExp sets the requested expiry (seconds since the Unix epoch).
func (r Request) WithExp(exp int64) Request {
	r.Exp = exp
	return r
}

// WithClaims sets the requested endpoint restrictions.
func (r Request) WithClaims(claims Claims) Request {
	r.Claims = &claims
	return r
}

// ClientID returns the external client identifier named in the requested
// claims, or the empty string when there is none.
func (r Request) ClientID() string {
	if r.Claims == nil {
		return ""
	}
	return r.Claims.ProtocolTokenClaim.ID
}

// Send posts the request to the issuance endpoint, authenticating with the
// tenant's API key, and parses the response body as a compact access token.
//
// Exactly one round-trip is made; nothing is retried. A non-success status is
// returned as a *token.CallError carrying the URL, status code and body.
func (r Request) Send(ctx context.Context, client *http.Client, apiKey, authURL string) (Token, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return Token{}, fmt.Errorf("failed to encode access token request: %w", err)
	}

	log.Debug().Str("url", authURL).Str("tenant", r.Tenant).Msg("requesting access token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, bytes.NewReader(body))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Token{}, err
	}
	defer resp.Body.Close()

	bodyText, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Token{}, &token.CallError{
			URL:        authURL,
			StatusCode: resp.StatusCode,
			Body:       string(bodyText),
		}
	}
	return Parse(string(bodyText))
}
