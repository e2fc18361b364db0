package dataaccess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/streamgate-io/sdk-go/token"
	"github.com/streamgate-io/sdk-go/token/access"
)

// Request describes a data-access-token issuance request on behalf of an
// external client. Zero optional fields request full access with the
// platform's default lifetime.
type Request struct {
	// Tenant is the tenant name the token is issued under.
	Tenant string `json:"tenant"`
	// ID is the external client identifier the token is bound to.
	ID string `json:"id"`
	// Exp optionally requests an expiry in seconds since the Unix epoch.
	Exp int64 `json:"exp,omitempty"`
	// Claims optionally restricts the token to specific topic permissions.
	Claims []token.TopicPermission `json:"claims,omitempty"`
	// ClientClaims optionally carries opaque claims passed through to the
	// issued token unchanged.
	ClientClaims json.RawMessage `json:"clc,omitempty"`
}

// NewRequest creates a full-access request binding the token to clientID.
func NewRequest(tenant, clientID string) Request {
	return Request{Tenant: tenant, ID: clientID}
}

// WithExp sets the requested expiry (seconds since the Unix epoch).
func (r Request) WithExp(exp int64) Request {
	r.Exp = exp
	return r
}

// WithClaims sets the requested topic permissions.
func (r Request) WithClaims(claims []token.TopicPermission) Request {
	r.Claims = claims
	return r
}

// WithClientClaims sets opaque pass-through claims.
func (r Request) WithClientClaims(clc json.RawMessage) Request {
	r.ClientClaims = clc
	return r
}

// Send posts the request to the token endpoint named in the access token's
// claims, using the access token as the bearer credential, and parses the
// response body as a compact data-access token.
//
// The client identifier is validated before any network traffic. Exactly one
// round-trip is made; nothing is retried. A non-success status is returned as
// a *token.CallError carrying the URL, status code and body.
func (r Request) Send(ctx context.Context, client *http.Client, accessToken access.Token) (Token, error) {
	if err := token.ValidateClientID(r.ID); err != nil {
		return Token{}, err
	}

	body, err := json.Marshal(r)
	if err != nil {
		return Token{}, fmt.Errorf("failed to encode data access token request: %w", err)
	}

	tokenURL := ensureHTTPSPrefix(accessToken.Endpoint) + "/streams/v0/protocol/token"
	log.Debug().Str("url", tokenURL).Str("tenant", r.Tenant).Str("client_id", r.ID).Msg("requesting data access token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken.Raw())
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
			URL:        tokenURL,
			StatusCode: resp.StatusCode,
			Body:       string(bodyText),
		}
	}
	return Parse(string(bodyText))
}

// ensureHTTPSPrefix normalizes an endpoint claim to an https URL; the issuer
// sometimes omits the scheme.
func ensureHTTPSPrefix(endpoint string) string {
	if strings.HasPrefix(endpoint, "https://") || strings.HasPrefix(endpoint, "http://") {
		return endpoint
	}
	return "https://" + endpoint
}
