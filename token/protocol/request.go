package protocol

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/streamgate-io/sdk-go/token"
)

// Request describes a protocol-token issuance request for a single device.
// The wire format carries a hash of the client identifier, not the identifier
// itself.
type Request struct {
	ID     string                  `json:"id"`
	Tenant string                  `json:"tenant"`
	Claims []token.TopicPermission `json:"claims,omitempty"`
}

// NewRequest builds a request for the given device. The client identifier is
// validated and then hashed into the request id.
func NewRequest(clientID, tenant string, claims []token.TopicPermission) (Request, error) {
	if err := token.ValidateClientID(clientID); err != nil {
		return Request{}, err
	}
	sum := sha256.Sum256([]byte(clientID))
	return Request{
		ID:     hex.EncodeToString(sum[:]),
		Tenant: tenant,
		Claims: claims,
	}, nil
}

// Send posts the request to the protocol authentication endpoint using bearer
// as the Authorization credential, and parses the response body as a compact
// protocol token.
//
// Exactly one round-trip is made; nothing is retried. A non-success status is
// returned as a *token.CallError carrying the URL, status code and body.
func (r Request) Send(ctx context.Context, client *http.Client, authURL, bearer string) (Token, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return Token{}, fmt.Errorf("failed to encode protocol token request: %w", err)
	}

	log.Debug().Str("url", authURL).Str("tenant", r.Tenant).Msg("requesting protocol token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, bytes.NewReader(body))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
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
