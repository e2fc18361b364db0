package token

import (
	"errors"
	"fmt"
)

// Errors shared by all token kinds and fetchers.
var (
	// ErrMalformedToken indicates a response body that does not split into
	// exactly three non-empty dot-separated segments.
	ErrMalformedToken = errors.New("malformed token: expected three dot-separated segments")

	// ErrMalformedClaims indicates a claims segment that is not valid
	// base64url or does not decode into the expected claims shape.
	ErrMalformedClaims = errors.New("malformed token claims")
)

// CallError is returned when an issuance endpoint responds with a non-success
// status. The response body is carried verbatim for diagnostics; it usually
// contains a human-readable reason.
type CallError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("error calling %s, status code %d: %s", e.URL, e.StatusCode, e.Body)
}

// ClientIDError is returned when a client identifier fails local validation
// before any network call is attempted.
type ClientIDError struct {
	ID     string
	Reason string
}

func (e *ClientIDError) Error() string {
	return fmt.Sprintf("invalid client id %q: %s", e.ID, e.Reason)
}
