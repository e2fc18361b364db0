package token

import (
	"encoding/json"
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// segments are the three parts of a compact signed token:
// header.claims.signature. Only the claims segment is ever decoded locally;
// the signature is not verified (see the package doc).
type segments struct {
	header    string
	claims    string
	signature string
}

// split breaks a compact token string into its three segments. It fails with
// ErrMalformedToken unless there are exactly three non-empty segments.
func split(raw string) (segments, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return segments{}, fmt.Errorf("%w, got %d", ErrMalformedToken, len(parts))
	}
	for _, part := range parts {
		if part == "" {
			return segments{}, fmt.Errorf("%w, got an empty segment", ErrMalformedToken)
		}
	}
	return segments{header: parts[0], claims: parts[1], signature: parts[2]}, nil
}

// DecodeClaims decodes the claims segment of a compact token string into the
// given claims value. The segment is base64url (no padding) and its decoded
// bytes are JSON. Decode or unmarshal failures are reported as
// ErrMalformedClaims; a wrong segment count as ErrMalformedToken.
func DecodeClaims(raw string, claims any) error {
	segs, err := split(raw)
	if err != nil {
		return err
	}

	payload, err := jwtlib.NewParser().DecodeSegment(segs.claims)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedClaims, err)
	}

	if err := json.Unmarshal(payload, claims); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedClaims, err)
	}
	return nil
}
