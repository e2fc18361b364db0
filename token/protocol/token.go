// Package protocol implements the protocol-connection token handed to
// external devices: the credential a device presents when connecting to the
// platform's protocol brokers.
package protocol

import (
	"strings"

	"github.com/streamgate-io/sdk-go/token"
)

// Token is a protocol-connection token.
//
// Construct it only via Parse so the decoded claims always agree with the raw
// token string.
type Token struct {
	Gen      int64                   `json:"gen"`
	Endpoint string                  `json:"endpoint"`
	Iss      string                  `json:"iss"`
	Claims   []token.TopicPermission `json:"claims"`
	Exp      int64                   `json:"exp"`
	ClientID string                  `json:"client-id"`
	Iat      int64                   `json:"iat"`
	TenantID string                  `json:"tenant-id"`

	raw string
}

// Parse decodes a compact protocol-token string into a Token.
func Parse(raw string) (Token, error) {
	var t Token
	if err := token.DecodeClaims(raw, &t); err != nil {
		return Token{}, err
	}
	t.raw = raw
	return t, nil
}

// Raw returns the verbatim compact token string.
func (t Token) Raw() string { return t.raw }

// Expiry returns the expiry claim in seconds since the Unix epoch.
func (t Token) Expiry() int64 { return t.Exp }

// String renders the token without its signature segment, so it can be logged
// without leaking a usable credential.
func (t Token) String() string {
	parts := strings.Split(t.raw, ".")
	if len(parts) < 2 {
		return t.raw
	}
	return parts[0] + "." + parts[1]
}
