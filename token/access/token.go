// Package access implements the control-plane access token: the credential a
// tenant exchanges for data-access and protocol tokens.
package access

import (
	"strings"

	"github.com/streamgate-io/sdk-go/token"
)

// Token is a control-plane access token. It is obtained from the platform's
// authentication service with an API key and is used as the bearer credential
// when requesting more specific tokens.
//
// Construct it only via Parse so the decoded claims always agree with the raw
// token string.
type Token struct {
	Gen      int64  `json:"gen"`
	Endpoint string `json:"endpoint"`
	Iss      string `json:"iss"`
	Claims   Claims `json:"claims"`
	Exp      int64  `json:"exp"`
	TenantID string `json:"tenant-id"`

	raw string
}

// Claims are the (optional) endpoint restrictions an access token carries. If
// no claims are present the token has full access to all endpoints.
type Claims struct {
	ProtocolTokenClaim ProtocolTokenClaim `json:"streams/v0/protocol/token"`
}

// ProtocolTokenClaim restricts the protocol-token endpoint: which external
// client the token may delegate for and how long delegated tokens may live.
type ProtocolTokenClaim struct {
	// ID is the external client identifier the delegated token is bound to.
	ID string `json:"id,omitempty"`
	// Tenant is the tenant name.
	Tenant string `json:"tenant,omitempty"`
	// RelExp is the maximum delegated-token lifetime in seconds from issuance.
	RelExp int64 `json:"relexp,omitempty"`
	// Exp is the requested expiry in seconds since the Unix epoch.
	Exp int64 `json:"exp,omitempty"`
}

// Parse decodes a compact access-token string into a Token.
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

// ClientID returns the external client identifier from the claims, or the
// empty string when the token is not bound to one.
func (t Token) ClientID() string { return t.Claims.ProtocolTokenClaim.ID }

// String renders the token without its signature segment, so it can be logged
// without leaking a usable credential.
func (t Token) String() string {
	parts := strings.Split(t.raw, ".")
	if len(parts) < 2 {
		return t.raw
	}
	return parts[0] + "." + parts[1]
}
