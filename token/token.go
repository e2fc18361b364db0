// Package token holds the building blocks shared by every StreamGate token
// kind: the compact-token codec, the validity rule, the generic in-memory
// cache and the client-identifier validation rule.
//
// Tokens are never verified cryptographically in this SDK. The signature
// segment is carried around untouched; trust in a token's authenticity is
// delegated entirely to the TLS channel to the issuing endpoint.
package token

import "time"

// ValidityMargin is the number of seconds subtracted from a token's expiry
// when deciding staleness. It absorbs clock skew and the latency of a request
// that is already in flight when the check happens.
const ValidityMargin = 5

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Token is the behavior every signed token kind shares: access to the
// verbatim compact token string and to the decoded expiry claim.
type Token interface {
	// Raw returns the untouched compact token string, usable as a bearer
	// credential.
	Raw() string
	// Expiry returns the token's expiry claim in seconds since the Unix
	// epoch.
	Expiry() int64
}

// IsValid reports whether t is still usable at the given instant.
// A zero-value token (empty raw string, zero expiry) is never valid, which
// guarantees that the first access to a cache slot triggers a fetch.
func IsValid(t Token, now int64) bool {
	return t.Raw() != "" && t.Expiry() >= now+ValidityMargin
}
