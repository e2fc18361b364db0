// Package dataaccess implements the data-access token: a scoped credential
// granting publish/subscribe permissions on named streams, issued in exchange
// for a control-plane access token.
package dataaccess

import (
	"strings"

	"github.com/streamgate-io/sdk-go/token"
)

// Token is a data-access token for the platform's protocol brokers.
//
// Construct it only via Parse so the decoded claims always agree with the raw
// token string.
type Token struct {
	Gen      int64                   `json:"gen"`
	Endpoint string                  `json:"endpoint"`
	Ports    Ports                   `json:"ports"`
	Iss      string                  `json:"iss"`
	Claims   []token.TopicPermission `json:"claims"`
	Exp      int64                   `json:"exp"`
	ClientID string                  `json:"client-id"`
	Iat      int64                   `json:"iat"`
	TenantID string                  `json:"tenant-id"`

	raw string
}

// Ports lists the broker ports a client may connect to, per protocol flavor.
type Ports struct {
	MQTTS   []int `json:"mqtts"`
	MQTTWSS []int `json:"mqttwss"`
}

// Parse decodes a compact data-access-token string into a Token.
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

// EndpointWSS returns the websocket URL of the broker endpoint.
func (t Token) EndpointWSS() string {
	return "wss://" + t.Endpoint + "/mqtt"
}

// PortMQTT returns the broker port for the mqtt protocol.
func (t Token) PortMQTT() int {
	if len(t.Ports.MQTTS) == 0 {
		return 8883
	}
	return t.Ports.MQTTS[0]
}

// PortWSS returns the broker port for the websocket protocol.
func (t Token) PortWSS() int {
	if len(t.Ports.MQTTWSS) == 0 {
		return 443
	}
	return t.Ports.MQTTWSS[0]
}

// String renders the token without its signature segment, so it can be logged
// without leaking a usable credential.
func (t Token) String() string {
	parts := strings.Split(t.raw, ".")
	if len(parts) < 2 {
		return t.raw
	}
	return parts[0] + "." + parts[1]
}
