// Package platform enumerates the StreamGate deployments a client can target
// and derives the per-deployment endpoints and identities from the platform
// name, so callers never hardcode URLs.
package platform

import "fmt"

// Platform identifies one StreamGate deployment.
type Platform string

const (
	// Prod is the production platform.
	Prod Platform = "prod"
	// ProdEU is the production platform in the EU region.
	ProdEU Platform = "prod-eu"
	// Staging is the pre-production platform.
	Staging Platform = "staging"
	// Dev is the development platform.
	Dev Platform = "dev"
	// Poc is the proof-of-concept platform.
	Poc Platform = "poc"
)

// Parse resolves a platform name as accepted on the command line or in
// configuration. Unknown names are an error, not a default.
func Parse(name string) (Platform, error) {
	switch Platform(name) {
	case Prod, ProdEU, Staging, Dev, Poc:
		return Platform(name), nil
	}
	return "", fmt.Errorf("unknown platform %q", name)
}

func (p Platform) domain() string {
	switch p {
	case Prod:
		return "streamgate.io"
	case ProdEU:
		return "eu.streamgate.io"
	case Staging:
		return "staging.streamgate.io"
	case Poc:
		return "poc.streamgate.io"
	default:
		return "dev.streamgate.io"
	}
}

// Realm returns the identity realm of the platform.
func (p Platform) Realm() string {
	switch p {
	case Prod:
		return "prod-stream"
	case ProdEU:
		return "prod-eu-stream"
	case Staging:
		return "staging-stream"
	case Poc:
		return "poc-stream"
	default:
		return "dev-stream"
	}
}

// RestClientID returns the client identifier a tenant uses against the
// management API of the platform.
func (p Platform) RestClientID(tenant string) string {
	return fmt.Sprintf("robot:%s:%s", p.Realm(), tenant)
}

// EndpointRestAPI returns the base URL of the platform's management REST API.
func (p Platform) EndpointRestAPI() string {
	return fmt.Sprintf("https://api.%s/resources/v0", p.domain())
}

// EndpointRestToken returns the URL where access tokens are issued against an
// API key.
func (p Platform) EndpointRestToken() string {
	return fmt.Sprintf("https://api.%s/auth/v0/token", p.domain())
}

// EndpointProtocolToken returns the URL where protocol-connection tokens are
// issued against an access token.
func (p Platform) EndpointProtocolToken() string {
	return fmt.Sprintf("https://api.%s/streams/v0/protocol/token", p.domain())
}

// EndpointManagementToken returns the OAuth token URL of the platform's
// identity provider, used by the management-API client.
func (p Platform) EndpointManagementToken() string {
	return fmt.Sprintf("https://auth.%s/auth/realms/%s/protocol/openid-connect/token", p.domain(), p.Realm())
}
