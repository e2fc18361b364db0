// Package managementapi authenticates against the platform's management REST
// API with OAuth client credentials, reusing tokens until they expire.
package managementapi

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/streamgate-io/sdk-go/platform"
)

// Client holds the client-credentials grant of one tenant. Tokens are fetched
// lazily and reused until shortly before expiry.
type Client struct {
	baseURL string
	source  oauth2.TokenSource
}

// New creates a client for the given tenant and platform. ctx is used for all
// token fetches the client performs; HTTP requests made to fetch tokens use
// its deadline and transport options.
func New(ctx context.Context, p platform.Platform, tenant, clientSecret string) *Client {
	cfg := clientcredentials.Config{
		ClientID:     p.RestClientID(tenant),
		ClientSecret: clientSecret,
		TokenURL:     p.EndpointManagementToken(),
	}
	log.Debug().Str("client_id", cfg.ClientID).Str("token_url", cfg.TokenURL).Msg("configured management api credentials")
	return &Client{
		baseURL: p.EndpointRestAPI(),
		source:  cfg.TokenSource(ctx),
	}
}

// BaseURL returns the management REST API base URL of the platform.
func (c *Client) BaseURL() string { return c.baseURL }

// Token returns a valid management-API token, fetching one only when the
// cached token has expired.
func (c *Client) Token() (*oauth2.Token, error) {
	return c.source.Token()
}

// HTTPClient returns an HTTP client that injects the management-API token
// into every request and refreshes it as needed.
func (c *Client) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, c.source)
}
