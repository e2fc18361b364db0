// Package device provides the token fetcher used on behalf of external
// devices: it exchanges a tenant API key for protocol-connection tokens, one
// per device, cached per client identifier.
package device

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/streamgate-io/sdk-go/platform"
	"github.com/streamgate-io/sdk-go/token"
	"github.com/streamgate-io/sdk-go/token/access"
	"github.com/streamgate-io/sdk-go/token/protocol"
)

const defaultHTTPTimeout = 10 * time.Second

// TokenFetcher obtains and caches protocol-connection tokens for the devices
// of one tenant. The intermediate access token is cached as well and shared
// across devices. It is safe for concurrent use.
type TokenFetcher struct {
	tenant          string
	apiKey          string
	restAuthURL     string
	protocolAuthURL string
	client          *http.Client

	accessTokens   *token.Cache[access.Token]
	protocolTokens *token.Cache[protocol.Token]
}

// New creates a fetcher for one tenant on the given platform, with empty
// caches and a default HTTP client.
func New(p platform.Platform, tenant, apiKey string) *TokenFetcher {
	return NewWithClient(p, tenant, apiKey, &http.Client{Timeout: defaultHTTPTimeout})
}

// NewWithClient is New with a caller-supplied HTTP client.
func NewWithClient(p platform.Platform, tenant, apiKey string, client *http.Client) *TokenFetcher {
	return &TokenFetcher{
		tenant:          tenant,
		apiKey:          apiKey,
		restAuthURL:     p.EndpointRestToken(),
		protocolAuthURL: p.EndpointProtocolToken(),
		client:          client,
		accessTokens:    token.NewCache[access.Token](),
		protocolTokens:  token.NewCache[protocol.Token](),
	}
}

// GetToken returns a valid protocol-connection token for the device named by
// clientID, fetching one when the cache holds none. claims restricts the
// requested permissions; nil requests full access. claims is only consulted
// when a fetch happens, a valid cached token is returned as is.
func (f *TokenFetcher) GetToken(ctx context.Context, clientID string, claims []token.TopicPermission) (protocol.Token, error) {
	key := token.CacheKey(f.tenant, clientID)
	return f.protocolTokens.GetOrFetch(ctx, key, func(ctx context.Context) (protocol.Token, error) {
		return f.fetchToken(ctx, clientID, claims)
	})
}

func (f *TokenFetcher) fetchToken(ctx context.Context, clientID string, claims []token.TopicPermission) (protocol.Token, error) {
	req, err := protocol.NewRequest(clientID, f.tenant, claims)
	if err != nil {
		return protocol.Token{}, err
	}
	accessToken, err := f.accessTokens.GetOrFetch(ctx, token.CacheKey(f.tenant), func(ctx context.Context) (access.Token, error) {
		return access.NewRequest(f.tenant).Send(ctx, f.client, f.apiKey, f.restAuthURL)
	})
	if err != nil {
		return protocol.Token{}, err
	}
	log.Debug().Str("client_id", clientID).Msg("fetching protocol token for device")
	return req.Send(ctx, f.client, f.protocolAuthURL, accessToken.Raw())
}

// ClearCache drops all cached tokens, forcing fresh fetches on the next
// request.
func (f *TokenFetcher) ClearCache() {
	f.accessTokens.Clear()
	f.protocolTokens.Clear()
}
