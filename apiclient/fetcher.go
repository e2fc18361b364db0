// Package apiclient provides the token fetcher used by API clients: services
// holding a tenant API key that need access tokens and data-access tokens,
// cached per identity.
package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/streamgate-io/sdk-go/platform"
	"github.com/streamgate-io/sdk-go/token"
	"github.com/streamgate-io/sdk-go/token/access"
	"github.com/streamgate-io/sdk-go/token/dataaccess"
)

const defaultHTTPTimeout = 10 * time.Second

// TokenFetcher obtains and caches access tokens and data-access tokens for a
// platform, authenticating with a tenant API key. It is safe for concurrent
// use; a fetcher is typically created once and shared.
type TokenFetcher struct {
	apiKey  string
	authURL string
	client  *http.Client

	accessTokens     *token.Cache[access.Token]
	dataAccessTokens *token.Cache[dataaccess.Token]
}

// New creates a fetcher for the given platform with empty caches and a
// default HTTP client.
func New(p platform.Platform, apiKey string) *TokenFetcher {
	return NewWithClient(p, apiKey, &http.Client{Timeout: defaultHTTPTimeout})
}

// NewWithClient is New with a caller-supplied HTTP client, for custom
// transports or timeouts.
func NewWithClient(p platform.Platform, apiKey string, client *http.Client) *TokenFetcher {
	return &TokenFetcher{
		apiKey:           apiKey,
		authURL:          p.EndpointRestToken(),
		client:           client,
		accessTokens:     token.NewCache[access.Token](),
		dataAccessTokens: token.NewCache[dataaccess.Token](),
	}
}

// FetchAccessToken requests a fresh access token, bypassing and not touching
// the cache.
func (f *TokenFetcher) FetchAccessToken(ctx context.Context, req access.Request) (access.Token, error) {
	return req.Send(ctx, f.client, f.apiKey, f.authURL)
}

// GetOrFetchAccessToken returns a valid cached access token for the request's
// identity, fetching and caching a replacement when there is none. Tokens are
// cached per (tenant, client id) pair; requests without a client id cache
// under the tenant itself.
func (f *TokenFetcher) GetOrFetchAccessToken(ctx context.Context, req access.Request) (access.Token, error) {
	key := accessCacheKey(req)
	return f.accessTokens.GetOrFetch(ctx, key, func(ctx context.Context) (access.Token, error) {
		return f.FetchAccessToken(ctx, req)
	})
}

// FetchDataAccessToken requests a fresh data-access token, bypassing the
// data-access cache. The access token used as the bearer credential does come
// from (or is stored in) the access-token cache; a failure to obtain it aborts
// the operation and leaves the data-access cache untouched.
func (f *TokenFetcher) FetchDataAccessToken(ctx context.Context, req dataaccess.Request) (dataaccess.Token, error) {
	accessToken, err := f.GetOrFetchAccessToken(ctx, access.NewRequest(req.Tenant))
	if err != nil {
		return dataaccess.Token{}, err
	}
	return req.Send(ctx, f.client, accessToken)
}

// GetOrFetchDataAccessToken returns a valid cached data-access token for the
// request's (tenant, client id) pair, fetching and caching a replacement when
// there is none.
func (f *TokenFetcher) GetOrFetchDataAccessToken(ctx context.Context, req dataaccess.Request) (dataaccess.Token, error) {
	key := token.CacheKey(req.Tenant, req.ID)
	return f.dataAccessTokens.GetOrFetch(ctx, key, func(ctx context.Context) (dataaccess.Token, error) {
		return f.FetchDataAccessToken(ctx, req)
	})
}

// ClearAccessTokenCache drops all cached access tokens.
func (f *TokenFetcher) ClearAccessTokenCache() {
	log.Debug().Msg("clearing access token cache")
	f.accessTokens.Clear()
}

// ClearDataAccessTokenCache drops all cached data-access tokens.
func (f *TokenFetcher) ClearDataAccessTokenCache() {
	log.Debug().Msg("clearing data access token cache")
	f.dataAccessTokens.Clear()
}

// ClearCache drops all cached tokens of both kinds.
func (f *TokenFetcher) ClearCache() {
	f.ClearAccessTokenCache()
	f.ClearDataAccessTokenCache()
}

func accessCacheKey(req access.Request) uint64 {
	id := req.ClientID()
	if id == "" {
		id = req.Tenant
	}
	return token.CacheKey(req.Tenant, id)
}
