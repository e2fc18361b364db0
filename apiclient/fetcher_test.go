package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/streamgate-io/sdk-go/platform"
	"github.com/streamgate-io/sdk-go/token"
	"github.com/streamgate-io/sdk-go/token/access"
	"github.com/streamgate-io/sdk-go/token/dataaccess"
)

type issuerStub struct {
	srv *httptest.Server

	accessCalls atomic.Int32
	dataCalls   atomic.Int32

	failAccess atomic.Bool
}

// newIssuerStub serves both issuance endpoints from one server. Issued access
// tokens point their endpoint claim back at the server, so chained requests
// land here too.
func newIssuerStub(t *testing.T) *issuerStub {
	t.Helper()
	stub := &issuerStub{}
	stub.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exp := time.Now().Unix() + 3600
		switch r.URL.Path {
		case "/auth/v0/token":
			stub.accessCalls.Add(1)
			if stub.failAccess.Load() {
				http.Error(w, "api key rejected", http.StatusForbidden)
				return
			}
			w.Write([]byte(mint(t, jwtlib.MapClaims{
				"endpoint":  stub.srv.URL,
				"tenant-id": "my-tenant",
				"exp":       exp,
			})))
		case "/streams/v0/protocol/token":
			stub.dataCalls.Add(1)
			var req dataaccess.Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.Write([]byte(mint(t, jwtlib.MapClaims{
				"tenant-id": req.Tenant,
				"client-id": req.ID,
				"exp":       exp,
			})))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stub.srv.Close)
	return stub
}

func mint(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func newTestFetcher(stub *issuerStub) *TokenFetcher {
	f := NewWithClient(platform.Dev, "my-api-key", stub.srv.Client())
	f.authURL = stub.srv.URL + "/auth/v0/token"
	return f
}

func TestGetOrFetchAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("SecondCallServedFromCache", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)

		first, err := f.GetOrFetchAccessToken(ctx, access.NewRequest("my-tenant"))
		require.NoError(t, err)
		second, err := f.GetOrFetchAccessToken(ctx, access.NewRequest("my-tenant"))
		require.NoError(t, err)

		require.Equal(t, first.Raw(), second.Raw())
		require.Equal(t, int32(1), stub.accessCalls.Load())
	})

	t.Run("FetchAccessTokenBypassesCache", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)

		_, err := f.FetchAccessToken(ctx, access.NewRequest("my-tenant"))
		require.NoError(t, err)
		_, err = f.FetchAccessToken(ctx, access.NewRequest("my-tenant"))
		require.NoError(t, err)
		require.Equal(t, int32(2), stub.accessCalls.Load())
		require.Equal(t, 0, f.accessTokens.Len())
	})

	t.Run("RequestsWithDistinctClientIDsCacheSeparately", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)

		reqA := access.NewRequest("my-tenant").WithClaims(access.Claims{
			ProtocolTokenClaim: access.ProtocolTokenClaim{ID: "device-a"},
		})
		reqB := access.NewRequest("my-tenant").WithClaims(access.Claims{
			ProtocolTokenClaim: access.ProtocolTokenClaim{ID: "device-b"},
		})

		_, err := f.GetOrFetchAccessToken(ctx, reqA)
		require.NoError(t, err)
		_, err = f.GetOrFetchAccessToken(ctx, reqB)
		require.NoError(t, err)
		require.Equal(t, int32(2), stub.accessCalls.Load())
	})
}

func TestGetOrFetchDataAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("ChainsThroughAccessTokenAndCachesBoth", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)

		tok, err := f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
		require.NoError(t, err)
		require.Equal(t, "device-1", tok.ClientID)
		require.Equal(t, int32(1), stub.accessCalls.Load())
		require.Equal(t, int32(1), stub.dataCalls.Load())

		again, err := f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
		require.NoError(t, err)
		require.Equal(t, tok.Raw(), again.Raw())
		require.Equal(t, int32(1), stub.accessCalls.Load())
		require.Equal(t, int32(1), stub.dataCalls.Load())
	})

	t.Run("AccessTokenSharedAcrossClientIDs", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)

		_, err := f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
		require.NoError(t, err)
		_, err = f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-2"))
		require.NoError(t, err)

		require.Equal(t, int32(1), stub.accessCalls.Load())
		require.Equal(t, int32(2), stub.dataCalls.Load())
	})

	t.Run("AccessTokenFailureLeavesDataAccessCacheUntouched", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)
		stub.failAccess.Store(true)

		_, err := f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
		var callErr *token.CallError
		require.ErrorAs(t, err, &callErr)
		require.Equal(t, http.StatusForbidden, callErr.StatusCode)
		require.Equal(t, int32(0), stub.dataCalls.Load())
		require.Equal(t, 0, f.dataAccessTokens.Len())
		require.Equal(t, 0, f.accessTokens.Len())

		stub.failAccess.Store(false)
		_, err = f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
		require.NoError(t, err)
	})

	t.Run("InvalidClientIDFailsWithoutIssuingDataToken", func(t *testing.T) {
		stub := newIssuerStub(t)
		f := newTestFetcher(stub)

		_, err := f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "not allowed"))
		var cidErr *token.ClientIDError
		require.ErrorAs(t, err, &cidErr)
		require.Equal(t, int32(0), stub.dataCalls.Load())
		require.Equal(t, 0, f.dataAccessTokens.Len())
	})
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	stub := newIssuerStub(t)
	f := newTestFetcher(stub)

	_, err := f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
	require.NoError(t, err)

	f.ClearCache()
	require.Equal(t, 0, f.accessTokens.Len())
	require.Equal(t, 0, f.dataAccessTokens.Len())

	_, err = f.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest("my-tenant", "device-1"))
	require.NoError(t, err)
	require.Equal(t, int32(2), stub.accessCalls.Load())
	require.Equal(t, int32(2), stub.dataCalls.Load())
}
