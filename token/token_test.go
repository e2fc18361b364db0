package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgate-io/sdk-go/token"
)

type stubToken struct {
	raw string
	exp int64
}

func (s stubToken) Raw() string   { return s.raw }
func (s stubToken) Expiry() int64 { return s.exp }

func TestIsValid(t *testing.T) {
	const now = int64(1_700_000_000)

	t.Run("ExpiryWellInTheFuture", func(t *testing.T) {
		require.True(t, token.IsValid(stubToken{raw: "a.b.c", exp: now + 3600}, now))
	})

	t.Run("ExpiryExactlyAtMargin", func(t *testing.T) {
		require.True(t, token.IsValid(stubToken{raw: "a.b.c", exp: now + token.ValidityMargin}, now))
	})

	t.Run("ExpiryJustInsideMargin", func(t *testing.T) {
		require.False(t, token.IsValid(stubToken{raw: "a.b.c", exp: now + token.ValidityMargin - 1}, now))
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		require.False(t, token.IsValid(stubToken{raw: "a.b.c", exp: now - 1}, now))
	})

	t.Run("ZeroValueTokenIsInvalid", func(t *testing.T) {
		require.False(t, token.IsValid(stubToken{}, now))
	})

	t.Run("EmptyRawIsInvalidEvenWithFutureExpiry", func(t *testing.T) {
		require.False(t, token.IsValid(stubToken{exp: now + 3600}, now))
	})
}

func TestCacheKey(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		require.Equal(t, token.CacheKey("tenant", "client"), token.CacheKey("tenant", "client"))
	})

	t.Run("DifferentPartsDifferentKeys", func(t *testing.T) {
		require.NotEqual(t, token.CacheKey("tenant", "client-a"), token.CacheKey("tenant", "client-b"))
		require.NotEqual(t, token.CacheKey("tenant-a"), token.CacheKey("tenant-b"))
	})

	t.Run("PartBoundariesMatter", func(t *testing.T) {
		require.NotEqual(t, token.CacheKey("ab", "c"), token.CacheKey("a", "bc"))
	})
}
