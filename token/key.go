package token

import "hash/fnv"

// CacheKey derives the 64-bit cache key for an identity tuple. The same parts
// always hash to the same key, so repeated requests for one identity land on
// the same cache slot. Hash collisions between distinct identities are an
// accepted risk.
func CacheKey(parts ...string) uint64 {
	h := fnv.New64a()
	for i, part := range parts {
		if i > 0 {
			h.Write([]byte{0x1f})
		}
		h.Write([]byte(part))
	}
	return h.Sum64()
}
