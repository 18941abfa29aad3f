package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/jellydator/ttlcache/v3"
)

// MaxFragmentCacheSize caps the number of cached fragments per cache.
const MaxFragmentCacheSize = 10000

// FragmentCache memoizes transcoded fragments keyed by option bitmask and
// Markdown text. Entries never expire; the oldest entries are evicted once
// capacity is reached.
type FragmentCache struct {
	cache *ttlcache.Cache[string, string]
}

// NewFragmentCache creates a cache holding at most capacity fragments.
// Capacity is clamped to [1, MaxFragmentCacheSize].
func NewFragmentCache(capacity int) *FragmentCache {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > MaxFragmentCacheSize {
		capacity = MaxFragmentCacheSize
	}
	return &FragmentCache{
		cache: ttlcache.New(
			ttlcache.WithCapacity[string, string](uint64(capacity)),
			ttlcache.WithTTL[string, string](ttlcache.NoTTL),
		),
	}
}

// Get returns the cached fragment for opts and markdown.
func (c *FragmentCache) Get(opts Options, markdown string) (string, bool) {
	item := c.cache.Get(fragmentKey(opts, markdown))
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// Put stores fragment for opts and markdown.
func (c *FragmentCache) Put(opts Options, markdown, fragment string) {
	c.cache.Set(fragmentKey(opts, markdown), fragment, ttlcache.DefaultTTL)
}

// Len returns the number of cached fragments.
func (c *FragmentCache) Len() int {
	return c.cache.Len()
}

func fragmentKey(opts Options, markdown string) string {
	sum := sha256.Sum256([]byte(markdown))
	return strconv.FormatUint(uint64(opts), 16) + ":" + hex.EncodeToString(sum[:])
}
