package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
)

// DefaultProposerExpiration keeps a computed proposer for roughly two mainnet epochs.
const DefaultProposerExpiration = 2 * 32 * 12 * time.Second

var (
	proposerIndexCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proposer_index_cache_miss",
		Help: "The number of proposer index requests that aren't present in the cache.",
	})
	proposerIndexCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proposer_index_cache_hit",
		Help: "The number of proposer index requests that are present in the cache.",
	})
)

// ProposerIndicesCache maps a proposer selection key to the selected validator.
// The key must commit to everything the selection reads: the slot seed and
// the effective balances of the active set.
type ProposerIndicesCache struct {
	cache *cache.Cache
}

// NewProposerIndicesCache creates a proposer cache whose entries expire after the given duration.
func NewProposerIndicesCache(expiration time.Duration) *ProposerIndicesCache {
	return &ProposerIndicesCache{
		cache: cache.New(expiration, 2*expiration),
	}
}

// ProposerIndex returns the cached proposer for the key.
func (c *ProposerIndicesCache) ProposerIndex(key [32]byte) (types.ValidatorIndex, bool) {
	obj, ok := c.cache.Get(string(key[:]))
	if !ok {
		proposerIndexCacheMiss.Inc()
		return 0, false
	}
	idx, ok := obj.(types.ValidatorIndex)
	if !ok {
		log.WithError(ErrNotProposerIndex).Error("Dropping malformed proposer cache entry")
		c.cache.Delete(string(key[:]))
		proposerIndexCacheMiss.Inc()
		return 0, false
	}
	proposerIndexCacheHit.Inc()
	return idx, true
}

// AddProposerIndex stores the proposer selected for the key.
func (c *ProposerIndicesCache) AddProposerIndex(key [32]byte, idx types.ValidatorIndex) {
	c.cache.Set(string(key[:]), idx, cache.DefaultExpiration)
}

// Clear drops every cached proposer.
func (c *ProposerIndicesCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached proposers, including expired entries not yet cleaned up.
func (c *ProposerIndicesCache) Len() int {
	return c.cache.ItemCount()
}
