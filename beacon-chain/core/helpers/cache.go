package helpers

import (
	"github.com/sgryphon/cortex/beacon-chain/cache"
)

var (
	committeeCache     = cache.NewCommitteesCache()
	proposerIndexCache = cache.NewProposerIndicesCache(cache.DefaultProposerExpiration)
)

// ClearCache clears the committee cache and the proposer index cache.
func ClearCache() {
	committeeCache.Clear()
	proposerIndexCache.Clear()
}
