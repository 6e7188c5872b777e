package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
)

const (
	// maxCommitteesCacheSize defines the max number of shuffled committees on per randao basis can cache.
	// Due to reorgs and long finality, it's good to keep the old cache around for quickly switch over.
	maxCommitteesCacheSize = 32
)

var (
	// CommitteeCacheMiss tracks the number of committee requests that aren't present in the cache.
	CommitteeCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "committee_cache_miss",
		Help: "The number of committee requests that aren't present in the cache.",
	})
	// CommitteeCacheHit tracks the number of committee requests that are in the cache.
	CommitteeCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "committee_cache_hit",
		Help: "The number of committee requests that are present in the cache.",
	})
)

// Committees defines the shuffled committees seed. A shuffling is identified
// by its seed together with the number of shuffle rounds it was built with.
type Committees struct {
	CommitteeCount  uint64
	Seed            [32]byte
	ShuffleRounds   uint64
	ShuffledIndices []types.ValidatorIndex
	SortedIndices   []types.ValidatorIndex
}

// CommitteeCache is a struct with 1 LRU cache for looking up shuffled indices list by seed.
type CommitteeCache struct {
	CommitteeCache *lru.Cache
	lock           sync.RWMutex
}

// NewCommitteesCache creates a new committee cache for storing/accessing shuffled indices of a committee.
func NewCommitteesCache() *CommitteeCache {
	c, err := lru.New(maxCommitteesCacheSize)
	// An error is only returned if the size of the cache is
	// <= 0.
	if err != nil {
		panic(err)
	}
	return &CommitteeCache{CommitteeCache: c}
}

// Committees returns the cached shuffling for the seed and round count. The
// active set is compared with the one the shuffling was built from, so a seed
// reused over a different registry is reported as a miss.
func (c *CommitteeCache) Committees(seed [32]byte, shuffleRounds uint64, active []types.ValidatorIndex) (*Committees, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	obj, exists := c.CommitteeCache.Get(key(seed, shuffleRounds))
	if !exists {
		CommitteeCacheMiss.Inc()
		return nil, nil
	}
	item, ok := obj.(*Committees)
	if !ok {
		return nil, ErrNotCommittee
	}
	if !sameIndices(item.SortedIndices, active) {
		CommitteeCacheMiss.Inc()
		return nil, nil
	}
	CommitteeCacheHit.Inc()
	return item, nil
}

// AddCommitteeShuffledList adds Committee shuffled list object to the cache. This method
// also evicts the least recently used list if the cache has reached its size limit.
func (c *CommitteeCache) AddCommitteeShuffledList(committees *Committees) error {
	if committees == nil {
		return errors.New("nil committees")
	}
	if len(committees.ShuffledIndices) != len(committees.SortedIndices) {
		return errors.Errorf("shuffled list has %d indices, active set has %d",
			len(committees.ShuffledIndices), len(committees.SortedIndices))
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.CommitteeCache.Add(key(committees.Seed, committees.ShuffleRounds), committees)
	return nil
}

// Clear resets the committee cache to its initial state.
func (c *CommitteeCache) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.CommitteeCache.Purge()
}

// Len returns the number of cached shufflings.
func (c *CommitteeCache) Len() int {
	return c.CommitteeCache.Len()
}

func key(seed [32]byte, shuffleRounds uint64) string {
	return fmt.Sprintf("%x-%d", seed, shuffleRounds)
}

func sameIndices(a, b []types.ValidatorIndex) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
