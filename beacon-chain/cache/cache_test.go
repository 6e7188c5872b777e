package cache

import (
	"testing"
	"time"

	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func TestCommitteeCache_AddAndFetch(t *testing.T) {
	c := NewCommitteesCache()
	active := []types.ValidatorIndex{0, 1, 2, 3}
	item := &Committees{
		CommitteeCount:  2,
		Seed:            [32]byte{'A'},
		ShuffledIndices: []types.ValidatorIndex{2, 0, 3, 1},
		SortedIndices:   active,
	}

	got, err := c.Committees(item.Seed, item.ShuffleRounds, active)
	require.NoError(t, err)
	if got != nil {
		t.Error("Expected committee not to exist in empty cache")
	}

	require.NoError(t, c.AddCommitteeShuffledList(item))
	got, err = c.Committees(item.Seed, item.ShuffleRounds, active)
	require.NoError(t, err)
	assert.DeepEqual(t, item, got)
	assert.Equal(t, 1, c.Len())
}

func TestCommitteeCache_DifferentActiveSetMisses(t *testing.T) {
	c := NewCommitteesCache()
	item := &Committees{
		Seed:            [32]byte{'B'},
		ShuffledIndices: []types.ValidatorIndex{1, 0},
		SortedIndices:   []types.ValidatorIndex{0, 1},
	}
	require.NoError(t, c.AddCommitteeShuffledList(item))

	got, err := c.Committees(item.Seed, item.ShuffleRounds, []types.ValidatorIndex{0, 2})
	require.NoError(t, err)
	if got != nil {
		t.Error("Expected a miss for a different active set")
	}
}

func TestCommitteeCache_DifferentShuffleRoundsMisses(t *testing.T) {
	c := NewCommitteesCache()
	active := []types.ValidatorIndex{0, 1, 2}
	item := &Committees{
		Seed:            [32]byte{'D'},
		ShuffleRounds:   10,
		ShuffledIndices: []types.ValidatorIndex{2, 1, 0},
		SortedIndices:   active,
	}
	require.NoError(t, c.AddCommitteeShuffledList(item))

	got, err := c.Committees(item.Seed, 90, active)
	require.NoError(t, err)
	if got != nil {
		t.Error("Expected a miss for a different shuffle round count")
	}
	other := &Committees{
		Seed:            item.Seed,
		ShuffleRounds:   90,
		ShuffledIndices: []types.ValidatorIndex{0, 2, 1},
		SortedIndices:   active,
	}
	require.NoError(t, c.AddCommitteeShuffledList(other))
	got, err = c.Committees(item.Seed, 10, active)
	require.NoError(t, err)
	assert.DeepEqual(t, item, got)
	got, err = c.Committees(item.Seed, 90, active)
	require.NoError(t, err)
	assert.DeepEqual(t, other, got)
}

func TestCommitteeCache_RejectsMismatchedLists(t *testing.T) {
	c := NewCommitteesCache()
	err := c.AddCommitteeShuffledList(&Committees{
		ShuffledIndices: []types.ValidatorIndex{1},
		SortedIndices:   []types.ValidatorIndex{0, 1},
	})
	assert.ErrorContains(t, "shuffled list has 1 indices", err)
	assert.ErrorContains(t, "nil committees", c.AddCommitteeShuffledList(nil))
}

func TestCommitteeCache_EvictsOldest(t *testing.T) {
	c := NewCommitteesCache()
	for i := 0; i < maxCommitteesCacheSize+1; i++ {
		require.NoError(t, c.AddCommitteeShuffledList(&Committees{Seed: [32]byte{byte(i)}}))
	}
	assert.Equal(t, maxCommitteesCacheSize, c.Len())
	got, err := c.Committees([32]byte{0}, 0, nil)
	require.NoError(t, err)
	if got != nil {
		t.Error("Expected the first shuffling to be evicted")
	}
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestProposerIndicesCache(t *testing.T) {
	c := NewProposerIndicesCache(time.Minute)
	k := [32]byte{'C'}
	_, ok := c.ProposerIndex(k)
	assert.Equal(t, false, ok)

	c.AddProposerIndex(k, 42)
	idx, ok := c.ProposerIndex(k)
	assert.Equal(t, true, ok)
	assert.Equal(t, types.ValidatorIndex(42), idx)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
