package helpers

import (
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/cache"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
)

// SlotCommitteeCount returns the number of beacon committees of a slot.
//
// Pseudocode definition:
//
//	def get_committee_count_per_slot(state: BeaconState, epoch: Epoch) -> uint64:
//	  """
//	  Return the number of committees in each slot for the given ``epoch``.
//	  """
//	  return max(uint64(1), min(
//	      MAX_COMMITTEES_PER_SLOT,
//	      uint64(len(get_active_validator_indices(state, epoch))) // SLOTS_PER_EPOCH // TARGET_COMMITTEE_SIZE,
//	  ))
func SlotCommitteeCount(cfg *params.BeaconChainConfig, activeValidatorCount uint64) uint64 {
	var committeesPerSlot = activeValidatorCount / uint64(cfg.SlotsPerEpoch) / cfg.TargetCommitteeSize

	if committeesPerSlot > cfg.MaxCommitteesPerSlot {
		return cfg.MaxCommitteesPerSlot
	}
	if committeesPerSlot == 0 {
		return 1
	}

	return committeesPerSlot
}

// BeaconCommittee returns the beacon committee of a given slot and committee index. The shuffled
// active set of the epoch is served from the committee cache when possible.
//
// Pseudocode definition:
//
//	def get_beacon_committee(state: BeaconState, slot: Slot, index: CommitteeIndex) -> Sequence[ValidatorIndex]:
//	  """
//	  Return the beacon committee at ``slot`` for ``index``.
//	  """
//	  epoch = compute_epoch_at_slot(slot)
//	  committees_per_slot = get_committee_count_per_slot(state, epoch)
//	  return compute_committee(
//	      indices=get_active_validator_indices(state, epoch),
//	      seed=get_seed(state, epoch, DOMAIN_BEACON_ATTESTER),
//	      index=(slot % SLOTS_PER_EPOCH) * committees_per_slot + index,
//	      count=committees_per_slot * SLOTS_PER_EPOCH,
//	  )
func BeaconCommittee(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	slot types.Slot,
	committeeIndex types.CommitteeIndex,
) ([]types.ValidatorIndex, error) {
	epoch := SlotToEpoch(cfg, slot)
	seed, err := Seed(cfg, st, epoch, cfg.DomainBeaconAttester)
	if err != nil {
		return nil, errors.Wrap(err, "could not get seed")
	}
	indices := st.ActiveValidatorIndices(epoch)
	committeesPerSlot := SlotCommitteeCount(cfg, uint64(len(indices)))
	if uint64(committeeIndex) >= committeesPerSlot {
		return nil, errors.Errorf("committee index %d out of range, %d committees per slot", committeeIndex, committeesPerSlot)
	}

	shuffled, err := shuffledActiveIndices(cfg, seed, indices, committeesPerSlot)
	if err != nil {
		return nil, err
	}
	indexOffset := uint64(committeeIndex) + uint64(slot.Mod(uint64(cfg.SlotsPerEpoch)))*committeesPerSlot
	count := committeesPerSlot * uint64(cfg.SlotsPerEpoch)
	return committeeFromShuffled(shuffled, indexOffset, count)
}

// ComputeCommittee returns the requested shuffled committee out of the total committees using
// validator indices and seed.
//
// Pseudocode definition:
//
//	def compute_committee(indices: Sequence[ValidatorIndex],
//	                    seed: Bytes32,
//	                    index: uint64,
//	                    count: uint64) -> Sequence[ValidatorIndex]:
//	  """
//	  Return the committee corresponding to ``indices``, ``seed``, ``index``, and committee ``count``.
//	  """
//	  start = (len(indices) * index) // count
//	  end = (len(indices) * uint64(index + 1)) // count
//	  return [indices[compute_shuffled_index(uint64(i), uint64(len(indices)), seed)] for i in range(start, end)]
func ComputeCommittee(
	cfg *params.BeaconChainConfig,
	indices []types.ValidatorIndex,
	seed [32]byte,
	index, count uint64,
) ([]types.ValidatorIndex, error) {
	if count == 0 || index >= count {
		return nil, errors.Errorf("committee index %d out of range for %d committees", index, count)
	}
	validatorCount := uint64(len(indices))
	start := SplitOffset(validatorCount, count, index)
	end := SplitOffset(validatorCount, count, index+1)

	shuffledList := make([]types.ValidatorIndex, 0, end-start)
	for i := start; i < end; i++ {
		permutedIndex, err := ShuffledIndex(cfg, types.ValidatorIndex(i), validatorCount, seed)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get shuffled index at index %d", i)
		}
		shuffledList = append(shuffledList, indices[permutedIndex])
	}
	return shuffledList, nil
}

// shuffledActiveIndices returns the shuffled active set for the seed, from the
// committee cache when the same active set was shuffled before with the same
// number of rounds.
func shuffledActiveIndices(
	cfg *params.BeaconChainConfig,
	seed [32]byte,
	indices []types.ValidatorIndex,
	committeesPerSlot uint64,
) ([]types.ValidatorIndex, error) {
	cached, err := committeeCache.Committees(seed, cfg.ShuffleRoundCount, indices)
	if err != nil {
		return nil, errors.Wrap(err, "could not interface with committee cache")
	}
	if cached != nil {
		return cached.ShuffledIndices, nil
	}
	shuffled, err := ShuffleList(cfg, indices, seed)
	if err != nil {
		return nil, errors.Wrap(err, "could not shuffle active indices")
	}
	if err := committeeCache.AddCommitteeShuffledList(&cache.Committees{
		CommitteeCount:  committeesPerSlot * uint64(cfg.SlotsPerEpoch),
		Seed:            seed,
		ShuffleRounds:   cfg.ShuffleRoundCount,
		ShuffledIndices: shuffled,
		SortedIndices:   indices,
	}); err != nil {
		return nil, errors.Wrap(err, "could not add committee to cache")
	}
	return shuffled, nil
}

func committeeFromShuffled(shuffled []types.ValidatorIndex, index, count uint64) ([]types.ValidatorIndex, error) {
	if count == 0 || index >= count {
		return nil, errors.Errorf("committee index %d out of range for %d committees", index, count)
	}
	n := uint64(len(shuffled))
	start := SplitOffset(n, count, index)
	end := SplitOffset(n, count, index+1)
	committee := make([]types.ValidatorIndex, end-start)
	copy(committee, shuffled[start:end])
	return committee, nil
}
