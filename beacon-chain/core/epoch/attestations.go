package epoch

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// MatchingSourceAttestations returns the pending attestations recorded for the
// given epoch, which must be the current or the previous one.
//
// Pseudocode definition:
//
//	def get_matching_source_attestations(state: BeaconState, epoch: Epoch) -> Sequence[PendingAttestation]:
//	  assert epoch in (get_previous_epoch(state), get_current_epoch(state))
//	  return state.current_epoch_attestations if epoch == get_current_epoch(state) else state.previous_epoch_attestations
func MatchingSourceAttestations(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	epoch types.Epoch,
) ([]*ethpb.PendingAttestation, error) {
	current := helpers.CurrentEpoch(cfg, st)
	previous := helpers.PrevEpoch(cfg, st)
	switch epoch {
	case current:
		return st.CurrentEpochAttestations(), nil
	case previous:
		return st.PreviousEpochAttestations(), nil
	default:
		return nil, errors.Wrapf(ErrEpochOutOfRange, "requested %d, current %d, previous %d", epoch, current, previous)
	}
}

// MatchingTargetAttestations returns the source attestations of the epoch
// whose target root is the block root at the start of that epoch.
//
// Pseudocode definition:
//
//	def get_matching_target_attestations(state: BeaconState, epoch: Epoch) -> Sequence[PendingAttestation]:
//	  return [
//	      a for a in get_matching_source_attestations(state, epoch)
//	      if a.data.target.root == get_block_root(state, epoch)
//	  ]
func MatchingTargetAttestations(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	epoch types.Epoch,
) ([]*ethpb.PendingAttestation, error) {
	source, err := MatchingSourceAttestations(cfg, st, epoch)
	if err != nil {
		return nil, err
	}
	root, err := helpers.BlockRoot(cfg, st, epoch)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get block root for epoch %d", epoch)
	}
	matched := make([]*ethpb.PendingAttestation, 0, len(source))
	for _, a := range source {
		if a.Data == nil || a.Data.Target == nil {
			continue
		}
		if bytes.Equal(a.Data.Target.Root, root[:]) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// UnslashedAttestingIndices returns the sorted, de-duplicated indices of the
// validators that took part in the attestations and are not slashed.
//
// Pseudocode definition:
//
//	def get_unslashed_attesting_indices(state: BeaconState,
//	                                    attestations: Sequence[PendingAttestation]) -> Set[ValidatorIndex]:
//	  output = set()  # type: Set[ValidatorIndex]
//	  for a in attestations:
//	      output = output.union(get_attesting_indices(state, a.data, a.aggregation_bits))
//	  return set(filter(lambda index: not state.validators[index].slashed, output))
func UnslashedAttestingIndices(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	atts []*ethpb.PendingAttestation,
) ([]types.ValidatorIndex, error) {
	seen := make(map[types.ValidatorIndex]bool)
	var set []types.ValidatorIndex
	for _, a := range atts {
		if a == nil || a.Data == nil {
			return nil, errors.New("nil pending attestation")
		}
		committee, err := helpers.BeaconCommittee(cfg, st, a.Data.Slot, a.Data.CommitteeIndex)
		if err != nil {
			return nil, errors.Wrap(err, "could not get beacon committee")
		}
		attesting, err := helpers.AttestingIndices(a.AggregationBits, committee)
		if err != nil {
			return nil, errors.Wrap(err, "could not get attesting indices")
		}
		for _, idx := range attesting {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			v, err := st.ValidatorAtIndex(idx)
			if err != nil {
				return nil, err
			}
			if !v.Slashed {
				set = append(set, idx)
			}
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set, nil
}

// AttestingBalance returns the total balance of the unslashed validators
// taking part in the attestations.
//
// Pseudocode definition:
//
//	def get_attesting_balance(state: BeaconState, attestations: Sequence[PendingAttestation]) -> Gwei:
//	  return get_total_balance(state, get_unslashed_attesting_indices(state, attestations))
func AttestingBalance(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	atts []*ethpb.PendingAttestation,
) (uint64, error) {
	indices, err := UnslashedAttestingIndices(cfg, st, atts)
	if err != nil {
		return 0, err
	}
	return helpers.TotalBalance(cfg, st, indices)
}
