package helpers

import (
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/hash"
	"github.com/sgryphon/cortex/encoding/bytesutil"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// ErrEmptyActiveSet is returned when no validator is active for the requested epoch.
var ErrEmptyActiveSet = errors.New("empty active indices list")

// IsActiveValidator returns the boolean value on whether the validator
// is active or not.
//
// Pseudocode definition:
//
//	def is_active_validator(validator: Validator, epoch: Epoch) -> bool:
//	  """
//	  Check if ``validator`` is active.
//	  """
//	  return validator.activation_epoch <= epoch < validator.exit_epoch
func IsActiveValidator(validator *ethpb.Validator, epoch types.Epoch) bool {
	return validator.ActivationEpoch <= epoch && epoch < validator.ExitEpoch
}

// IsSlashableValidator returns the boolean value on whether the validator
// is slashable or not.
//
// Pseudocode definition:
//
//	def is_slashable_validator(validator: Validator, epoch: Epoch) -> bool:
//	  """
//	  Check if ``validator`` is slashable.
//	  """
//	  return (not validator.slashed) and (validator.activation_epoch <= epoch < validator.withdrawable_epoch)
func IsSlashableValidator(val *ethpb.Validator, epoch types.Epoch) bool {
	active := val.ActivationEpoch <= epoch
	beforeWithdrawable := epoch < val.WithdrawableEpoch
	return beforeWithdrawable && active && !val.Slashed
}

// BeaconProposerIndex returns proposer index of a current slot.
//
// Pseudocode definition:
//
//	def get_beacon_proposer_index(state: BeaconState) -> ValidatorIndex:
//	  """
//	  Return the beacon proposer index at the current slot.
//	  """
//	  epoch = get_current_epoch(state)
//	  seed = hash(get_seed(state, epoch, DOMAIN_BEACON_PROPOSER) + uint_to_bytes(state.slot))
//	  indices = get_active_validator_indices(state, epoch)
//	  return compute_proposer_index(state, indices, seed)
func BeaconProposerIndex(cfg *params.BeaconChainConfig, st state.ReadOnlyBeaconState) (types.ValidatorIndex, error) {
	e := CurrentEpoch(cfg, st)

	seed, err := Seed(cfg, st, e, cfg.DomainBeaconProposer)
	if err != nil {
		return 0, errors.Wrap(err, "could not generate seed")
	}
	seedWithSlot := append(seed[:], bytesutil.Bytes8(uint64(st.Slot()))...)
	seedWithSlotHash := hash.Hash(seedWithSlot)

	indices := st.ActiveValidatorIndices(e)
	key, err := proposerCacheKey(cfg, st, seedWithSlotHash, indices)
	if err != nil {
		return 0, err
	}
	if idx, ok := proposerIndexCache.ProposerIndex(key); ok {
		return idx, nil
	}

	idx, err := ComputeProposerIndex(cfg, st, indices, seedWithSlotHash)
	if err != nil {
		return 0, err
	}
	proposerIndexCache.AddProposerIndex(key, idx)
	return idx, nil
}

// proposerCacheKey commits to every input of proposer sampling: the slot
// seed, the shuffle round count, the maximum effective balance and the
// effective balance of every active validator. The remaining config values
// reach the selection only through the seed.
func proposerCacheKey(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	seed [32]byte,
	indices []types.ValidatorIndex,
) ([32]byte, error) {
	buf := make([]byte, 0, 48+16*len(indices))
	buf = append(buf, seed[:]...)
	buf = append(buf, bytesutil.Bytes8(cfg.ShuffleRoundCount)...)
	buf = append(buf, bytesutil.Bytes8(cfg.MaxEffectiveBalance)...)
	for _, idx := range indices {
		v, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return [32]byte{}, err
		}
		buf = append(buf, bytesutil.Bytes8(uint64(idx))...)
		buf = append(buf, bytesutil.Bytes8(v.EffectiveBalance)...)
	}
	return hash.Hash(buf), nil
}

// ComputeProposerIndex returns the index sampled by effective balance, which is used to calculate proposer.
//
// Pseudocode definition:
//
//	def compute_proposer_index(state: BeaconState, indices: Sequence[ValidatorIndex], seed: Bytes32) -> ValidatorIndex:
//	  """
//	  Return from ``indices`` a random index sampled by effective balance.
//	  """
//	  assert len(indices) > 0
//	  MAX_RANDOM_BYTE = 2**8 - 1
//	  i = uint64(0)
//	  total = uint64(len(indices))
//	  while True:
//	      candidate_index = indices[compute_shuffled_index(i % total, total, seed)]
//	      random_byte = hash(seed + uint_to_bytes(uint64(i // 32)))[i % 32]
//	      effective_balance = state.validators[candidate_index].effective_balance
//	      if effective_balance * MAX_RANDOM_BYTE >= MAX_EFFECTIVE_BALANCE * random_byte:
//	          return candidate_index
//	      i += 1
func ComputeProposerIndex(
	cfg *params.BeaconChainConfig,
	st state.ReadOnlyBeaconState,
	activeIndices []types.ValidatorIndex,
	seed [32]byte,
) (types.ValidatorIndex, error) {
	length := uint64(len(activeIndices))
	if length == 0 {
		return 0, ErrEmptyActiveSet
	}
	maxRandomByte := uint64(1<<8 - 1)
	hashFunc := hash.CustomSHA256Hasher()

	for i := uint64(0); ; i++ {
		candidateIndex, err := ShuffledIndex(cfg, types.ValidatorIndex(i%length), length, seed)
		if err != nil {
			return 0, err
		}
		candidateIndex = activeIndices[candidateIndex]
		if uint64(candidateIndex) >= uint64(st.NumValidators()) {
			return 0, errors.New("active index out of range")
		}
		b := append(seed[:], bytesutil.Bytes8(i/32)...)
		randomByte := hashFunc(b)[i%32]
		v, err := st.ValidatorAtIndex(candidateIndex)
		if err != nil {
			return 0, err
		}
		effectiveBal := v.EffectiveBalance

		if effectiveBal*maxRandomByte >= cfg.MaxEffectiveBalance*uint64(randomByte) {
			return candidateIndex, nil
		}
	}
}
