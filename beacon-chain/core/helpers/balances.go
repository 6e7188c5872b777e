package helpers

import (
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/math"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// TotalBalance returns the total amount at stake in Gwei
// of input validators.
//
// Pseudocode definition:
//
//	def get_total_balance(state: BeaconState, indices: Set[ValidatorIndex]) -> Gwei:
//	  """
//	  Return the combined effective balance of the ``indices``.
//	  ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  Math safe up to ~10B ETH, after which this overflows uint64.
//	  """
//	  return Gwei(max(EFFECTIVE_BALANCE_INCREMENT, sum([state.validators[index].effective_balance for index in indices])))
func TotalBalance(cfg *params.BeaconChainConfig, st state.ReadOnlyBeaconState, indices []types.ValidatorIndex) (uint64, error) {
	total := uint64(0)

	for _, idx := range indices {
		val, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return 0, errors.Wrapf(err, "could not get validator %d", idx)
		}
		sum, err := math.Add64(total, val.EffectiveBalance)
		if err != nil {
			return 0, errors.Wrapf(err, "total balance at validator %d", idx)
		}
		total = sum
	}

	// EFFECTIVE_BALANCE_INCREMENT is the lower bound for total balance.
	if total < cfg.EffectiveBalanceIncrement {
		return cfg.EffectiveBalanceIncrement, nil
	}

	return total, nil
}

// TotalActiveBalance returns the total amount at stake in Gwei
// of active validators.
//
// Pseudocode definition:
//
//	def get_total_active_balance(state: BeaconState) -> Gwei:
//	  """
//	  Return the combined effective balance of the active validators.
//	  Note: ``get_total_balance`` returns ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  """
//	  return get_total_balance(state, set(get_active_validator_indices(state, get_current_epoch(state))))
func TotalActiveBalance(cfg *params.BeaconChainConfig, st state.ReadOnlyBeaconState) (uint64, error) {
	total := uint64(0)
	epoch := CurrentEpoch(cfg, st)
	if err := st.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		if IsActiveValidator(val, epoch) {
			sum, err := math.Add64(total, val.EffectiveBalance)
			if err != nil {
				return errors.Wrapf(err, "total active balance at validator %d", idx)
			}
			total = sum
		}
		return nil
	}); err != nil {
		return 0, err
	}

	// EFFECTIVE_BALANCE_INCREMENT is the lower bound for total balance.
	if total < cfg.EffectiveBalanceIncrement {
		return cfg.EffectiveBalanceIncrement, nil
	}
	return total, nil
}
