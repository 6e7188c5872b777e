// Package epoch contains the epoch processing phases run at the last slot of
// every epoch. Only justification and finalization is executed; the reward,
// registry, slashing and final update phases are extension points that leave
// the state untouched.
package epoch

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ProcessJustificationAndFinalization processes justification and finalization during
// epoch processing. This is where a beacon node can justify and finalize a new epoch.
//
// Pseudocode definition:
//
//	def process_justification_and_finalization(state: BeaconState) -> None:
//	  if get_current_epoch(state) <= GENESIS_EPOCH + 1:
//	      return
//
//	  previous_epoch = get_previous_epoch(state)
//	  current_epoch = get_current_epoch(state)
//	  old_previous_justified_checkpoint = state.previous_justified_checkpoint
//	  old_current_justified_checkpoint = state.current_justified_checkpoint
//
//	  # Process justifications
//	  state.previous_justified_checkpoint = state.current_justified_checkpoint
//	  state.justification_bits[1:] = state.justification_bits[:-1]
//	  state.justification_bits[0] = 0b0
//	  matching_target_attestations = get_matching_target_attestations(state, previous_epoch)  # Previous epoch
//	  if get_attesting_balance(state, matching_target_attestations) * 3 >= get_total_active_balance(state) * 2:
//	      state.current_justified_checkpoint = Checkpoint(epoch=previous_epoch,
//	                                                      root=get_block_root(state, previous_epoch))
//	      state.justification_bits[1] = 0b1
//	  matching_target_attestations = get_matching_target_attestations(state, current_epoch)  # Current epoch
//	  if get_attesting_balance(state, matching_target_attestations) * 3 >= get_total_active_balance(state) * 2:
//	      state.current_justified_checkpoint = Checkpoint(epoch=current_epoch,
//	                                                      root=get_block_root(state, current_epoch))
//	      state.justification_bits[0] = 0b1
//
//	  # Process finalizations
//	  bits = state.justification_bits
//	  # The 2nd/3rd/4th most recent epochs are justified, the 2nd using the 4th as source
//	  if all(bits[1:4]) and old_previous_justified_checkpoint.epoch + 3 == current_epoch:
//	      state.finalized_checkpoint = old_previous_justified_checkpoint
//	  # The 2nd/3rd most recent epochs are justified, the 2nd using the 3rd as source
//	  if all(bits[1:3]) and old_previous_justified_checkpoint.epoch + 2 == current_epoch:
//	      state.finalized_checkpoint = old_previous_justified_checkpoint
//	  # The 1st/2nd/3rd most recent epochs are justified, the 1st using the 3rd as source
//	  if all(bits[0:3]) and old_current_justified_checkpoint.epoch + 2 == current_epoch:
//	      state.finalized_checkpoint = old_current_justified_checkpoint
//	  # The 1st/2nd most recent epochs are justified, the 1st using the 2nd as source
//	  if all(bits[0:2]) and old_current_justified_checkpoint.epoch + 1 == current_epoch:
//	      state.finalized_checkpoint = old_current_justified_checkpoint
func ProcessJustificationAndFinalization(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessJustificationAndFinalization")
	defer span.End()

	currentEpoch := helpers.CurrentEpoch(cfg, st)
	if currentEpoch <= cfg.GenesisEpoch+1 {
		return st, nil
	}
	prevEpoch := helpers.PrevEpoch(cfg, st)
	oldPrevJustified := st.PreviousJustifiedCheckpoint()
	oldCurrJustified := st.CurrentJustifiedCheckpoint()

	totalActive, err := helpers.TotalActiveBalance(cfg, st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get total active balance")
	}

	if err := st.SetPreviousJustifiedCheckpoint(oldCurrJustified); err != nil {
		return nil, err
	}
	st.ShiftJustificationBits()

	if err := justifyEpoch(cfg, st, prevEpoch, totalActive, 1); err != nil {
		return nil, errors.Wrap(err, "could not process previous epoch justification")
	}
	if err := justifyEpoch(cfg, st, currentEpoch, totalActive, 0); err != nil {
		return nil, errors.Wrap(err, "could not process current epoch justification")
	}

	finalized := finalizedCheckpoint(st.JustificationBits(), currentEpoch, oldPrevJustified, oldCurrJustified)
	if finalized != nil {
		if err := st.SetFinalizedCheckpoint(finalized); err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"epoch":          finalized.Epoch,
			"root":           shortRoot(finalized.Root),
			"processedEpoch": currentEpoch,
		}).Info("Finalized checkpoint")
	}
	return st, nil
}

// justifyEpoch sets the current justified checkpoint to the epoch and marks
// the justification bit when the epoch's target attesters hold a two thirds
// supermajority of the active balance.
func justifyEpoch(
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	epoch types.Epoch,
	totalActive uint64,
	bit uint64,
) error {
	atts, err := MatchingTargetAttestations(cfg, st, epoch)
	if err != nil {
		return err
	}
	attesting, err := AttestingBalance(cfg, st, atts)
	if err != nil {
		return err
	}
	if !IsSupermajority(attesting, totalActive) {
		return nil
	}
	root, err := helpers.BlockRoot(cfg, st, epoch)
	if err != nil {
		return errors.Wrapf(err, "could not get block root for epoch %d", epoch)
	}
	if err := st.SetCurrentJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: epoch, Root: root[:]}); err != nil {
		return err
	}
	bits := st.JustificationBits()
	bits.SetBitAt(bit, true)
	if err := st.SetJustificationBits(bits); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"epoch":            epoch,
		"root":             shortRoot(root[:]),
		"attestingBalance": attesting,
		"totalBalance":     totalActive,
	}).Info("Justified checkpoint")
	return nil
}

// IsSupermajority reports whether attesting*3 >= total*2. The products are
// taken in 256 bits so neither side can overflow.
func IsSupermajority(attesting, total uint64) bool {
	lhs := new(uint256.Int).Mul(uint256.NewInt(attesting), uint256.NewInt(3))
	rhs := new(uint256.Int).Mul(uint256.NewInt(total), uint256.NewInt(2))
	return !lhs.Lt(rhs)
}

// finalizedCheckpoint evaluates the four finalization rules in order against
// the shifted justification bits. Later rules overwrite earlier ones; nil
// means no rule fired.
func finalizedCheckpoint(
	bits bitfield.Bitvector4,
	currentEpoch types.Epoch,
	oldPrevJustified, oldCurrJustified *ethpb.Checkpoint,
) *ethpb.Checkpoint {
	var finalized *ethpb.Checkpoint
	// 2nd/3rd/4th most recent epochs are justified, the 2nd using the 4th as source.
	if allSet(bits, 1, 4) && oldPrevJustified.Epoch+3 == currentEpoch {
		finalized = oldPrevJustified
	}
	// 2nd/3rd most recent epochs are justified, the 2nd using the 3rd as source.
	if allSet(bits, 1, 3) && oldPrevJustified.Epoch+2 == currentEpoch {
		finalized = oldPrevJustified
	}
	// 1st/2nd/3rd most recent epochs are justified, the 1st using the 3rd as source.
	if allSet(bits, 0, 3) && oldCurrJustified.Epoch+2 == currentEpoch {
		finalized = oldCurrJustified
	}
	// 1st/2nd most recent epochs are justified, the 1st using the 2nd as source.
	if allSet(bits, 0, 2) && oldCurrJustified.Epoch+1 == currentEpoch {
		finalized = oldCurrJustified
	}
	return finalized
}

// allSet reports whether every bit in [from, to) is set.
func allSet(bits bitfield.Bitvector4, from, to uint64) bool {
	for i := from; i < to; i++ {
		if !bits.BitAt(i) {
			return false
		}
	}
	return true
}

func shortRoot(root []byte) string {
	if len(root) < 4 {
		return ""
	}
	return fmt.Sprintf("%#x", root[:4])
}
