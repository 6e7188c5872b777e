package helpers

import (
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/encoding/bytesutil"
)

// ErrBlockRootOutOfRange is returned when a block root lookup falls outside
// the window held by the block roots ring buffer.
var ErrBlockRootOutOfRange = errors.New("block root is out of range")

// BlockRootAtSlot returns the block root stored in the BeaconState for a recent slot.
// It returns an error if the requested block root is not within the slot range.
//
// Pseudocode definition:
//
//	def get_block_root_at_slot(state: BeaconState, slot: Slot) -> Root:
//	  """
//	  Return the block root at a recent ``slot``.
//	  """
//	  assert slot < state.slot <= slot + SLOTS_PER_HISTORICAL_ROOT
//	  return state.block_roots[slot % SLOTS_PER_HISTORICAL_ROOT]
func BlockRootAtSlot(cfg *params.BeaconChainConfig, st state.ReadOnlyBeaconState, slot types.Slot) ([32]byte, error) {
	stateSlot := st.Slot()
	if slot >= stateSlot || stateSlot > slot+cfg.SlotsPerHistoricalRoot {
		return [32]byte{}, errors.Wrapf(ErrBlockRootOutOfRange, "slot %d with state at slot %d", slot, stateSlot)
	}
	root, err := st.BlockRootAtIndex(uint64(slot.Mod(uint64(cfg.SlotsPerHistoricalRoot))))
	if err != nil {
		return [32]byte{}, err
	}
	return bytesutil.ToBytes32(root), nil
}

// BlockRoot returns the block root stored in the BeaconState for epoch start slot.
//
// Pseudocode definition:
//
//	def get_block_root(state: BeaconState, epoch: Epoch) -> Root:
//	  """
//	  Return the block root at the start of a recent ``epoch``.
//	  """
//	  return get_block_root_at_slot(state, compute_start_slot_at_epoch(epoch))
func BlockRoot(cfg *params.BeaconChainConfig, st state.ReadOnlyBeaconState, epoch types.Epoch) ([32]byte, error) {
	s, err := StartSlot(cfg, epoch)
	if err != nil {
		return [32]byte{}, err
	}
	return BlockRootAtSlot(cfg, st, s)
}
