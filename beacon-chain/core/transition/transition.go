package transition

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/blocks"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/state"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ExecuteStateTransition defines the procedure for a state transition function.
//
// Note: This method differs from the pseudocode definition in that it does not
// take in a signed block; the proposer signature is part of the block itself.
//
// Pseudocode definition:
//
//	def state_transition(state: BeaconState, block: BeaconBlock, validate_state_root: bool=False) -> BeaconState:
//	  # Process slots (including those with no blocks) since block
//	  process_slots(state, block.slot)
//	  # Process block
//	  process_block(state, block)
//	  # Validate state root (`validate_state_root == True` in production)
//	  if validate_state_root:
//	      assert block.state_root == hash_tree_root(state)
//	  # Return post-state
//	  return state
//
// The state is mutated in place. On error it may be left partially advanced
// and must be discarded.
func (e *Engine) ExecuteStateTransition(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
	validateStateRoot bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ExecuteStateTransition")
	defer span.End()

	st, err := e.executeStateTransition(ctx, st, block, validateStateRoot)
	if err != nil {
		transitionFailures.WithLabelValues(failureReason(err)).Inc()
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
		return nil, err
	}
	return st, nil
}

func (e *Engine) executeStateTransition(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
	validateStateRoot bool,
) (*state.BeaconState, error) {
	if st == nil {
		return nil, errors.New("nil state")
	}
	if block == nil {
		return nil, blocks.ErrNilBlock
	}
	if err := e.ProcessSlots(ctx, st, block.Slot); err != nil {
		return nil, errors.Wrap(err, "could not process slots")
	}
	if err := e.ProcessBlock(ctx, st, block); err != nil {
		return nil, errors.Wrap(err, "could not process block")
	}
	if !validateStateRoot {
		return st, nil
	}
	postStateRoot, err := st.HashTreeRoot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute post state root")
	}
	if !bytes.Equal(postStateRoot[:], block.StateRoot) {
		return nil, errors.Wrapf(ErrStateRootMismatch, "wanted %#x, received %#x", postStateRoot, block.StateRoot)
	}
	return st, nil
}

// ExecuteStateTransitionNoMutate runs the state transition on a copy of the
// state. The input state is left untouched whatever the outcome, and the copy
// is only returned on success.
func (e *Engine) ExecuteStateTransitionNoMutate(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
	validateStateRoot bool,
) (*state.BeaconState, error) {
	if st == nil {
		return nil, errors.New("nil state")
	}
	return e.ExecuteStateTransition(ctx, st.Copy(), block, validateStateRoot)
}

// CalculateStateRoot returns the post state root of applying the block to a
// copy of the state, without checking the proposer signature. It is used to
// fill in the state root of a block being built.
func (e *Engine) CalculateStateRoot(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.CalculateStateRoot")
	defer span.End()

	if st == nil || block == nil {
		return [32]byte{}, errors.New("nil state or block")
	}
	noVerify := &Engine{cfg: e.cfg}
	post := st.Copy()
	if err := noVerify.ProcessSlots(ctx, post, block.Slot); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not process slots")
	}
	if err := noVerify.ProcessBlock(ctx, post, block); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not process block")
	}
	return post.HashTreeRoot(ctx)
}

// ProcessSlot happens every slot and focuses on the slot counter and block roots record updates.
// It happens regardless if there's an incoming block or not.
//
// Pseudocode definition:
//
//	def process_slot(state: BeaconState) -> None:
//	  # Cache state root
//	  previous_state_root = hash_tree_root(state)
//	  state.state_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_state_root
//	  # Cache latest block header state root
//	  if state.latest_block_header.state_root == Bytes32():
//	      state.latest_block_header.state_root = previous_state_root
//	  # Cache block root
//	  previous_block_root = signing_root(state.latest_block_header)
//	  state.block_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_block_root
func (e *Engine) ProcessSlot(ctx context.Context, st *state.BeaconState) error {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlot")
	defer span.End()
	if st == nil {
		return errors.New("nil state")
	}
	span.AddAttributes(trace.Int64Attribute("slot", int64(st.Slot()))) // lint:ignore uintcast -- This is OK for tracing.

	prevStateRoot, err := st.HashTreeRoot(ctx)
	if err != nil {
		return errors.Wrap(err, "could not compute state root")
	}
	idx := uint64(st.Slot() % e.cfg.SlotsPerHistoricalRoot)
	if err := st.UpdateStateRootAtIndex(idx, prevStateRoot); err != nil {
		return err
	}

	header := st.LatestBlockHeader()
	if bytes.Equal(header.StateRoot, e.cfg.ZeroHash[:]) {
		header.StateRoot = prevStateRoot[:]
		if err := st.SetLatestBlockHeader(header); err != nil {
			return err
		}
	}
	prevBlockRoot, err := header.SigningRoot()
	if err != nil {
		return errors.Wrap(err, "could not compute latest block header signing root")
	}
	if err := st.UpdateBlockRootAtIndex(idx, prevBlockRoot); err != nil {
		return err
	}

	processedSlotsCount.Inc()
	log.WithFields(logrus.Fields{
		"slot":      st.Slot(),
		"stateRoot": shortRoot(prevStateRoot[:]),
		"blockRoot": shortRoot(prevBlockRoot[:]),
	}).Debug("Processed slot")
	e.notify(slotProcessed(st.Slot(), prevStateRoot, prevBlockRoot))
	return nil
}

// ProcessSlots process through skip slots and apply epoch transition when it's needed
//
// Pseudocode definition:
//
//	def process_slots(state: BeaconState, slot: Slot) -> None:
//	  assert state.slot <= slot
//	  while state.slot < slot:
//	      process_slot(state)
//	      # Process epoch on the first slot of the next epoch
//	      if (state.slot + 1) % SLOTS_PER_EPOCH == 0:
//	          process_epoch(state)
//	      state.slot += 1
//
// A regression leaves the state untouched.
func (e *Engine) ProcessSlots(ctx context.Context, st *state.BeaconState, slot types.Slot) error {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlots")
	defer span.End()
	if st == nil {
		return errors.New("nil state")
	}
	span.AddAttributes(trace.Int64Attribute("slots", int64(slot)-int64(st.Slot()))) // lint:ignore uintcast -- This is OK for tracing.

	if slot < st.Slot() {
		return errors.Wrapf(ErrSlotRegression, "expected state.slot %d <= slot %d", st.Slot(), slot)
	}
	for st.Slot() < slot {
		if err := e.ProcessSlot(ctx, st); err != nil {
			return errors.Wrap(err, "could not process slot")
		}
		if helpers.IsEpochEnd(e.cfg, st.Slot()) {
			if err := e.ProcessEpoch(ctx, st); err != nil {
				return errors.Wrap(err, "could not process epoch")
			}
		}
		if err := st.IncreaseSlot(); err != nil {
			return errors.Wrap(err, "failed to increase state slot")
		}
	}
	return nil
}

// ProcessBlock applies the block header and then the randao, eth1 data and
// operations phases, in that order.
//
// Pseudocode definition:
//
//	def process_block(state: BeaconState, block: BeaconBlock) -> None:
//	  process_block_header(state, block)
//	  process_randao(state, block.body)
//	  process_eth1_data(state, block.body)
//	  process_operations(state, block.body)
func (e *Engine) ProcessBlock(ctx context.Context, st *state.BeaconState, block *ethpb.BeaconBlock) error {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessBlock")
	defer span.End()

	var err error
	if e.verifier == nil {
		st, err = blocks.ProcessBlockHeaderNoVerify(ctx, e.cfg, st, block)
	} else {
		st, err = blocks.ProcessBlockHeaderWithVerifier(ctx, e.cfg, st, block, e.verifier)
	}
	if err != nil {
		return errors.Wrap(err, "could not process block header")
	}
	st, err = blocks.ProcessRandao(ctx, st, block.Body)
	if err != nil {
		return errors.Wrap(err, "could not process randao")
	}
	st, err = blocks.ProcessEth1DataInBlock(ctx, st, block.Body)
	if err != nil {
		return errors.Wrap(err, "could not process eth1 data")
	}
	if _, err = blocks.ProcessOperations(ctx, st, block.Body); err != nil {
		return errors.Wrap(err, "could not process block operations")
	}

	processedBlocksCount.Inc()
	if e.notifier != nil {
		blockRoot, err := block.SigningRoot()
		if err != nil {
			return errors.Wrap(err, "could not compute block root")
		}
		proposer, err := helpers.BeaconProposerIndex(e.cfg, st)
		if err != nil {
			return errors.Wrap(err, "could not get beacon proposer index")
		}
		e.notify(blockProcessed(block.Slot, blockRoot, proposer, e.verifier != nil))
	}
	return nil
}

// ProcessEpoch describes the per epoch operations that are performed on the beacon state.
//
// Pseudocode definition:
//
//	def process_epoch(state: BeaconState) -> None:
//	  process_justification_and_finalization(state)
//	  process_rewards_and_penalties(state)
//	  process_registry_updates(state)
//	  process_slashings(state)
//	  process_final_updates(state)
//
// Only justification and finalization changes the state; the other phases are
// extension points.
func (e *Engine) ProcessEpoch(ctx context.Context, st *state.BeaconState) error {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessEpoch")
	defer span.End()
	if st == nil {
		return errors.New("nil state")
	}
	currentEpoch := helpers.CurrentEpoch(e.cfg, st)
	prevJustified := st.CurrentJustifiedCheckpoint()
	prevFinalized := st.FinalizedCheckpoint()

	for _, phase := range e.epochPhases() {
		var err error
		st, err = phase.fn(ctx, st)
		if err != nil {
			return errors.Wrapf(err, "could not process %s", phase.name)
		}
	}

	justified := st.CurrentJustifiedCheckpoint()
	finalized := st.FinalizedCheckpoint()
	currentJustifiedEpoch.Set(float64(justified.Epoch))
	previousJustifiedEpoch.Set(float64(st.PreviousJustifiedCheckpoint().Epoch))
	finalizedEpoch.Set(float64(finalized.Epoch))
	processedEpochsCount.Inc()

	log.WithFields(logrus.Fields{
		"epoch":          currentEpoch,
		"justifiedEpoch": justified.Epoch,
		"finalizedEpoch": finalized.Epoch,
	}).Debug("Processed epoch")
	e.notify(epochProcessed(currentEpoch))
	if !checkpointEqual(prevJustified, justified) {
		e.notify(checkpointJustified(currentEpoch, justified))
	}
	if !checkpointEqual(prevFinalized, finalized) {
		e.notify(checkpointFinalized(currentEpoch, finalized))
	}
	return nil
}

func checkpointEqual(a, b *ethpb.Checkpoint) bool {
	return a.Epoch == b.Epoch && bytes.Equal(a.Root, b.Root)
}
