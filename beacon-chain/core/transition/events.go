package transition

import (
	"fmt"

	"github.com/sgryphon/cortex/beacon-chain/core/feed"
	statefeed "github.com/sgryphon/cortex/beacon-chain/core/feed/state"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

func slotProcessed(slot types.Slot, stateRoot, blockRoot [32]byte) (feed.EventType, interface{}) {
	return statefeed.SlotProcessed, &statefeed.SlotProcessedData{
		Slot:      slot,
		StateRoot: stateRoot,
		BlockRoot: blockRoot,
	}
}

func epochProcessed(epoch types.Epoch) (feed.EventType, interface{}) {
	return statefeed.EpochProcessed, &statefeed.EpochProcessedData{Epoch: epoch}
}

func checkpointJustified(epoch types.Epoch, cp *ethpb.Checkpoint) (feed.EventType, interface{}) {
	return statefeed.CheckpointJustified, &statefeed.CheckpointData{Epoch: epoch, Checkpoint: cp}
}

func checkpointFinalized(epoch types.Epoch, cp *ethpb.Checkpoint) (feed.EventType, interface{}) {
	return statefeed.CheckpointFinalized, &statefeed.CheckpointData{Epoch: epoch, Checkpoint: cp}
}

func blockProcessed(slot types.Slot, root [32]byte, proposer types.ValidatorIndex, verified bool) (feed.EventType, interface{}) {
	return statefeed.BlockProcessed, &statefeed.BlockProcessedData{
		Slot:          slot,
		BlockRoot:     root,
		ProposerIndex: proposer,
		Verified:      verified,
	}
}

func shortRoot(root []byte) string {
	if len(root) < 4 {
		return fmt.Sprintf("%#x", root)
	}
	return fmt.Sprintf("%#x", root[:4])
}
