// Package state contains types for state transition events fired while slots,
// epochs and blocks are processed.
package state

import (
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

const (
	// SlotProcessed is sent after the per-slot root bookkeeping of a slot.
	SlotProcessed = iota + 1
	// EpochProcessed is sent after the epoch phases ran at the last slot of an epoch.
	EpochProcessed
	// CheckpointJustified is sent when the current justified checkpoint changes.
	CheckpointJustified
	// CheckpointFinalized is sent when the finalized checkpoint changes.
	CheckpointFinalized
	// BlockProcessed is sent after a block has been applied to the state.
	BlockProcessed
)

// SlotProcessedData is the data sent with SlotProcessed events.
type SlotProcessedData struct {
	// Slot whose roots were recorded.
	Slot types.Slot
	// StateRoot recorded for the slot.
	StateRoot [32]byte
	// BlockRoot recorded for the slot.
	BlockRoot [32]byte
}

// EpochProcessedData is the data sent with EpochProcessed events.
type EpochProcessedData struct {
	// Epoch that was closed.
	Epoch types.Epoch
}

// CheckpointData is the data sent with CheckpointJustified and
// CheckpointFinalized events.
type CheckpointData struct {
	// Epoch during whose processing the checkpoint changed.
	Epoch types.Epoch
	// Checkpoint is the new checkpoint.
	Checkpoint *ethpb.Checkpoint
}

// BlockProcessedData is the data sent with BlockProcessed events.
type BlockProcessedData struct {
	// Slot is the slot of the processed block.
	Slot types.Slot
	// BlockRoot of the processed block.
	BlockRoot [32]byte
	// ProposerIndex of the block.
	ProposerIndex types.ValidatorIndex
	// Verified is true if the proposer signature was checked.
	Verified bool
}
