package transition

import (
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/blocks"
)

var (
	// ErrSlotRegression is returned when slots are processed towards a slot
	// lower than the state's slot.
	ErrSlotRegression = errors.New("target slot is lower than the state slot")
	// ErrStateRootMismatch is returned when the post state root of a
	// transition differs from the root committed in the block.
	ErrStateRootMismatch = errors.New("post state root does not match block state root")
)

// failureReason maps a transition error to the label recorded in metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrSlotRegression):
		return "slot_regression"
	case errors.Is(err, ErrStateRootMismatch):
		return "state_root_mismatch"
	case errors.Is(err, blocks.ErrSlotMismatch):
		return "slot_mismatch"
	case errors.Is(err, blocks.ErrParentRootMismatch):
		return "parent_root_mismatch"
	case errors.Is(err, blocks.ErrSlashedProposer):
		return "slashed_proposer"
	case errors.Is(err, blocks.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, blocks.ErrNilBlock):
		return "nil_block"
	default:
		return "other"
	}
}
