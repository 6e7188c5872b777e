package transition

import (
	"context"

	"github.com/sgryphon/cortex/beacon-chain/core/epoch"
	"github.com/sgryphon/cortex/beacon-chain/state"
)

type epochPhase struct {
	name string
	fn   func(context.Context, *state.BeaconState) (*state.BeaconState, error)
}

// epochPhases lists the epoch processing phases in execution order.
func (e *Engine) epochPhases() []epochPhase {
	return []epochPhase{
		{
			name: "justification and finalization",
			fn: func(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
				return epoch.ProcessJustificationAndFinalization(ctx, e.cfg, st)
			},
		},
		{name: "rewards and penalties", fn: epoch.ProcessRewardsAndPenalties},
		{name: "registry updates", fn: epoch.ProcessRegistryUpdates},
		{name: "slashings", fn: epoch.ProcessSlashings},
		{name: "final updates", fn: epoch.ProcessFinalUpdates},
	}
}
