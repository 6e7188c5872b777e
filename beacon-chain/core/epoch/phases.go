package epoch

import (
	"context"

	"github.com/sgryphon/cortex/beacon-chain/state"
	"go.opencensus.io/trace"
)

// ProcessRewardsAndPenalties is the extension point for attestation rewards
// and penalties. It does not modify the state.
func ProcessRewardsAndPenalties(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessRewardsAndPenalties")
	defer span.End()
	return st, nil
}

// ProcessRegistryUpdates is the extension point for activations and
// ejections. It does not modify the state.
func ProcessRegistryUpdates(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessRegistryUpdates")
	defer span.End()
	return st, nil
}

// ProcessSlashings is the extension point for slashing penalties. It does not
// modify the state.
func ProcessSlashings(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessSlashings")
	defer span.End()
	return st, nil
}

// ProcessFinalUpdates is the extension point for the end of epoch resets
// (effective balances, slashings and randao rotation, historical roots and
// attestation rotation). It does not modify the state.
func ProcessFinalUpdates(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessFinalUpdates")
	defer span.End()
	return st, nil
}
