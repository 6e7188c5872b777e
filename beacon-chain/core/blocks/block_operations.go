package blocks

import (
	"context"

	"github.com/sgryphon/cortex/beacon-chain/state"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ProcessRandao is the extension point for mixing the block's randao reveal
// into the state. It does not verify or apply the reveal.
func ProcessRandao(ctx context.Context, beaconState *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessRandao")
	defer span.End()
	return beaconState, nil
}

// ProcessEth1DataInBlock is the extension point for eth1 data voting. The
// vote carried by the body is not recorded.
func ProcessEth1DataInBlock(ctx context.Context, beaconState *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessEth1DataInBlock")
	defer span.End()
	return beaconState, nil
}

// ProcessOperations is the extension point for block operations: proposer
// slashings, attester slashings, attestations, deposits and voluntary exits,
// in that order. None of them is validated or applied.
func ProcessOperations(ctx context.Context, beaconState *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessOperations")
	defer span.End()
	if body != nil {
		log.WithField("attestations", len(body.Attestations)).Trace("Skipping block operations")
	}
	return beaconState, nil
}
