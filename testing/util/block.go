package util

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/beacon-chain/state"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/bls"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/runtime/interop"
)

// NewBeaconBlock creates a beacon block with minimum marshalable fields.
func NewBeaconBlock() *ethpb.BeaconBlock {
	return &ethpb.BeaconBlock{
		ParentRoot: make([]byte, 32),
		StateRoot:  make([]byte, 32),
		Body:       interop.EmptyBlockBody(),
		Signature:  make([]byte, 96),
	}
}

// GenerateFullBlock generates a signed block for slot on top of bState with
// its post state root filled in. bState is not modified.
func GenerateFullBlock(
	t testing.TB,
	engine *transition.Engine,
	bState *state.BeaconState,
	privs []bls.SecretKey,
	slot types.Slot,
) *ethpb.BeaconBlock {
	blk, err := interop.NewSignedBlock(context.Background(), engine, bState, privs, slot)
	if err != nil {
		t.Fatal(errors.Wrapf(err, "could not generate block at slot %d", slot))
	}
	return blk
}
