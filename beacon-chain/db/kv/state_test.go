package kv

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func testState(t testing.TB, slot types.Slot) *state.BeaconState {
	cfg := params.MinimalSpecConfig()
	st, err := state.New(cfg)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		pk := make([]byte, 48)
		pk[0] = byte(i + 1)
		require.NoError(t, st.AppendValidator(&ethpb.Validator{
			PublicKey:             pk,
			WithdrawalCredentials: make([]byte, 32),
			EffectiveBalance:      cfg.MaxEffectiveBalance,
			ExitEpoch:             cfg.FarFutureEpoch,
			WithdrawableEpoch:     cfg.FarFutureEpoch,
		}, cfg.MaxEffectiveBalance))
	}
	st.SetSlot(slot)
	require.NoError(t, st.UpdateBlockRootAtIndex(1, [32]byte{'a'}))
	bits := bitfield.NewBitlist(4)
	bits.SetBitAt(2, true)
	require.NoError(t, st.AppendCurrentEpochAttestations(&ethpb.PendingAttestation{
		AggregationBits: bits,
		Data: &ethpb.AttestationData{
			BeaconBlockRoot: make([]byte, 32),
			Source:          &ethpb.Checkpoint{Root: make([]byte, 32)},
			Target:          &ethpb.Checkpoint{Root: make([]byte, 32)},
		},
		InclusionDelay: 1,
	}))
	require.NoError(t, st.SetJustificationBits(bitfield.Bitvector4{0x05}))
	return st
}

func TestStore_StateSaveRetrieve(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	st := testState(t, 10)
	want, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, false, db.HasState(ctx, want))

	root, err := db.SaveState(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, want, root)
	assert.Equal(t, true, db.HasState(ctx, root))

	// Read through the cache and then straight from disk.
	for i := 0; i < 2; i++ {
		got, err := db.State(ctx, root)
		require.NoError(t, err)
		require.NotNil(t, got)
		gotRoot, err := got.HashTreeRoot(ctx)
		require.NoError(t, err)
		assert.Equal(t, root, gotRoot)
		assert.Equal(t, types.Slot(10), got.Slot())
		assert.DeepEqual(t, bitfield.Bitvector4{0x05}, got.JustificationBits())
		db.stateCache.Purge()
	}
}

func TestStore_StateIsACopy(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	st := testState(t, 1)
	root, err := db.SaveState(ctx, st)
	require.NoError(t, err)
	st.SetSlot(99)

	got, err := db.State(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, types.Slot(1), got.Slot())
	got.SetSlot(50)
	again, err := db.State(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, types.Slot(1), again.Slot())
}

func TestStore_StateMissing(t *testing.T) {
	db := setupDB(t)
	got, err := db.State(context.Background(), [32]byte{'x'})
	require.NoError(t, err)
	assert.Equal(t, true, got == nil)
}

func TestStore_SaveNilState(t *testing.T) {
	db := setupDB(t)
	_, err := db.SaveState(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilState)
}

func TestStore_DeleteState(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	head, err := db.SaveState(ctx, testState(t, 1))
	require.NoError(t, err)
	other, err := db.SaveState(ctx, testState(t, 2))
	require.NoError(t, err)
	require.NoError(t, db.SaveHeadRoot(ctx, head))

	require.ErrorIs(t, db.DeleteState(ctx, head), ErrDeleteHeadState)
	require.NoError(t, db.DeleteState(ctx, other))
	assert.Equal(t, false, db.HasState(ctx, other))
	roots, err := db.StateRoots(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, [][32]byte{head}, roots)
}
