package transition_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/blocks"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/bls"
	"github.com/sgryphon/cortex/runtime/interop"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/mock"
	"github.com/sgryphon/cortex/testing/require"
	"github.com/sgryphon/cortex/testing/util"
)

const numValidators = 64

func genesisAt(t *testing.T, slot types.Slot) (*transition.Engine, *state.BeaconState, []bls.SecretKey) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisStateWithConfig(t, cfg, numValidators)
	engine := transition.NewEngine(cfg)
	require.NoError(t, engine.ProcessSlots(context.Background(), st, slot))
	return engine, st, keys
}

func TestExecuteStateTransition_EndToEnd(t *testing.T) {
	ctx := context.Background()
	engine, st, keys := genesisAt(t, 10)
	blk := util.GenerateFullBlock(t, engine, st, keys, 12)

	post, err := engine.ExecuteStateTransition(ctx, st, blk, true)
	require.NoError(t, err)
	assert.Equal(t, types.Slot(12), post.Slot())
	assert.Equal(t, types.Slot(12), st.Slot(), "transition must mutate in place")
	root, err := post.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, blk.StateRoot, root[:])

	bodyRoot, err := blk.Body.HashTreeRoot()
	require.NoError(t, err)
	header := post.LatestBlockHeader()
	assert.Equal(t, types.Slot(12), header.Slot)
	assert.DeepEqual(t, blk.ParentRoot, header.ParentRoot)
	assert.DeepEqual(t, bodyRoot[:], header.BodyRoot)
	assert.DeepEqual(t, make([]byte, 32), header.StateRoot)
}

func TestExecuteStateTransition_StateRootMismatch(t *testing.T) {
	ctx := context.Background()
	engine, st, keys := genesisAt(t, 10)
	cfg := engine.Config()
	blk := util.GenerateFullBlock(t, engine, st, keys, 12)

	// Flip one bit of the committed root and re-sign so only the root check fails.
	blk.StateRoot[0] ^= 0x01
	advanced := st.Copy()
	require.NoError(t, engine.ProcessSlots(ctx, advanced, 12))
	idx, err := helpers.BeaconProposerIndex(cfg, advanced)
	require.NoError(t, err)
	blk.Signature, err = interop.SignBlock(cfg, advanced, blk, keys[idx])
	require.NoError(t, err)

	_, err = engine.ExecuteStateTransition(ctx, st, blk, true)
	require.ErrorIs(t, err, transition.ErrStateRootMismatch)
	assert.Equal(t, types.Slot(12), st.Slot(), "slots stay advanced after a failed transition")

	// Without root validation the same block applies.
	_, st2, _ := genesisAt(t, 10)
	_, err = engine.ExecuteStateTransition(ctx, st2, blk, false)
	require.NoError(t, err)
}

func TestExecuteStateTransition_InvalidSignature(t *testing.T) {
	engine, st, keys := genesisAt(t, 3)
	blk := util.GenerateFullBlock(t, engine, st, keys, 4)
	blk.Signature = make([]byte, 96)
	_, err := engine.ExecuteStateTransition(context.Background(), st, blk, true)
	require.ErrorIs(t, err, blocks.ErrInvalidSignature)
}

func TestExecuteStateTransition_NilBlock(t *testing.T) {
	engine, st, _ := genesisAt(t, 0)
	_, err := engine.ExecuteStateTransition(context.Background(), st, nil, true)
	require.ErrorIs(t, err, blocks.ErrNilBlock)
}

func TestExecuteStateTransitionNoMutate(t *testing.T) {
	ctx := context.Background()
	engine, st, keys := genesisAt(t, 10)
	blk := util.GenerateFullBlock(t, engine, st, keys, 12)
	preRoot, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)

	bad := blk.Copy()
	bad.ParentRoot = make([]byte, 32)
	_, err = engine.ExecuteStateTransitionNoMutate(ctx, st, bad, true)
	require.ErrorIs(t, err, blocks.ErrParentRootMismatch)
	assert.Equal(t, types.Slot(10), st.Slot())

	post, err := engine.ExecuteStateTransitionNoMutate(ctx, st, blk, true)
	require.NoError(t, err)
	assert.Equal(t, types.Slot(12), post.Slot())
	assert.Equal(t, types.Slot(10), st.Slot())
	root, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, preRoot, root)
}

func TestExecuteStateTransition_ChainOfBlocks(t *testing.T) {
	ctx := context.Background()
	engine, st, keys := genesisAt(t, 0)
	for _, slot := range []types.Slot{1, 2, 5, 8, 9, 17} {
		blk := util.GenerateFullBlock(t, engine, st, keys, slot)
		_, err := engine.ExecuteStateTransition(ctx, st, blk, true)
		require.NoError(t, err, "slot %d", slot)
	}
	assert.Equal(t, types.Slot(17), st.Slot())
}

func TestProcessSlots_Regression(t *testing.T) {
	ctx := context.Background()
	engine, st, _ := genesisAt(t, 10)
	before, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)

	err = engine.ProcessSlots(ctx, st, 9)
	require.ErrorIs(t, err, transition.ErrSlotRegression)
	after, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, types.Slot(10), st.Slot())
}

func TestProcessSlots_SameSlotIsNoop(t *testing.T) {
	ctx := context.Background()
	engine, st, _ := genesisAt(t, 3)
	before, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	require.NoError(t, engine.ProcessSlots(ctx, st, 3))
	after, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProcessSlot_RecordsRoots(t *testing.T) {
	ctx := context.Background()
	engine, st, _ := genesisAt(t, 0)
	cfg := engine.Config()
	// Past one full ring of historical roots.
	require.NoError(t, engine.ProcessSlots(ctx, st, 70))
	st1 := st.Copy()
	st2 := st.Copy()
	preRoot, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)

	require.NoError(t, engine.ProcessSlot(ctx, st1))
	require.NoError(t, engine.ProcessSlot(ctx, st2))

	idx := uint64(st.Slot() % cfg.SlotsPerHistoricalRoot)
	sr1, err := st1.StateRootAtIndex(idx)
	require.NoError(t, err)
	sr2, err := st2.StateRootAtIndex(idx)
	require.NoError(t, err)
	assert.DeepEqual(t, preRoot[:], sr1)
	assert.DeepEqual(t, sr1, sr2)

	br1, err := st1.BlockRootAtIndex(idx)
	require.NoError(t, err)
	br2, err := st2.BlockRootAtIndex(idx)
	require.NoError(t, err)
	headerRoot, err := st1.LatestBlockHeader().SigningRoot()
	require.NoError(t, err)
	assert.DeepEqual(t, headerRoot[:], br1)
	assert.DeepEqual(t, br1, br2)
	assert.Equal(t, st.Slot(), st1.Slot(), "process slot does not advance the slot")
}

func TestProcessSlot_BackfillsHeaderStateRoot(t *testing.T) {
	ctx := context.Background()
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisStateWithConfig(t, cfg, numValidators)
	engine := transition.NewEngine(cfg)
	assert.DeepEqual(t, make([]byte, 32), st.LatestBlockHeader().StateRoot)
	preRoot, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)

	require.NoError(t, engine.ProcessSlot(ctx, st))
	assert.DeepEqual(t, preRoot[:], st.LatestBlockHeader().StateRoot)

	// Once set, the header root is left alone.
	require.NoError(t, engine.ProcessSlot(ctx, st))
	assert.DeepEqual(t, preRoot[:], st.LatestBlockHeader().StateRoot)
}

func TestNewEngine_NilConfigDefaultsToMainnet(t *testing.T) {
	engine := transition.NewEngine(nil)
	assert.Equal(t, params.MainnetConfig().SlotsPerEpoch, engine.Config().SlotsPerEpoch)
}

func TestCalculateStateRoot_DoesNotMutate(t *testing.T) {
	ctx := context.Background()
	engine, st, keys := genesisAt(t, 2)
	blk := util.GenerateFullBlock(t, engine, st, keys, 4)
	before, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	root, err := engine.CalculateStateRoot(ctx, st, blk)
	require.NoError(t, err)
	assert.DeepEqual(t, blk.StateRoot, root[:])
	after, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExecuteStateTransition_ErrorIsWrapped(t *testing.T) {
	engine, st, keys := genesisAt(t, 4)
	blk := util.GenerateFullBlock(t, engine, st, keys, 5)
	blk.Slot = 3
	_, err := engine.ExecuteStateTransition(context.Background(), st, blk, true)
	require.ErrorIs(t, err, transition.ErrSlotRegression)
	assert.ErrorContains(t, "could not process slots", err)
	assert.Equal(t, true, errors.Cause(err) == transition.ErrSlotRegression)
}

func TestExecuteStateTransition_SlotMismatchAfterSlots(t *testing.T) {
	// A header built for one slot cannot be replayed at another.
	engine, st, keys := genesisAt(t, 1)
	blk := util.GenerateFullBlock(t, engine, st, keys, 2)
	_, err := engine.ExecuteStateTransition(context.Background(), st, blk, true)
	require.NoError(t, err)
	_, err = engine.ExecuteStateTransition(context.Background(), st, blk, true)
	require.ErrorIs(t, err, blocks.ErrParentRootMismatch)
}

func TestEngine_WithoutSignatureVerification(t *testing.T) {
	engine, st, keys := genesisAt(t, 1)
	blk := util.GenerateFullBlock(t, engine, st, keys, 2)
	blk.Signature = make([]byte, 96)

	noVerify := transition.NewEngine(engine.Config(), transition.WithoutSignatureVerification())
	_, err := noVerify.ExecuteStateTransition(context.Background(), st, blk, true)
	require.NoError(t, err)
}

func TestEngine_WithVerifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, st, keys := genesisAt(t, 1)
	blk := util.GenerateFullBlock(t, engine, st, keys, 2)
	v := mock.NewMockVerifier(ctrl)
	v.EXPECT().Verify(gomock.Any(), gomock.Any(), blk.Signature).Return(false, nil)

	rejecting := transition.NewEngine(engine.Config(), transition.WithVerifier(v))
	_, err := rejecting.ExecuteStateTransitionNoMutate(context.Background(), st, blk, true)
	require.ErrorIs(t, err, blocks.ErrInvalidSignature)
}
