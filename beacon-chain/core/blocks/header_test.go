package blocks_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sgryphon/cortex/beacon-chain/core/blocks"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	"github.com/sgryphon/cortex/crypto/bls"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/runtime/interop"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/mock"
	"github.com/sgryphon/cortex/testing/require"
	"github.com/sgryphon/cortex/testing/util"
)

// headerFixture returns a state advanced to slot 1 and a valid signed block
// for that slot.
func headerFixture(t *testing.T) (*params.BeaconChainConfig, *state.BeaconState, *ethpb.BeaconBlock, []bls.SecretKey) {
	cfg := params.MinimalSpecConfig()
	genesis, keys := util.DeterministicGenesisStateWithConfig(t, cfg, 64)
	engine := transition.NewEngine(cfg)
	blk := util.GenerateFullBlock(t, engine, genesis, keys, 1)
	st := genesis.Copy()
	require.NoError(t, engine.ProcessSlots(context.Background(), st, 1))
	return cfg, st, blk, keys
}

func TestProcessBlockHeader_OK(t *testing.T) {
	cfg, st, blk, _ := headerFixture(t)
	_, err := blocks.ProcessBlockHeader(context.Background(), cfg, st, blk)
	require.NoError(t, err)

	bodyRoot, err := blk.Body.HashTreeRoot()
	require.NoError(t, err)
	want := &ethpb.BeaconBlockHeader{
		Slot:       blk.Slot,
		ParentRoot: blk.ParentRoot,
		StateRoot:  make([]byte, 32),
		BodyRoot:   bodyRoot[:],
		Signature:  make([]byte, 96),
	}
	assert.DeepEqual(t, want, st.LatestBlockHeader())
}

func TestProcessBlockHeader_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, cfg *params.BeaconChainConfig, st *state.BeaconState, blk *ethpb.BeaconBlock, keys []bls.SecretKey)
		wantErr error
	}{
		{
			name: "slot mismatch",
			mutate: func(_ *testing.T, _ *params.BeaconChainConfig, _ *state.BeaconState, blk *ethpb.BeaconBlock, _ []bls.SecretKey) {
				blk.Slot = 2
			},
			wantErr: blocks.ErrSlotMismatch,
		},
		{
			name: "parent root mismatch",
			mutate: func(_ *testing.T, _ *params.BeaconChainConfig, _ *state.BeaconState, blk *ethpb.BeaconBlock, _ []bls.SecretKey) {
				blk.ParentRoot = []byte{'x', 31: 0}
			},
			wantErr: blocks.ErrParentRootMismatch,
		},
		{
			name: "slashed proposer",
			mutate: func(t *testing.T, cfg *params.BeaconChainConfig, st *state.BeaconState, _ *ethpb.BeaconBlock, _ []bls.SecretKey) {
				idx, err := helpers.BeaconProposerIndex(cfg, st)
				require.NoError(t, err)
				v, err := st.ValidatorAtIndex(idx)
				require.NoError(t, err)
				v.Slashed = true
				require.NoError(t, st.UpdateValidatorAtIndex(idx, v))
			},
			wantErr: blocks.ErrSlashedProposer,
		},
		{
			name: "signed by another validator",
			mutate: func(t *testing.T, cfg *params.BeaconChainConfig, st *state.BeaconState, blk *ethpb.BeaconBlock, keys []bls.SecretKey) {
				idx, err := helpers.BeaconProposerIndex(cfg, st)
				require.NoError(t, err)
				other := keys[(int(idx)+1)%len(keys)]
				sig, err := interop.SignBlock(cfg, st, blk, other)
				require.NoError(t, err)
				blk.Signature = sig
			},
			wantErr: blocks.ErrInvalidSignature,
		},
		{
			name: "tampered signature",
			mutate: func(_ *testing.T, _ *params.BeaconChainConfig, _ *state.BeaconState, blk *ethpb.BeaconBlock, _ []bls.SecretKey) {
				blk.Signature[5] ^= 0x01
			},
			wantErr: blocks.ErrInvalidSignature,
		},
		{
			name: "signed body does not match",
			mutate: func(_ *testing.T, _ *params.BeaconChainConfig, _ *state.BeaconState, blk *ethpb.BeaconBlock, _ []bls.SecretKey) {
				blk.Body.Graffiti = []byte{'g', 31: 0}
			},
			wantErr: blocks.ErrInvalidSignature,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, st, blk, keys := headerFixture(t)
			tt.mutate(t, cfg, st, blk, keys)
			before := st.LatestBlockHeader()

			_, err := blocks.ProcessBlockHeader(context.Background(), cfg, st, blk)
			require.ErrorIs(t, err, tt.wantErr)
			assert.DeepEqual(t, before, st.LatestBlockHeader(), "latest block header was mutated")
		})
	}
}

func TestProcessBlockHeader_DistinctErrors(t *testing.T) {
	errs := []error{
		blocks.ErrSlotMismatch,
		blocks.ErrParentRootMismatch,
		blocks.ErrSlashedProposer,
		blocks.ErrInvalidSignature,
	}
	for i := range errs {
		for j := range errs {
			if i != j {
				assert.NotEqual(t, errs[i], errs[j])
			}
		}
	}
}

func TestProcessBlockHeader_NilBlock(t *testing.T) {
	cfg, st, _, _ := headerFixture(t)
	_, err := blocks.ProcessBlockHeader(context.Background(), cfg, st, nil)
	require.ErrorIs(t, err, blocks.ErrNilBlock)
	_, err = blocks.ProcessBlockHeader(context.Background(), cfg, st, &ethpb.BeaconBlock{Slot: 1})
	require.ErrorIs(t, err, blocks.ErrNilBlock)
}

func TestProcessBlockHeaderWithVerifier_Mock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg, st, blk, _ := headerFixture(t)
	idx, err := helpers.BeaconProposerIndex(cfg, st)
	require.NoError(t, err)
	proposer, err := st.ValidatorAtIndex(idx)
	require.NoError(t, err)

	verifier := mock.NewMockVerifier(ctrl)
	verifier.EXPECT().Verify(proposer.PublicKey, gomock.Any(), blk.Signature).Return(false, nil)
	_, err = blocks.ProcessBlockHeaderWithVerifier(context.Background(), cfg, st, blk, verifier)
	require.ErrorIs(t, err, blocks.ErrInvalidSignature)

	blk.Signature = make([]byte, 96)
	verifier.EXPECT().Verify(proposer.PublicKey, gomock.Any(), blk.Signature).Return(true, nil)
	_, err = blocks.ProcessBlockHeaderWithVerifier(context.Background(), cfg, st, blk, verifier)
	require.NoError(t, err)
	assert.Equal(t, blk.Slot, st.LatestBlockHeader().Slot)
}

func TestProcessBlockHeaderNoVerify_ZeroSignature(t *testing.T) {
	cfg, st, blk, _ := headerFixture(t)
	blk.Signature = make([]byte, 96)
	_, err := blocks.ProcessBlockHeaderNoVerify(context.Background(), cfg, st, blk)
	require.NoError(t, err)
	assert.Equal(t, blk.Slot, st.LatestBlockHeader().Slot)
}

func TestBlockSignatureSet_Verifies(t *testing.T) {
	cfg, st, blk, _ := headerFixture(t)
	set, err := blocks.BlockSignatureSet(cfg, st, blk)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	ok, err := set.Verify()
	require.NoError(t, err)
	assert.Equal(t, true, ok)

	blk.Body.Graffiti = []byte{'g', 31: 0}
	set, err = blocks.BlockSignatureSet(cfg, st, blk)
	require.NoError(t, err)
	ok, err = set.Verify()
	require.NoError(t, err)
	assert.Equal(t, false, ok)
}

func TestBlockOperations_NoMutation(t *testing.T) {
	_, st, blk, _ := headerFixture(t)
	ctx := context.Background()
	before, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	_, err = blocks.ProcessRandao(ctx, st, blk.Body)
	require.NoError(t, err)
	_, err = blocks.ProcessEth1DataInBlock(ctx, st, blk.Body)
	require.NoError(t, err)
	_, err = blocks.ProcessOperations(ctx, st, blk.Body)
	require.NoError(t, err)
	after, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
