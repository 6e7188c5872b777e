package epoch_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sgryphon/cortex/beacon-chain/core/epoch"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

const numValidators = 64

// epochState returns a minimal preset state at the last slot of epoch e with
// 64 active validators and a distinct block root at every slot.
func epochState(t *testing.T, e types.Epoch) (*params.BeaconChainConfig, *state.BeaconState) {
	cfg := params.MinimalSpecConfig()
	st, err := state.New(cfg)
	require.NoError(t, err)
	for i := 0; i < numValidators; i++ {
		pk := make([]byte, 48)
		pk[0] = byte(i)
		require.NoError(t, st.AppendValidator(&ethpb.Validator{
			PublicKey:             pk,
			WithdrawalCredentials: make([]byte, 32),
			EffectiveBalance:      cfg.MaxEffectiveBalance,
			ExitEpoch:             cfg.FarFutureEpoch,
			WithdrawableEpoch:     cfg.FarFutureEpoch,
		}, cfg.MaxEffectiveBalance))
	}
	for i := uint64(0); i < uint64(cfg.SlotsPerHistoricalRoot); i++ {
		require.NoError(t, st.UpdateBlockRootAtIndex(i, [32]byte{byte(i + 1)}))
	}
	st.SetSlot(types.Slot(uint64(e+1)*uint64(cfg.SlotsPerEpoch)) - 1)
	return cfg, st
}

// attest records attestations for epoch e with target root, setting the bits
// of the first n committee members encountered.
func attest(t *testing.T, cfg *params.BeaconChainConfig, st *state.BeaconState, e types.Epoch, root []byte, n int) {
	start, err := helpers.StartSlot(cfg, e)
	require.NoError(t, err)
	committees := helpers.SlotCommitteeCount(cfg, numValidators)
	current := helpers.CurrentEpoch(cfg, st)
	for s := start; s < start+cfg.SlotsPerEpoch; s++ {
		for c := uint64(0); c < committees; c++ {
			committee, err := helpers.BeaconCommittee(cfg, st, s, types.CommitteeIndex(c))
			require.NoError(t, err)
			bits := bitfield.NewBitlist(uint64(len(committee)))
			for i := range committee {
				if n == 0 {
					break
				}
				bits.SetBitAt(uint64(i), true)
				n--
			}
			att := &ethpb.PendingAttestation{
				AggregationBits: bits,
				Data: &ethpb.AttestationData{
					Slot:            s,
					CommitteeIndex:  types.CommitteeIndex(c),
					BeaconBlockRoot: make([]byte, 32),
					Source:          &ethpb.Checkpoint{Root: make([]byte, 32)},
					Target:          &ethpb.Checkpoint{Epoch: e, Root: root},
				},
				InclusionDelay: 1,
			}
			if e == current {
				require.NoError(t, st.AppendCurrentEpochAttestations(att))
			} else {
				require.NoError(t, st.AppendPreviousEpochAttestations(att))
			}
		}
	}
}

func blockRoot(t *testing.T, cfg *params.BeaconChainConfig, st *state.BeaconState, e types.Epoch) []byte {
	r, err := helpers.BlockRoot(cfg, st, e)
	require.NoError(t, err)
	return r[:]
}

func TestMatchingSourceAttestations_EpochOutOfRange(t *testing.T) {
	cfg, st := epochState(t, 3)
	_, err := epoch.MatchingSourceAttestations(cfg, st, 1)
	require.ErrorIs(t, err, epoch.ErrEpochOutOfRange)
	_, err = epoch.MatchingTargetAttestations(cfg, st, 4)
	require.ErrorIs(t, err, epoch.ErrEpochOutOfRange)

	atts, err := epoch.MatchingSourceAttestations(cfg, st, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, len(atts))
}

func TestMatchingTargetAttestations_FiltersByRoot(t *testing.T) {
	cfg, st := epochState(t, 3)
	attest(t, cfg, st, 2, blockRoot(t, cfg, st, 2), numValidators)
	attest(t, cfg, st, 2, make([]byte, 32), numValidators)

	source, err := epoch.MatchingSourceAttestations(cfg, st, 2)
	require.NoError(t, err)
	target, err := epoch.MatchingTargetAttestations(cfg, st, 2)
	require.NoError(t, err)
	assert.Equal(t, 2*len(target), len(source))
	for _, a := range target {
		assert.DeepEqual(t, blockRoot(t, cfg, st, 2), a.Data.Target.Root)
	}
}

func TestUnslashedAttestingIndices_SkipsSlashedAndDuplicates(t *testing.T) {
	cfg, st := epochState(t, 3)
	root := blockRoot(t, cfg, st, 3)
	attest(t, cfg, st, 3, root, numValidators)
	attest(t, cfg, st, 3, root, numValidators)

	atts, err := epoch.MatchingTargetAttestations(cfg, st, 3)
	require.NoError(t, err)
	indices, err := epoch.UnslashedAttestingIndices(cfg, st, atts)
	require.NoError(t, err)
	require.Equal(t, numValidators, len(indices))
	for i := 1; i < len(indices); i++ {
		assert.Equal(t, true, indices[i-1] < indices[i], "indices not sorted")
	}

	v, err := st.ValidatorAtIndex(7)
	require.NoError(t, err)
	v.Slashed = true
	require.NoError(t, st.UpdateValidatorAtIndex(7, v))
	indices, err = epoch.UnslashedAttestingIndices(cfg, st, atts)
	require.NoError(t, err)
	require.Equal(t, numValidators-1, len(indices))
	for _, idx := range indices {
		assert.NotEqual(t, types.ValidatorIndex(7), idx)
	}

	bal, err := epoch.AttestingBalance(cfg, st, atts)
	require.NoError(t, err)
	assert.Equal(t, uint64(numValidators-1)*cfg.MaxEffectiveBalance, bal)
}

func TestUnslashedAttestingIndices_BitsLengthMismatch(t *testing.T) {
	cfg, st := epochState(t, 3)
	att := &ethpb.PendingAttestation{
		AggregationBits: bitfield.NewBitlist(1),
		Data: &ethpb.AttestationData{
			Slot:   24,
			Target: &ethpb.Checkpoint{Epoch: 3, Root: make([]byte, 32)},
		},
	}
	_, err := epoch.UnslashedAttestingIndices(cfg, st, []*ethpb.PendingAttestation{att})
	require.ErrorIs(t, err, helpers.ErrBitsDifferentLen)
}

func TestIsSupermajority_Boundary(t *testing.T) {
	tests := []struct {
		name      string
		attesting uint64
		total     uint64
		want      bool
	}{
		{name: "exactly two thirds", attesting: 200, total: 300, want: true},
		{name: "one below", attesting: 199, total: 300, want: false},
		{name: "one above", attesting: 201, total: 300, want: true},
		{name: "no rounding up", attesting: 2, total: 4, want: false},
		{name: "max values", attesting: ^uint64(0), total: ^uint64(0), want: true},
		{name: "max total", attesting: ^uint64(0) / 2, total: ^uint64(0), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, epoch.IsSupermajority(tt.attesting, tt.total))
		})
	}
}

func TestProcessJustificationAndFinalization_NoopAtGenesis(t *testing.T) {
	for _, e := range []types.Epoch{0, 1} {
		cfg, st := epochState(t, e)
		attest(t, cfg, st, e, blockRoot(t, cfg, st, e), numValidators)
		require.NoError(t, st.SetJustificationBits(bitfield.Bitvector4{0x05}))
		cp := &ethpb.Checkpoint{Epoch: 0, Root: []byte{'A', 31: 0}}
		require.NoError(t, st.SetCurrentJustifiedCheckpoint(cp))

		_, err := epoch.ProcessJustificationAndFinalization(context.Background(), cfg, st)
		require.NoError(t, err)
		assert.DeepEqual(t, bitfield.Bitvector4{0x05}, st.JustificationBits())
		assert.DeepEqual(t, cp, st.CurrentJustifiedCheckpoint())
		assert.DeepEqual(t, &ethpb.Checkpoint{Root: make([]byte, 32)}, st.PreviousJustifiedCheckpoint())
		assert.DeepEqual(t, &ethpb.Checkpoint{Root: make([]byte, 32)}, st.FinalizedCheckpoint())
	}
}

func TestProcessJustificationAndFinalization_JustifiesBothEpochs(t *testing.T) {
	cfg, st := epochState(t, 3)
	attest(t, cfg, st, 2, blockRoot(t, cfg, st, 2), numValidators)
	attest(t, cfg, st, 3, blockRoot(t, cfg, st, 3), numValidators)
	oldCurrent := &ethpb.Checkpoint{Epoch: 1, Root: []byte{'B', 31: 0}}
	require.NoError(t, st.SetCurrentJustifiedCheckpoint(oldCurrent))

	_, err := epoch.ProcessJustificationAndFinalization(context.Background(), cfg, st)
	require.NoError(t, err)
	assert.DeepEqual(t, oldCurrent, st.PreviousJustifiedCheckpoint())
	assert.DeepEqual(t, &ethpb.Checkpoint{Epoch: 3, Root: blockRoot(t, cfg, st, 3)}, st.CurrentJustifiedCheckpoint())
	assert.Equal(t, byte(0x03), st.JustificationBits()[0])
	// No rule fires: bit 2 is clear and the old justified epochs are too far back.
	assert.DeepEqual(t, &ethpb.Checkpoint{Root: make([]byte, 32)}, st.FinalizedCheckpoint())
}

func TestProcessJustificationAndFinalization_PreviousEpochOnly(t *testing.T) {
	cfg, st := epochState(t, 3)
	attest(t, cfg, st, 2, blockRoot(t, cfg, st, 2), numValidators)

	_, err := epoch.ProcessJustificationAndFinalization(context.Background(), cfg, st)
	require.NoError(t, err)
	assert.DeepEqual(t, &ethpb.Checkpoint{Epoch: 2, Root: blockRoot(t, cfg, st, 2)}, st.CurrentJustifiedCheckpoint())
	assert.Equal(t, byte(0x02), st.JustificationBits()[0])
}

func TestProcessJustificationAndFinalization_Threshold(t *testing.T) {
	tests := []struct {
		attesters int
		justified bool
	}{
		// 43*3 >= 64*2
		{attesters: 43, justified: true},
		// 42*3 < 64*2
		{attesters: 42, justified: false},
		{attesters: 44, justified: true},
	}
	for _, tt := range tests {
		cfg, st := epochState(t, 3)
		attest(t, cfg, st, 3, blockRoot(t, cfg, st, 3), tt.attesters)
		_, err := epoch.ProcessJustificationAndFinalization(context.Background(), cfg, st)
		require.NoError(t, err)
		assert.Equal(t, tt.justified, st.JustificationBits().BitAt(0), "attesters %d", tt.attesters)
		if tt.justified {
			assert.Equal(t, types.Epoch(3), st.CurrentJustifiedCheckpoint().Epoch)
		} else {
			assert.Equal(t, types.Epoch(0), st.CurrentJustifiedCheckpoint().Epoch)
		}
	}
}

func TestProcessJustificationAndFinalization_FinalizesPreviousJustified(t *testing.T) {
	cfg, st := epochState(t, 3)
	attest(t, cfg, st, 2, blockRoot(t, cfg, st, 2), numValidators)
	attest(t, cfg, st, 3, blockRoot(t, cfg, st, 3), numValidators)
	// Epochs 1 and 2 were justified during the previous two epoch transitions.
	require.NoError(t, st.SetJustificationBits(bitfield.Bitvector4{0x03}))
	prev := &ethpb.Checkpoint{Epoch: 1, Root: []byte{'P', 31: 0}}
	curr := &ethpb.Checkpoint{Epoch: 2, Root: []byte{'C', 31: 0}}
	require.NoError(t, st.SetPreviousJustifiedCheckpoint(prev))
	require.NoError(t, st.SetCurrentJustifiedCheckpoint(curr))

	_, err := epoch.ProcessJustificationAndFinalization(context.Background(), cfg, st)
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), st.JustificationBits()[0])
	// Rules B and D both fire; D is evaluated last.
	assert.DeepEqual(t, curr, st.FinalizedCheckpoint())
	assert.DeepEqual(t, curr, st.PreviousJustifiedCheckpoint())
}

func TestEpochPhases_NoMutation(t *testing.T) {
	_, st := epochState(t, 3)
	ctx := context.Background()
	before, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	for _, phase := range []func(context.Context, *state.BeaconState) (*state.BeaconState, error){
		epoch.ProcessRewardsAndPenalties,
		epoch.ProcessRegistryUpdates,
		epoch.ProcessSlashings,
		epoch.ProcessFinalUpdates,
	} {
		_, err := phase(ctx, st)
		require.NoError(t, err)
	}
	after, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
