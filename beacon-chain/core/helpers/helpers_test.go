package helpers_test

import (
	"testing"

	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/testing/require"
)

// activeState returns a minimal preset state at slot with n validators active since genesis.
func activeState(t *testing.T, n int, slot types.Slot) *state.BeaconState {
	cfg := params.MinimalSpecConfig()
	st, err := state.New(cfg)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		pk := make([]byte, 48)
		pk[0], pk[1] = byte(i), byte(i>>8)
		require.NoError(t, st.AppendValidator(&ethpb.Validator{
			PublicKey:                  pk,
			WithdrawalCredentials:      make([]byte, 32),
			EffectiveBalance:           cfg.MaxEffectiveBalance,
			ActivationEligibilityEpoch: 0,
			ActivationEpoch:            0,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
		}, cfg.MaxEffectiveBalance))
	}
	st.SetSlot(slot)
	return st
}
