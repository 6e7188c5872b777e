package helpers

import (
	"github.com/sgryphon/cortex/beacon-chain/core/signing"
	"github.com/sgryphon/cortex/beacon-chain/state"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
)

// Domain returns the signature domain of the state's fork and genesis
// validators root for the domain type at the given epoch.
func Domain(st state.ReadOnlyBeaconState, epoch types.Epoch, domainType types.DomainType) ([]byte, error) {
	return signing.Domain(st.Fork(), epoch, domainType, st.GenesisValidatorsRoot())
}
