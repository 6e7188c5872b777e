package state

import (
	"context"

	"github.com/prysmaticlabs/go-bitfield"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// ReadOnlyBeaconState is the read access used by the accessor helpers.
type ReadOnlyBeaconState interface {
	GenesisTime() uint64
	GenesisValidatorsRoot() []byte
	Slot() types.Slot
	Fork() *ethpb.Fork
	LatestBlockHeader() *ethpb.BeaconBlockHeader
	BlockRootAtIndex(idx uint64) ([]byte, error)
	BlockRootsLength() uint64
	StateRootAtIndex(idx uint64) ([]byte, error)
	RandaoMixAtIndex(idx uint64) ([]byte, error)
	RandaoMixesLength() uint64
	Eth1Data() *ethpb.Eth1Data
	Eth1DepositIndex() uint64
	NumValidators() int
	ValidatorAtIndex(idx types.ValidatorIndex) (*ethpb.Validator, error)
	ReadFromEveryValidator(f func(idx int, val *ethpb.Validator) error) error
	ActiveValidatorIndices(epoch types.Epoch) []types.ValidatorIndex
	BalanceAtIndex(idx types.ValidatorIndex) (uint64, error)
	PreviousEpochAttestations() []*ethpb.PendingAttestation
	CurrentEpochAttestations() []*ethpb.PendingAttestation
	JustificationBits() bitfield.Bitvector4
	PreviousJustifiedCheckpoint() *ethpb.Checkpoint
	CurrentJustifiedCheckpoint() *ethpb.Checkpoint
	FinalizedCheckpoint() *ethpb.Checkpoint
	HashTreeRoot(ctx context.Context) ([32]byte, error)
}

var _ ReadOnlyBeaconState = (*BeaconState)(nil)
