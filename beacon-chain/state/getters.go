package state

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/encoding/bytesutil"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// GenesisTime of the beacon state as a uint64.
func (b *BeaconState) GenesisTime() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.GenesisTime
}

// GenesisValidatorsRoot of the beacon state.
func (b *BeaconState) GenesisValidatorsRoot() []byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopyBytes(b.state.GenesisValidatorsRoot)
}

// Slot of the current beacon chain state.
func (b *BeaconState) Slot() types.Slot {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Slot
}

// Fork version of the beacon chain.
func (b *BeaconState) Fork() *ethpb.Fork {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Fork.Copy()
}

// LatestBlockHeader stored within the beacon state.
func (b *BeaconState) LatestBlockHeader() *ethpb.BeaconBlockHeader {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.LatestBlockHeader.Copy()
}

// BlockRootAtIndex retrieves a specific block root based on an
// input index value.
func (b *BeaconState) BlockRootAtIndex(idx uint64) ([]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return rootAtIndex(b.state.BlockRoots, idx)
}

// BlockRootsLength is the fixed length of the block roots ring buffer.
func (b *BeaconState) BlockRootsLength() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return uint64(len(b.state.BlockRoots))
}

// StateRootAtIndex retrieves a specific state root based on an
// input index value.
func (b *BeaconState) StateRootAtIndex(idx uint64) ([]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return rootAtIndex(b.state.StateRoots, idx)
}

// StateRootsLength is the fixed length of the state roots ring buffer.
func (b *BeaconState) StateRootsLength() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return uint64(len(b.state.StateRoots))
}

// RandaoMixAtIndex retrieves a specific randao mix based on an
// input index value.
func (b *BeaconState) RandaoMixAtIndex(idx uint64) ([]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return rootAtIndex(b.state.RandaoMixes, idx)
}

// RandaoMixesLength is the fixed length of the randao mixes ring buffer.
func (b *BeaconState) RandaoMixesLength() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return uint64(len(b.state.RandaoMixes))
}

func rootAtIndex(roots [][]byte, idx uint64) ([]byte, error) {
	if idx >= uint64(len(roots)) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", idx, len(roots))
	}
	return bytesutil.SafeCopyBytes(roots[idx]), nil
}

// Eth1Data corresponding to the proof-of-work chain information stored in the beacon state.
func (b *BeaconState) Eth1Data() *ethpb.Eth1Data {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Eth1Data.Copy()
}

// Eth1DepositIndex corresponds to the index of the deposit made to the
// validator deposit contract at the time of this state's eth1 data.
func (b *BeaconState) Eth1DepositIndex() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Eth1DepositIndex
}

// NumValidators returns the size of the validator registry.
func (b *BeaconState) NumValidators() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.state.Validators)
}

// Validators participating in consensus on the beacon chain.
func (b *BeaconState) Validators() []*ethpb.Validator {
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]*ethpb.Validator, len(b.state.Validators))
	for i, v := range b.state.Validators {
		res[i] = v.Copy()
	}
	return res
}

// ValidatorAtIndex is the validator at the provided index.
func (b *BeaconState) ValidatorAtIndex(idx types.ValidatorIndex) (*ethpb.Validator, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(idx) >= uint64(len(b.state.Validators)) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "validator index %d, registry size %d", idx, len(b.state.Validators))
	}
	return b.state.Validators[idx].Copy(), nil
}

// ReadFromEveryValidator reads values from every validator and applies it to the provided function.
// The validator handed to f must not be modified.
func (b *BeaconState) ReadFromEveryValidator(f func(idx int, val *ethpb.Validator) error) error {
	b.lock.RLock()
	defer b.lock.RUnlock()
	for i, v := range b.state.Validators {
		if err := f(i, v); err != nil {
			return err
		}
	}
	return nil
}

// ActiveValidatorIndices lists validators active at epoch, in registry order.
func (b *BeaconState) ActiveValidatorIndices(epoch types.Epoch) []types.ValidatorIndex {
	b.lock.RLock()
	defer b.lock.RUnlock()
	indices := make([]types.ValidatorIndex, 0, len(b.state.Validators))
	for i, v := range b.state.Validators {
		if v.ActivationEpoch <= epoch && epoch < v.ExitEpoch {
			indices = append(indices, types.ValidatorIndex(i))
		}
	}
	return indices
}

// Balances of validators participating in consensus on the beacon chain.
func (b *BeaconState) Balances() []uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]uint64, len(b.state.Balances))
	copy(res, b.state.Balances)
	return res
}

// BalanceAtIndex of validator with the provided index.
func (b *BeaconState) BalanceAtIndex(idx types.ValidatorIndex) (uint64, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(idx) >= uint64(len(b.state.Balances)) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "balance index %d, registry size %d", idx, len(b.state.Balances))
	}
	return b.state.Balances[idx], nil
}

// PreviousEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) PreviousEpochAttestations() []*ethpb.PendingAttestation {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyAttestations(b.state.PreviousEpochAttestations)
}

// CurrentEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) CurrentEpochAttestations() []*ethpb.PendingAttestation {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyAttestations(b.state.CurrentEpochAttestations)
}

func copyAttestations(atts []*ethpb.PendingAttestation) []*ethpb.PendingAttestation {
	res := make([]*ethpb.PendingAttestation, len(atts))
	for i, a := range atts {
		res[i] = a.Copy()
	}
	return res
}

// JustificationBits marking which epochs have been justified in the beacon chain.
func (b *BeaconState) JustificationBits() bitfield.Bitvector4 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make(bitfield.Bitvector4, len(b.state.JustificationBits))
	copy(res, b.state.JustificationBits)
	return res
}

// PreviousJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) PreviousJustifiedCheckpoint() *ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.PreviousJustifiedCheckpoint.Copy()
}

// CurrentJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) CurrentJustifiedCheckpoint() *ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.CurrentJustifiedCheckpoint.Copy()
}

// FinalizedCheckpoint denoting an epoch and block root.
func (b *BeaconState) FinalizedCheckpoint() *ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FinalizedCheckpoint.Copy()
}

// FinalizedCheckpointEpoch returns the epoch value of the finalized checkpoint.
func (b *BeaconState) FinalizedCheckpointEpoch() types.Epoch {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FinalizedCheckpoint.Epoch
}
