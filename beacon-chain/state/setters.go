package state

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/encoding/bytesutil"
	"github.com/sgryphon/cortex/math"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// SetGenesisTime for the beacon state.
func (b *BeaconState) SetGenesisTime(val uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.GenesisTime = val
}

// SetGenesisValidatorsRoot for the beacon state.
func (b *BeaconState) SetGenesisValidatorsRoot(val []byte) error {
	if len(val) != 32 {
		return errors.Errorf("genesis validators root must be 32 bytes, got %d", len(val))
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.GenesisValidatorsRoot = bytesutil.SafeCopyBytes(val)
	return nil
}

// SetSlot for the beacon state.
func (b *BeaconState) SetSlot(val types.Slot) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Slot = val
}

// IncreaseSlot advances the slot counter by one.
func (b *BeaconState) IncreaseSlot() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	next, err := b.state.Slot.SafeAdd(1)
	if err != nil {
		return errors.Wrap(err, "could not increase slot")
	}
	b.state.Slot = next
	return nil
}

// SetFork version for the beacon chain.
func (b *BeaconState) SetFork(val *ethpb.Fork) error {
	if val == nil {
		return errors.New("nil fork")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Fork = val.Copy()
	return nil
}

// SetLatestBlockHeader in the beacon state.
func (b *BeaconState) SetLatestBlockHeader(val *ethpb.BeaconBlockHeader) error {
	if val == nil {
		return errors.New("nil block header")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.LatestBlockHeader = val.Copy()
	return nil
}

// UpdateBlockRootAtIndex for the beacon state. Updates the block root
// at a specific index to a new value.
func (b *BeaconState) UpdateBlockRootAtIndex(idx uint64, blockRoot [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return setRootAtIndex(b.state.BlockRoots, idx, blockRoot)
}

// UpdateStateRootAtIndex for the beacon state. Updates the state root
// at a specific index to a new value.
func (b *BeaconState) UpdateStateRootAtIndex(idx uint64, stateRoot [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return setRootAtIndex(b.state.StateRoots, idx, stateRoot)
}

// UpdateRandaoMixesAtIndex for the beacon state. Updates the randao mixes
// at a specific index to a new value.
func (b *BeaconState) UpdateRandaoMixesAtIndex(idx uint64, val [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return setRootAtIndex(b.state.RandaoMixes, idx, val)
}

func setRootAtIndex(roots [][]byte, idx uint64, root [32]byte) error {
	if idx >= uint64(len(roots)) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", idx, len(roots))
	}
	roots[idx] = append([]byte{}, root[:]...)
	return nil
}

// SetEth1Data for the beacon state.
func (b *BeaconState) SetEth1Data(val *ethpb.Eth1Data) error {
	if val == nil {
		return errors.New("nil eth1 data")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1Data = val.Copy()
	return nil
}

// IncreaseEth1DepositIndex increments the deposit counter by one.
func (b *BeaconState) IncreaseEth1DepositIndex() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	next, err := math.Add64(b.state.Eth1DepositIndex, 1)
	if err != nil {
		return errors.Wrap(err, "could not increase eth1 deposit index")
	}
	b.state.Eth1DepositIndex = next
	return nil
}

// AppendValidator adds a validator and its balance to the registry. Both
// sequences grow together.
func (b *BeaconState) AppendValidator(val *ethpb.Validator, balance uint64) error {
	if val == nil {
		return ErrNilValidator
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Validators = append(b.state.Validators, val.Copy())
	b.state.Balances = append(b.state.Balances, balance)
	return nil
}

// UpdateValidatorAtIndex for the beacon state. Updates the validator
// at a specific index to a new value.
func (b *BeaconState) UpdateValidatorAtIndex(idx types.ValidatorIndex, val *ethpb.Validator) error {
	if val == nil {
		return ErrNilValidator
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(idx) >= uint64(len(b.state.Validators)) {
		return errors.Wrapf(ErrIndexOutOfRange, "validator index %d, registry size %d", idx, len(b.state.Validators))
	}
	b.state.Validators[idx] = val.Copy()
	return nil
}

// IncreaseBalance adds delta to the balance at idx.
func (b *BeaconState) IncreaseBalance(idx types.ValidatorIndex, delta uint64) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(idx) >= uint64(len(b.state.Balances)) {
		return errors.Wrapf(ErrIndexOutOfRange, "balance index %d, registry size %d", idx, len(b.state.Balances))
	}
	newBal, err := math.Add64(b.state.Balances[idx], delta)
	if err != nil {
		return errors.Wrapf(ErrBalanceOverflow, "validator %d", idx)
	}
	b.state.Balances[idx] = newBal
	return nil
}

// AppendCurrentEpochAttestations for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendCurrentEpochAttestations(val *ethpb.PendingAttestation) error {
	if val == nil {
		return errors.New("nil pending attestation")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.CurrentEpochAttestations = append(b.state.CurrentEpochAttestations, val.Copy())
	return nil
}

// AppendPreviousEpochAttestations for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendPreviousEpochAttestations(val *ethpb.PendingAttestation) error {
	if val == nil {
		return errors.New("nil pending attestation")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousEpochAttestations = append(b.state.PreviousEpochAttestations, val.Copy())
	return nil
}

// SetJustificationBits for the beacon state.
func (b *BeaconState) SetJustificationBits(val bitfield.Bitvector4) error {
	if len(val) != 1 {
		return errors.Errorf("justification bits must be 1 byte, got %d", len(val))
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	bits := make(bitfield.Bitvector4, 1)
	copy(bits, val)
	b.state.JustificationBits = bits
	return nil
}

// ShiftJustificationBits moves every justification bit one position towards
// older history. Bit 0 is cleared and the oldest bit is dropped.
func (b *BeaconState) ShiftJustificationBits() {
	b.lock.Lock()
	defer b.lock.Unlock()
	bits := make(bitfield.Bitvector4, 1)
	copy(bits, b.state.JustificationBits)
	bits.Shift(1)
	b.state.JustificationBits = bits
}

// SetPreviousJustifiedCheckpoint for the beacon state.
func (b *BeaconState) SetPreviousJustifiedCheckpoint(val *ethpb.Checkpoint) error {
	return b.setCheckpoint(&b.state.PreviousJustifiedCheckpoint, val)
}

// SetCurrentJustifiedCheckpoint for the beacon state.
func (b *BeaconState) SetCurrentJustifiedCheckpoint(val *ethpb.Checkpoint) error {
	return b.setCheckpoint(&b.state.CurrentJustifiedCheckpoint, val)
}

// SetFinalizedCheckpoint for the beacon state.
func (b *BeaconState) SetFinalizedCheckpoint(val *ethpb.Checkpoint) error {
	return b.setCheckpoint(&b.state.FinalizedCheckpoint, val)
}

func (b *BeaconState) setCheckpoint(dst **ethpb.Checkpoint, val *ethpb.Checkpoint) error {
	if val == nil {
		return errors.New("nil checkpoint")
	}
	if len(val.Root) != 32 {
		return errors.Errorf("checkpoint root must be 32 bytes, got %d", len(val.Root))
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	*dst = val.Copy()
	return nil
}
