// Package state defines the beacon state: the single mutable consensus ledger
// advanced by the state transition. Fields are private; reads go through
// getters that return copies and writes through mutators that enforce the
// registry and ring buffer bounds fixed at construction.
package state

import (
	"context"
	"sync"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sgryphon/cortex/config/params"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// BeaconState wraps the consensus state container.
type BeaconState struct {
	state *ethpb.BeaconState
	lock  sync.RWMutex
}

// InitializeFromProto creates a beacon state from a copy of the provided container.
func InitializeFromProto(st *ethpb.BeaconState) (*BeaconState, error) {
	if st == nil {
		return nil, ErrNilInnerState
	}
	return InitializeFromProtoUnsafe(deepcopy.Copy(st).(*ethpb.BeaconState))
}

// InitializeFromProtoUnsafe creates a beacon state that takes ownership of st.
// The caller must not use st afterwards.
func InitializeFromProtoUnsafe(st *ethpb.BeaconState) (*BeaconState, error) {
	if st == nil {
		return nil, ErrNilInnerState
	}
	if len(st.Balances) != len(st.Validators) {
		return nil, errors.Wrapf(ErrBalancesLength, "%d validators, %d balances", len(st.Validators), len(st.Balances))
	}
	if len(st.BlockRoots) == 0 || len(st.StateRoots) != len(st.BlockRoots) {
		return nil, errors.Wrap(ErrRingBufferLength, "block and state roots")
	}
	if len(st.RandaoMixes) == 0 {
		return nil, errors.Wrap(ErrRingBufferLength, "randao mixes")
	}
	if len(st.Slashings) == 0 {
		return nil, errors.Wrap(ErrRingBufferLength, "slashings")
	}
	if len(st.JustificationBits) != 1 {
		return nil, errors.Wrapf(ErrJustificationBitsLength, "got %d bytes", len(st.JustificationBits))
	}
	fillDefaults(st)
	return &BeaconState{state: st}, nil
}

// New allocates an empty state sized by the config: every ring buffer holds
// zero roots, the registry is empty and all checkpoints point at epoch zero.
func New(cfg *params.BeaconChainConfig) (*BeaconState, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	st := &ethpb.BeaconState{
		BlockRoots:        zeroRoots(uint64(cfg.SlotsPerHistoricalRoot)),
		StateRoots:        zeroRoots(uint64(cfg.SlotsPerHistoricalRoot)),
		RandaoMixes:       zeroRoots(uint64(cfg.EpochsPerHistoricalVector)),
		Slashings:         make([]uint64, cfg.EpochsPerSlashingsVector),
		Validators:        []*ethpb.Validator{},
		Balances:          []uint64{},
		JustificationBits: bitfield.NewBitvector4(),
		Fork: &ethpb.Fork{
			PreviousVersion: append([]byte{}, cfg.GenesisForkVersion...),
			CurrentVersion:  append([]byte{}, cfg.GenesisForkVersion...),
			Epoch:           cfg.GenesisEpoch,
		},
	}
	return InitializeFromProtoUnsafe(st)
}

// fillDefaults replaces nil fixed-size fields with their zero values so every
// getter can hand out non-nil copies.
func fillDefaults(st *ethpb.BeaconState) {
	if st.GenesisValidatorsRoot == nil {
		st.GenesisValidatorsRoot = make([]byte, 32)
	}
	if st.Fork == nil {
		st.Fork = &ethpb.Fork{PreviousVersion: make([]byte, 4), CurrentVersion: make([]byte, 4)}
	}
	if st.LatestBlockHeader == nil {
		st.LatestBlockHeader = &ethpb.BeaconBlockHeader{}
	}
	h := st.LatestBlockHeader
	for _, f := range []*[]byte{&h.ParentRoot, &h.StateRoot, &h.BodyRoot} {
		if *f == nil {
			*f = make([]byte, 32)
		}
	}
	if h.Signature == nil {
		h.Signature = make([]byte, 96)
	}
	if st.Eth1Data == nil {
		st.Eth1Data = &ethpb.Eth1Data{}
	}
	if st.Eth1Data.DepositRoot == nil {
		st.Eth1Data.DepositRoot = make([]byte, 32)
	}
	if st.Eth1Data.BlockHash == nil {
		st.Eth1Data.BlockHash = make([]byte, 32)
	}
	for _, cp := range []**ethpb.Checkpoint{&st.PreviousJustifiedCheckpoint, &st.CurrentJustifiedCheckpoint, &st.FinalizedCheckpoint} {
		if *cp == nil {
			*cp = &ethpb.Checkpoint{}
		}
		if (*cp).Root == nil {
			(*cp).Root = make([]byte, 32)
		}
	}
	if st.HistoricalRoots == nil {
		st.HistoricalRoots = [][]byte{}
	}
	if st.Eth1DataVotes == nil {
		st.Eth1DataVotes = []*ethpb.Eth1Data{}
	}
	if st.PreviousEpochAttestations == nil {
		st.PreviousEpochAttestations = []*ethpb.PendingAttestation{}
	}
	if st.CurrentEpochAttestations == nil {
		st.CurrentEpochAttestations = []*ethpb.PendingAttestation{}
	}
}

func zeroRoots(n uint64) [][]byte {
	roots := make([][]byte, n)
	for i := range roots {
		roots[i] = make([]byte, 32)
	}
	return roots
}

// Copy returns a deep copy of the beacon state.
func (b *BeaconState) Copy() *BeaconState {
	if b == nil || b.state == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return &BeaconState{state: deepcopy.Copy(b.state).(*ethpb.BeaconState)}
}

// HashTreeRoot computes the canonical root of the state.
func (b *BeaconState) HashTreeRoot(ctx context.Context) ([32]byte, error) {
	_, span := trace.StartSpan(ctx, "beaconState.HashTreeRoot")
	defer span.End()

	b.lock.RLock()
	defer b.lock.RUnlock()
	root, err := b.state.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute state root")
	}
	return root, nil
}

// ToProto returns a copy of the inner state container.
func (b *BeaconState) ToProto() *ethpb.BeaconState {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return deepcopy.Copy(b.state).(*ethpb.BeaconState)
}
