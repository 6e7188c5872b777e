package kv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/state"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

var (
	// ErrNilState is returned when saving a nil state.
	ErrNilState = errors.New("cannot save nil state")
	// ErrDeleteHeadState is returned when deleting the state marked as head.
	ErrDeleteHeadState = errors.New("cannot delete head state")
)

// State returns the saved state using the state root as key. A nil state and
// nil error are returned when no state is stored under the root.
func (s *Store) State(ctx context.Context, stateRoot [32]byte) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.State")
	defer span.End()

	if v, ok := s.stateCache.Get(stateRoot); ok {
		return v.(*state.BeaconState).Copy(), nil
	}
	var enc []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(stateBucket)
		if v := bkt.Get(stateRoot[:]); v != nil {
			enc = append([]byte{}, v...)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, nil
	}
	pb := &ethpb.BeaconState{}
	if err := decode(ctx, enc, pb); err != nil {
		return nil, errors.Wrapf(err, "could not decode state %#x", stateRoot)
	}
	st, err := state.InitializeFromProtoUnsafe(pb)
	if err != nil {
		return nil, err
	}
	s.stateCache.Add(stateRoot, st.Copy())
	return st, nil
}

// HasState checks if a state is stored under the state root.
func (s *Store) HasState(ctx context.Context, stateRoot [32]byte) bool {
	_, span := trace.StartSpan(ctx, "BeaconDB.HasState")
	defer span.End()

	if s.stateCache.Contains(stateRoot) {
		return true
	}
	exists := false
	if err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(stateBucket).Get(stateRoot[:]) != nil
		return nil
	}); err != nil {
		return false
	}
	return exists
}

// SaveState stores a snapshot of the state under its hash tree root and
// returns that root.
func (s *Store) SaveState(ctx context.Context, st *state.BeaconState) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.SaveState")
	defer span.End()

	if st == nil {
		return [32]byte{}, ErrNilState
	}
	root, err := st.HashTreeRoot(ctx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute state root")
	}
	enc, err := encode(ctx, st.ToProto())
	if err != nil {
		return [32]byte{}, err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put(root[:], enc)
	}); err != nil {
		return [32]byte{}, err
	}
	s.stateCache.Add(root, st.Copy())
	log.WithField("slot", st.Slot()).Debugf("Saved state %#x", root[:4])
	return root, nil
}

// DeleteState removes the state stored under the root. The head state cannot
// be deleted.
func (s *Store) DeleteState(ctx context.Context, stateRoot [32]byte) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.DeleteState")
	defer span.End()

	head, err := s.HeadRoot(ctx)
	if err != nil {
		return err
	}
	if head == stateRoot {
		return ErrDeleteHeadState
	}
	s.stateCache.Remove(stateRoot)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Delete(stateRoot[:])
	})
}

// StateRoots returns every stored state root.
func (s *Store) StateRoots(ctx context.Context) ([][32]byte, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.StateRoots")
	defer span.End()

	var roots [][32]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).ForEach(func(k, _ []byte) error {
			var r [32]byte
			copy(r[:], k)
			roots = append(roots, r)
			return nil
		})
	})
	return roots, err
}
