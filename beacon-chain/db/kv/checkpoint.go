package kv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/state"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

var errMissingHeadState = errors.New("no state stored under head root")

// HeadRoot returns the state root last marked as head, or the zero root when
// none was saved.
func (s *Store) HeadRoot(ctx context.Context) ([32]byte, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.HeadRoot")
	defer span.End()

	var root [32]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		copy(root[:], tx.Bucket(chainMetadataBucket).Get(headRootKey))
		return nil
	})
	return root, err
}

// SaveHeadRoot marks a stored state as head.
func (s *Store) SaveHeadRoot(ctx context.Context, root [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveHeadRoot")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(stateBucket).Get(root[:]) == nil {
			return errMissingHeadState
		}
		return tx.Bucket(chainMetadataBucket).Put(headRootKey, root[:])
	})
}

// HeadState returns the state marked as head, or nil when none was saved.
func (s *Store) HeadState(ctx context.Context) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.HeadState")
	defer span.End()

	root, err := s.HeadRoot(ctx)
	if err != nil {
		return nil, err
	}
	return s.State(ctx, root)
}

// JustifiedCheckpoint returns the latest justified checkpoint saved by the
// caller. The zero checkpoint is returned when none was saved.
func (s *Store) JustifiedCheckpoint(ctx context.Context) (*ethpb.Checkpoint, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.JustifiedCheckpoint")
	defer span.End()
	return s.checkpointOrZero(ctx, justifiedCheckpointKey)
}

// FinalizedCheckpoint returns the latest finalized checkpoint saved by the
// caller. The zero checkpoint is returned when none was saved.
func (s *Store) FinalizedCheckpoint(ctx context.Context) (*ethpb.Checkpoint, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.FinalizedCheckpoint")
	defer span.End()
	return s.checkpointOrZero(ctx, finalizedCheckpointKey)
}

// SaveJustifiedCheckpoint saves the justified checkpoint.
func (s *Store) SaveJustifiedCheckpoint(ctx context.Context, checkpoint *ethpb.Checkpoint) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.SaveJustifiedCheckpoint")
	defer span.End()
	return s.saveCheckpoint(ctx, justifiedCheckpointKey, checkpoint)
}

// SaveFinalizedCheckpoint saves the finalized checkpoint.
func (s *Store) SaveFinalizedCheckpoint(ctx context.Context, checkpoint *ethpb.Checkpoint) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.SaveFinalizedCheckpoint")
	defer span.End()
	return s.saveCheckpoint(ctx, finalizedCheckpointKey, checkpoint)
}

func (s *Store) saveCheckpoint(ctx context.Context, key []byte, checkpoint *ethpb.Checkpoint) error {
	enc, err := encode(ctx, checkpoint)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(checkpointBucket).Put(key, enc)
	})
}

func (s *Store) checkpoint(ctx context.Context, key []byte) (*ethpb.Checkpoint, error) {
	var enc []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(checkpointBucket).Get(key); v != nil {
			enc = append([]byte{}, v...)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, nil
	}
	checkpoint := &ethpb.Checkpoint{}
	if err := decode(ctx, enc, checkpoint); err != nil {
		return nil, err
	}
	return checkpoint, nil
}

func (s *Store) checkpointOrZero(ctx context.Context, key []byte) (*ethpb.Checkpoint, error) {
	checkpoint, err := s.checkpoint(ctx, key)
	if err != nil {
		return nil, err
	}
	if checkpoint == nil {
		return &ethpb.Checkpoint{Root: make([]byte, 32)}, nil
	}
	return checkpoint, nil
}
