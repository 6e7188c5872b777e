package kv

import (
	"context"
	"testing"

	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func TestStore_CheckpointsDefaultToZero(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	j, err := db.JustifiedCheckpoint(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, &ethpb.Checkpoint{Root: make([]byte, 32)}, j)
	f, err := db.FinalizedCheckpoint(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, &ethpb.Checkpoint{Root: make([]byte, 32)}, f)
	head, err := db.HeadRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{}, head)
}

func TestStore_CheckpointSaveRetrieve(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	root := [32]byte{'A'}
	justified := &ethpb.Checkpoint{Epoch: 3, Root: root[:]}
	finalized := &ethpb.Checkpoint{Epoch: 2, Root: root[:]}
	require.NoError(t, db.SaveJustifiedCheckpoint(ctx, justified))
	require.NoError(t, db.SaveFinalizedCheckpoint(ctx, finalized))

	j, err := db.JustifiedCheckpoint(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, justified, j)
	f, err := db.FinalizedCheckpoint(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, finalized, f)
}

func TestStore_SaveNilCheckpoint(t *testing.T) {
	db := setupDB(t)
	err := db.SaveFinalizedCheckpoint(context.Background(), nil)
	assert.ErrorContains(t, "cannot encode nil message", err)
}

func TestStore_SaveHeadRootRequiresState(t *testing.T) {
	db := setupDB(t)
	err := db.SaveHeadRoot(context.Background(), [32]byte{'B'})
	require.ErrorIs(t, err, errMissingHeadState)
}
