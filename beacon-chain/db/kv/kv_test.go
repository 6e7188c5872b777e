package kv

import (
	"context"
	"testing"

	"github.com/sgryphon/cortex/testing/require"
)

// setupDB instantiates and returns a Store instance.
func setupDB(t testing.TB) *Store {
	db, err := NewKVStore(t.TempDir())
	require.NoError(t, err, "Failed to instantiate DB")
	t.Cleanup(func() {
		require.NoError(t, db.Close(), "Failed to close database")
	})
	return db
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := NewKVStore(dir)
	require.NoError(t, err)
	st := testState(t, 3)
	root, err := db.SaveState(ctx, st)
	require.NoError(t, err)
	require.NoError(t, db.SaveHeadRoot(ctx, root))
	require.NoError(t, db.Close())

	db, err = NewKVStore(dir)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	require.Equal(t, dir, db.DatabasePath())
	head, err := db.HeadRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, root, head)
	got, err := db.HeadState(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	gotRoot, err := got.HashTreeRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, root, gotRoot)
}

func TestStore_ClearDB(t *testing.T) {
	dir := t.TempDir()
	db, err := NewKVStore(dir)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, db.ClearDB())

	db, err = NewKVStore(dir)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	roots, err := db.StateRoots(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, len(roots))
}
