package memcatalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/skyplan/internal/files"
)

func TestCommit(t *testing.T) {
	ctx := context.Background()
	c := New()

	f1 := files.File{ID: 1, PartitionID: 7, Level: files.Initial, MinTime: 0, MaxTime: 10, SizeBytes: 5}
	f2 := files.File{ID: 2, PartitionID: 7, Level: files.Initial, MinTime: 5, MaxTime: 20, SizeBytes: 5}
	f3 := files.File{ID: 3, PartitionID: 7, Level: files.Initial, MinTime: 30, MaxTime: 40, SizeBytes: 5}
	other := files.File{ID: 4, PartitionID: 8, Level: files.Final}
	c.Add(f3, f1, other, f2)

	fs, err := c.Fetch(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []files.File{f1, f2, f3}, fs)

	merged := files.File{Level: files.FileNonOverlapped, MinTime: 0, MaxTime: 20, SizeBytes: 10}
	ids, err := c.Commit(ctx, 7, []files.File{f1, f2}, []files.File{f3}, []files.File{merged, merged}, files.FileNonOverlapped)
	require.NoError(t, err)
	assert.Equal(t, []int64{1000, 1001}, ids)

	fs, err = c.Fetch(ctx, 7)
	require.NoError(t, err)
	require.Len(t, fs, 3)
	assert.Equal(t, int64(3), fs[0].ID)
	assert.Equal(t, files.FileNonOverlapped, fs[0].Level)
	assert.Equal(t, []int64{3, 1000, 1001}, files.IDs(fs))
	assert.Equal(t, files.PartitionID(7), fs[1].PartitionID)

	history := c.History()
	require.Len(t, history, 1)
	assert.Equal(t, []files.File{f1, f2}, history[0].Delete)
	assert.Len(t, history[0].Created, 2)

	fs, err = c.Fetch(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, []files.File{other}, fs)
}

func TestCommitUnknownFile(t *testing.T) {
	c := New()
	c.Add(files.File{ID: 1, PartitionID: 1})

	_, err := c.Commit(context.Background(), 1, []files.File{{ID: 1}, {ID: 2}}, nil, nil, files.Initial)
	require.Error(t, err)

	// nothing was applied
	fs, err := c.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, fs, 1)
	assert.Empty(t, c.History())
}

func TestFetchUnknownPartition(t *testing.T) {
	fs, err := New().Fetch(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, fs)
}

func TestCreatedIDsAboveAdded(t *testing.T) {
	c := New()
	c.Add(files.File{ID: 5000, PartitionID: 1, Level: files.Initial})

	ids, err := c.Commit(context.Background(), 1, nil, nil, []files.File{{Level: files.Initial}}, files.Initial)
	require.NoError(t, err)
	assert.Equal(t, []int64{5001}, ids)
}
