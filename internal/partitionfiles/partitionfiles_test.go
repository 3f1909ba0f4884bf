package partitionfiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanos-io/objstore"
	"go.uber.org/mock/gomock"

	"github.com/dynoinc/skyplan/internal/database"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/mocks"
	"github.com/dynoinc/skyplan/internal/snapshot"
)

var testConfig = Config{RetryAttempts: 3, RetryBackoff: time.Millisecond}

func TestCatalogFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockQuerier(ctrl)

	db.EXPECT().GetPartitionFiles(gomock.Any(), int64(7)).Return([]database.ParquetFile{
		{ID: 1, PartitionID: 7, CompactionLevel: 0, MinTime: 10, MaxTime: 20, FileSizeBytes: 100, MaxL0CreatedAt: 3},
		{ID: 2, PartitionID: 7, CompactionLevel: 2, MinTime: 0, MaxTime: 50, FileSizeBytes: 900, MaxL0CreatedAt: 1},
	}, nil)

	fs, err := NewCatalog(db, testConfig).Fetch(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []files.File{
		{ID: 1, PartitionID: 7, Level: files.Initial, MinTime: 10, MaxTime: 20, SizeBytes: 100, MaxL0CreatedAt: 3},
		{ID: 2, PartitionID: 7, Level: files.Final, MinTime: 0, MaxTime: 50, SizeBytes: 900, MaxL0CreatedAt: 1},
	}, fs)
}

func TestCatalogFetchRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockQuerier(ctrl)
	errConn := errors.New("connection reset")

	gomock.InOrder(
		db.EXPECT().GetPartitionFiles(gomock.Any(), int64(7)).Return(nil, errConn),
		db.EXPECT().GetPartitionFiles(gomock.Any(), int64(7)).Return([]database.ParquetFile{{ID: 1, PartitionID: 7}}, nil),
	)

	fs, err := NewCatalog(db, testConfig).Fetch(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, fs, 1)
}

func TestCatalogFetchGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockQuerier(ctrl)
	errConn := errors.New("connection reset")

	db.EXPECT().GetPartitionFiles(gomock.Any(), int64(7)).Return(nil, errConn).Times(3)

	_, err := NewCatalog(db, testConfig).Fetch(context.Background(), 7)
	require.ErrorIs(t, err, errConn)
}

func TestBucketFetch(t *testing.T) {
	ctx := context.Background()
	bkt := objstore.NewInMemBucket()

	want := []files.File{{ID: 1, PartitionID: 4, Level: files.FileNonOverlapped, MinTime: 1, MaxTime: 2, SizeBytes: 3, MaxL0CreatedAt: 4}}
	require.NoError(t, snapshot.Save(ctx, bkt, SnapshotName(4, true), snapshot.Snapshot{Partition: 4, Files: want}))

	src := NewBucket(bkt, true)
	fs, err := src.Fetch(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, want, fs)

	fs, err = src.Fetch(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, fs)
}

func TestSnapshotName(t *testing.T) {
	assert.Equal(t, "partitions/12.yaml", SnapshotName(12, false))
	assert.Equal(t, "partitions/12.yaml.zst", SnapshotName(12, true))
}
