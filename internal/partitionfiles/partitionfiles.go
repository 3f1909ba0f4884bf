// Package partitionfiles finds the live files of a partition, either in the
// postgres catalog or in partition snapshots kept in object storage.
package partitionfiles

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/thanos-io/objstore"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/database"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/snapshot"
)

type Config struct {
	RetryAttempts int           `split_words:"true" default:"5"`
	RetryBackoff  time.Duration `split_words:"true" default:"100ms"`
}

// Catalog reads files from the postgres catalog, retrying failed queries with
// exponential backoff.
type Catalog struct {
	db      database.Querier
	backoff wait.Backoff
}

var _ components.PartitionFilesSource = (*Catalog)(nil)

func NewCatalog(db database.Querier, cfg Config) *Catalog {
	return &Catalog{
		db: db,
		backoff: wait.Backoff{
			Duration: cfg.RetryBackoff,
			Factor:   2,
			Jitter:   0.1,
			Steps:    max(cfg.RetryAttempts, 1),
		},
	}
}

func (c *Catalog) Fetch(ctx context.Context, partition files.PartitionID) ([]files.File, error) {
	var rows []database.ParquetFile
	var lastErr error
	err := wait.ExponentialBackoffWithContext(ctx, c.backoff, func(ctx context.Context) (bool, error) {
		rows, lastErr = c.db.GetPartitionFiles(ctx, int64(partition))
		if lastErr != nil {
			slog.WarnContext(ctx, "fetching partition files failed, retrying", "partition", partition, "error", lastErr)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if lastErr != nil {
			return nil, fmt.Errorf("fetching files of partition %d: %w", partition, lastErr)
		}
		return nil, fmt.Errorf("fetching files of partition %d: %w", partition, err)
	}

	fs := make([]files.File, 0, len(rows))
	for _, row := range rows {
		fs = append(fs, fromRow(row))
	}
	return fs, nil
}

func fromRow(row database.ParquetFile) files.File {
	return files.File{
		ID:             row.ID,
		PartitionID:    files.PartitionID(row.PartitionID),
		Level:          files.Level(row.CompactionLevel),
		MinTime:        row.MinTime,
		MaxTime:        row.MaxTime,
		SizeBytes:      row.FileSizeBytes,
		MaxL0CreatedAt: row.MaxL0CreatedAt,
	}
}

// Bucket reads files from partition snapshots named
// partitions/<id>.yaml[.zst] in a bucket.
type Bucket struct {
	bkt        objstore.BucketReader
	compressed bool
}

var _ components.PartitionFilesSource = (*Bucket)(nil)

func NewBucket(bkt objstore.BucketReader, compressed bool) *Bucket {
	return &Bucket{bkt: bkt, compressed: compressed}
}

// SnapshotName is where the snapshot of a partition is stored.
func SnapshotName(partition files.PartitionID, compressed bool) string {
	name := path.Join("partitions", fmt.Sprintf("%d.yaml", partition))
	if compressed {
		name += snapshot.CompressedSuffix
	}
	return name
}

// Fetch returns no files for a partition without a snapshot.
func (b *Bucket) Fetch(ctx context.Context, partition files.PartitionID) ([]files.File, error) {
	name := SnapshotName(partition, b.compressed)

	exists, err := b.bkt.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", name, err)
	}
	if !exists {
		return nil, nil
	}

	s, err := snapshot.Load(ctx, b.bkt, name)
	if err != nil {
		return nil, err
	}
	return s.Files, nil
}
