// Package components holds the collaborator interfaces the round planner
// depends on and the bundle they are passed around in.
package components

import (
	"context"

	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

// PartitionFilesSource finds the files of a partition.
type PartitionFilesSource interface {
	// Fetch returns all files of the partition that are not marked for
	// deletion. It performs no other filtering and handles its own retries.
	Fetch(ctx context.Context, partition files.PartitionID) ([]files.File, error)
}

// RoundSplit partitions files into those acted on this round and those deferred.
type RoundSplit interface {
	Split(ctx context.Context, fs []files.File, info round.Info) (now, later []files.File, err error)
}

// Divide groups the files of this round into independently compactable
// branches. It may defer additional files.
type Divide interface {
	Divide(ctx context.Context, fs []files.File, info round.Info) (branches [][]files.File, later []files.File, err error)
}

// Commit applies the output of a compaction to the catalog.
type Commit interface {
	Commit(
		ctx context.Context,
		partition files.PartitionID,
		delete, upgrade, create []files.File,
		target files.Level,
	) ([]int64, error)
}

// Components is built once at startup and shared read-only.
type Components struct {
	PartitionFiles PartitionFilesSource
	RoundSplit     RoundSplit
	Divide         Divide
	Commit         Commit
}
