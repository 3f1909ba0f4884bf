// Package simulate runs planned compaction rounds against a catalog without
// touching any data, to check how a partition evolves under the planner.
package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
	"github.com/dynoinc/skyplan/internal/roundinfo"
)

// Round is what happened in one simulated round.
type Round struct {
	Index        int        `json:"index"`
	Info         round.Info `json:"round_info"`
	Branches     int        `json:"branches"`
	Commits      int        `json:"commits"`
	FilesLater   int        `json:"files_later"`
	FilesRead    int        `json:"files_read"`
	FilesWritten int        `json:"files_written"`
	BytesRead    int64      `json:"bytes_read"`
	BytesWritten int64      `json:"bytes_written"`
}

type Result struct {
	Rounds    []Round      `json:"rounds"`
	Converged bool         `json:"converged"`
	Files     []files.File `json:"files"`
}

// Run plans and executes rounds until one has nothing to do or maxRounds is
// reached. The partition's files are read and written through c.
func Run(
	ctx context.Context,
	source roundinfo.Source,
	c *components.Components,
	partition files.Partition,
	maxRounds int,
) (Result, error) {
	var res Result
	for i := range maxRounds {
		fs, err := c.PartitionFiles.Fetch(ctx, partition.ID)
		if err != nil {
			return res, fmt.Errorf("fetching files: %w", err)
		}
		res.Files = fs
		if len(fs) == 0 {
			res.Converged = true
			return res, nil
		}

		info, branches, later, err := source.Calculate(ctx, c, partition, fs)
		if err != nil {
			return res, fmt.Errorf("planning round %d: %w", i, err)
		}

		r := Round{Index: i, Info: info, Branches: len(branches), FilesLater: len(later)}
		for _, branch := range branches {
			deleteFiles, upgrade, create := Execute(info, branch)
			if len(deleteFiles) == 0 && len(upgrade) == 0 && len(create) == 0 {
				continue
			}

			if _, err := c.Commit.Commit(ctx, partition.ID, deleteFiles, upgrade, create, info.TargetLevel()); err != nil {
				return res, fmt.Errorf("committing round %d: %w", i, err)
			}

			r.Commits++
			r.FilesRead += len(deleteFiles)
			r.FilesWritten += len(create)
			r.BytesRead += files.TotalSize(deleteFiles)
			r.BytesWritten += files.TotalSize(create)
		}

		if r.Commits == 0 {
			res.Converged = true
			return res, nil
		}

		slog.DebugContext(ctx, "simulated round",
			"partition", partition.ID,
			"round", i,
			"roundInfo", info.String(),
			"branches", r.Branches,
			"filesWritten", r.FilesWritten,
		)
		res.Rounds = append(res.Rounds, r)
	}

	fs, err := c.PartitionFiles.Fetch(ctx, partition.ID)
	if err != nil {
		return res, fmt.Errorf("fetching files: %w", err)
	}
	res.Files = fs
	return res, nil
}

// Execute works out the commit a branch would produce. Vertical splits cut
// files at the split times with bytes spread evenly over time. Any other round
// merges the branch into one file at the target level, or upgrades a lone file.
func Execute(info round.Info, branch []files.File) (deleteFiles, upgrade, create []files.File) {
	if len(branch) == 0 {
		return nil, nil, nil
	}

	if info.IsVerticalSplit() {
		for _, f := range branch {
			pieces := splitFile(f, info.SplitTimes)
			if len(pieces) <= 1 {
				continue
			}
			deleteFiles = append(deleteFiles, f)
			create = append(create, pieces...)
		}
		return deleteFiles, nil, create
	}

	target := info.TargetLevel()
	if len(branch) == 1 {
		if branch[0].Level < target {
			return nil, slices.Clone(branch), nil
		}
		return nil, nil, nil
	}

	minTime, maxTime, _ := files.TimeRange(branch)
	merged := files.File{
		PartitionID: branch[0].PartitionID,
		Level:       target,
		MinTime:     minTime,
		MaxTime:     maxTime,
		SizeBytes:   files.TotalSize(branch),
	}
	for _, f := range branch {
		merged.MaxL0CreatedAt = max(merged.MaxL0CreatedAt, f.MaxL0CreatedAt)
	}
	return slices.Clone(branch), nil, []files.File{merged}
}

// splitFile cuts f so that every split time inside it ends a piece.
func splitFile(f files.File, splitTimes []int64) []files.File {
	width := f.MaxTime - f.MinTime + 1

	var pieces []files.File
	var used int64
	lo := f.MinTime
	for _, t := range splitTimes {
		if t < lo || t >= f.MaxTime {
			continue
		}

		p := f
		p.ID = 0
		p.MinTime, p.MaxTime = lo, t
		p.SizeBytes = f.SizeBytes * (t - lo + 1) / width
		used += p.SizeBytes
		pieces = append(pieces, p)
		lo = t + 1
	}

	last := f
	last.ID = 0
	last.MinTime = lo
	last.SizeBytes = f.SizeBytes - used
	return append(pieces, last)
}
