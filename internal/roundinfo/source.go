// Package roundinfo decides what a compaction round of a partition does.
package roundinfo

import (
	"context"
	"fmt"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

const defaultL1EscalationFactor = 3

// Config holds the per plan limits every heuristic works against.
type Config struct {
	MaxNumFilesPerPlan      int   `split_words:"true" default:"20"`
	MaxTotalFileSizePerPlan int64 `split_words:"true" default:"314572800"` // 300MB

	// L1EscalationFactor is how many plans worth of L1 bytes make an L0
	// backlog compact L1->L2 first. Tuned empirically.
	L1EscalationFactor int64 `split_words:"true" default:"3"`
}

// Source calculates the round info, branches and deferred files of a round.
type Source interface {
	fmt.Stringer

	Calculate(
		ctx context.Context,
		c *components.Components,
		partition files.Partition,
		fs []files.File,
	) (round.Info, [][]files.File, []files.File, error)
}

// LevelBased computes the type of round from the levels of the input files.
type LevelBased struct {
	config Config
}

var _ Source = (*LevelBased)(nil)

func NewLevelBased(cfg Config) *LevelBased {
	if cfg.MaxNumFilesPerPlan <= 0 {
		cfg.MaxNumFilesPerPlan = 1
	}
	if cfg.MaxTotalFileSizePerPlan <= 0 {
		cfg.MaxTotalFileSizePerPlan = 1
	}
	if cfg.L1EscalationFactor <= 0 {
		cfg.L1EscalationFactor = defaultL1EscalationFactor
	}

	return &LevelBased{config: cfg}
}

func (l *LevelBased) String() string {
	return fmt.Sprintf("LevelBased(%d, %d)", l.config.MaxNumFilesPerPlan, l.config.MaxTotalFileSizePerPlan)
}

// Decide picks the round info for a non-empty file set. It panics on an empty
// one: an empty partition must never reach planning.
func (l *LevelBased) Decide(fs []files.File) round.Info {
	maxFiles := l.config.MaxNumFilesPerPlan
	maxBytes := l.config.MaxTotalFileSizePerPlan

	// If this comes back as L1, L0s are ignored this round and L1->L2 runs early.
	start := startLevel(fs, maxFiles, maxBytes, l.config.L1EscalationFactor)
	if start != files.Initial {
		return round.TargetLevel(start.Next(), maxBytes)
	}

	if splitTimes := l.VerticalSplitTimes(fs, maxBytes); len(splitTimes) > 0 {
		return round.VerticalSplit(splitTimes)
	}

	// Grouping is budgeted by the file limit, so only chains of tiny files merge.
	switch {
	case l.ManyUngroupableFiles(fs, start, int64(maxFiles)):
		return round.SimulatedLeadingEdge(maxFiles, maxBytes)
	case l.TooManySmallFilesToCompact(fs, start):
		return round.ManySmallFiles(start, maxFiles, maxBytes)
	default:
		return round.TargetLevel(files.FileNonOverlapped, maxBytes)
	}
}

// Calculate makes the decision for the round and hands the files to the round
// split and divide components. Their errors are returned as is, wrapped.
func (l *LevelBased) Calculate(
	ctx context.Context,
	c *components.Components,
	_ files.Partition,
	fs []files.File,
) (round.Info, [][]files.File, []files.File, error) {
	info := l.Decide(fs)

	now, later, err := c.RoundSplit.Split(ctx, fs, info)
	if err != nil {
		return round.Info{}, nil, nil, fmt.Errorf("splitting round files: %w", err)
	}

	branches, moreLater, err := c.Divide.Divide(ctx, now, info)
	if err != nil {
		return round.Info{}, nil, nil, fmt.Errorf("dividing round files: %w", err)
	}

	return info, branches, append(later, moreLater...), nil
}
