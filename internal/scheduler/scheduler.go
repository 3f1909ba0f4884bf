// Package scheduler enqueues a PlanRound job for every partition that still has
// files to compact, periodically and whenever the catalog changes.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/dynoinc/skyplan/internal/background"
	"github.com/dynoinc/skyplan/internal/database"
)

type Config struct {
	Enabled              bool          `default:"true"`
	Interval             time.Duration `default:"30s"`
	MaxPartitionsPerPass int           `split_words:"true" default:"1000"`
}

type jobInserter interface {
	InsertMany(ctx context.Context, params []river.InsertManyParams) ([]*rivertype.JobInsertResult, error)
}

type Scheduler struct {
	config  Config
	db      database.Querier
	jobs    jobInserter
	trigger chan struct{}
}

func New(cfg Config, db database.Querier, jobs jobInserter) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}

	return &Scheduler{
		config:  cfg,
		db:      db,
		jobs:    jobs,
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a pass as soon as possible. Requests made while one is
// pending are coalesced.
func (s *Scheduler) Trigger(context.Context) error {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Run schedules a pass on every tick and trigger until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	slog.InfoContext(ctx, "starting scheduler", "interval", s.config.Interval)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-s.trigger:
		case <-ctx.Done():
			return
		}

		if _, err := s.schedulePass(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to schedule planning", "error", err)
		}
	}
}

func (s *Scheduler) schedulePass(ctx context.Context) (int, error) {
	partitions, err := s.db.GetCompactablePartitions(ctx)
	if err != nil {
		return 0, fmt.Errorf("getting compactable partitions: %w", err)
	}

	if limit := s.config.MaxPartitionsPerPass; limit > 0 && len(partitions) > limit {
		slog.WarnContext(ctx, "too many compactable partitions, scheduling a subset", "partitions", len(partitions), "limit", limit)
		partitions = partitions[:limit]
	}
	if len(partitions) == 0 {
		return 0, nil
	}

	params := make([]river.InsertManyParams, 0, len(partitions))
	for _, id := range partitions {
		params = append(params, river.InsertManyParams{Args: background.PlanRoundArgs{PartitionID: id}})
	}

	results, err := s.jobs.InsertMany(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("inserting plan jobs: %w", err)
	}

	var inserted int
	for _, r := range results {
		if !r.UniqueSkippedAsDuplicate {
			inserted++
		}
	}

	slog.DebugContext(ctx, "scheduled planning", "partitions", len(partitions), "inserted", inserted)
	return inserted, nil
}
