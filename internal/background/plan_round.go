package background

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithammer/shortuuid/v4"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/dynoinc/skyplan/internal/database"
	"github.com/dynoinc/skyplan/internal/files"
)

type PlanRoundArgs struct {
	PartitionID int64 `json:"partition_id"`
}

func (PlanRoundArgs) Kind() string {
	return "PlanRound"
}

// InsertOpts keeps at most one unfinished job per partition.
func (PlanRoundArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateRunning,
				rivertype.JobStateScheduled,
			},
		},
	}
}

type PlanRoundWorker struct {
	river.WorkerDefaults[PlanRoundArgs]

	db      *pgxpool.Pool
	planner *Planner
}

func NewPlanRoundWorker(db *pgxpool.Pool, planner *Planner) *PlanRoundWorker {
	return &PlanRoundWorker{
		db:      db,
		planner: planner,
	}
}

func (w *PlanRoundWorker) Work(ctx context.Context, job *river.Job[PlanRoundArgs]) error {
	partition := files.PartitionID(job.Args.PartitionID)

	plan, ok, err := w.planner.Plan(ctx, partition, true)
	if err != nil {
		return fmt.Errorf("planning partition %d: %w", partition, err)
	}
	if !ok {
		slog.DebugContext(ctx, "nothing to plan", "partition", partition)
		return nil
	}

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	roundID := shortuuid.New()
	if err := database.New(tx).AddCompactionRound(ctx, database.AddCompactionRoundParams{
		ID:          roundID,
		PartitionID: job.Args.PartitionID,
		Fingerprint: int64(plan.Fingerprint),
		Attrs:       plan.Attrs(),
	}); err != nil {
		return fmt.Errorf("adding compaction round: %w", err)
	}

	if _, err := river.JobCompleteTx[*riverpgxv5.Driver](ctx, tx, job); err != nil {
		return fmt.Errorf("completing job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing round: %w", err)
	}

	w.planner.Remember(plan)
	slog.InfoContext(ctx, "planned round",
		"partition", partition,
		"round", roundID,
		"roundInfo", plan.Info.String(),
		"branches", len(plan.Branches),
	)
	return nil
}
