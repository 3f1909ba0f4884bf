package background

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/database/dto"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
	"github.com/dynoinc/skyplan/internal/roundinfo"
)

type Config struct {
	NumWorkers int           `split_words:"true" default:"4"`
	RecentSize int           `split_words:"true" default:"10000"`
	RecentTTL  time.Duration `split_words:"true" default:"10m"`
}

// Plan is the round planned for one snapshot of a partition.
type Plan struct {
	Partition   files.PartitionID `json:"partition_id"`
	Fingerprint uint64            `json:"fingerprint"`
	Source      string            `json:"source"`
	Info        round.Info        `json:"round_info"`
	Branches    [][]files.File    `json:"branches"`
	Later       []files.File      `json:"later"`
}

// Attrs is the stored form of the plan, files reduced to IDs.
func (p Plan) Attrs() dto.RoundAttrs {
	attrs := dto.RoundAttrs{
		Source:   p.Source,
		Info:     p.Info,
		Branches: make([][]int64, 0, len(p.Branches)),
		Later:    files.IDs(p.Later),
	}
	for _, b := range p.Branches {
		attrs.Branches = append(attrs.Branches, files.IDs(b))
	}
	return attrs
}

// Planner plans rounds for partitions and remembers the snapshots it recently
// planned, so an unchanged partition isn't planned twice within the TTL.
type Planner struct {
	source     roundinfo.Source
	components *components.Components
	recent     *expirable.LRU[files.PartitionID, uint64]
}

func NewPlanner(source roundinfo.Source, c *components.Components, cfg Config) *Planner {
	return &Planner{
		source:     source,
		components: c,
		recent:     expirable.NewLRU[files.PartitionID, uint64](max(cfg.RecentSize, 1), nil, cfg.RecentTTL),
	}
}

// Plan plans the next round of a partition. ok is false if the partition has no
// files, or if skipUnchanged is set and the files are unchanged since the
// last remembered plan.
func (p *Planner) Plan(ctx context.Context, partition files.PartitionID, skipUnchanged bool) (plan Plan, ok bool, err error) {
	fs, err := p.components.PartitionFiles.Fetch(ctx, partition)
	if err != nil {
		return Plan{}, false, fmt.Errorf("fetching files: %w", err)
	}
	if len(fs) == 0 {
		return Plan{}, false, nil
	}

	fingerprint := files.Fingerprint(fs)
	if skipUnchanged {
		if seen, found := p.recent.Get(partition); found && seen == fingerprint {
			return Plan{}, false, nil
		}
	}

	info, branches, later, err := p.source.Calculate(ctx, p.components, files.Partition{ID: partition}, fs)
	if err != nil {
		return Plan{}, false, fmt.Errorf("calculating round: %w", err)
	}

	return Plan{
		Partition:   partition,
		Fingerprint: fingerprint,
		Source:      p.source.String(),
		Info:        info,
		Branches:    branches,
		Later:       later,
	}, true, nil
}

// Remember marks the plan's snapshot as planned.
func (p *Planner) Remember(plan Plan) {
	p.recent.Add(plan.Partition, plan.Fingerprint)
}
