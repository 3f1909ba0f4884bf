package roundinfo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

// Logging logs the outcome of every successful calculation of the wrapped source.
type Logging struct {
	inner Source
}

var _ Source = (*Logging)(nil)

func NewLogging(inner Source) *Logging {
	return &Logging{inner: inner}
}

func (l *Logging) String() string {
	return fmt.Sprintf("Logging(%s)", l.inner)
}

func (l *Logging) Calculate(
	ctx context.Context,
	c *components.Components,
	partition files.Partition,
	fs []files.File,
) (round.Info, [][]files.File, []files.File, error) {
	info, branches, later, err := l.inner.Calculate(ctx, c, partition, fs)
	if err == nil {
		slog.DebugContext(ctx, "running round",
			"source", l.inner.String(),
			"partition", partition.ID,
			"roundInfo", info.String(),
			"branches", len(branches),
			"filesLater", len(later),
		)
	}

	return info, branches, later, err
}
