package roundinfo

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

const meterName = "github.com/dynoinc/skyplan/internal/roundinfo"

// Metrics records the kind and shape of every round the wrapped source plans.
type Metrics struct {
	inner Source

	rounds   metric.Int64Counter
	branches metric.Int64Histogram
	deferred metric.Int64Histogram
}

var _ Source = (*Metrics)(nil)

// NewMetrics wraps inner using the global meter provider.
func NewMetrics(inner Source) (*Metrics, error) {
	return NewMetricsWithMeter(inner, otel.Meter(meterName))
}

func NewMetricsWithMeter(inner Source, meter metric.Meter) (*Metrics, error) {
	rounds, err := meter.Int64Counter("skyplan.rounds",
		metric.WithDescription("Planned compaction rounds by kind"))
	if err != nil {
		return nil, fmt.Errorf("creating rounds counter: %w", err)
	}

	branches, err := meter.Int64Histogram("skyplan.round.branches",
		metric.WithDescription("Branches per planned round"))
	if err != nil {
		return nil, fmt.Errorf("creating branches histogram: %w", err)
	}

	deferred, err := meter.Int64Histogram("skyplan.round.files_later",
		metric.WithDescription("Files deferred to a later round"))
	if err != nil {
		return nil, fmt.Errorf("creating deferred histogram: %w", err)
	}

	return &Metrics{
		inner:    inner,
		rounds:   rounds,
		branches: branches,
		deferred: deferred,
	}, nil
}

func (m *Metrics) String() string {
	return fmt.Sprintf("Metrics(%s)", m.inner)
}

func (m *Metrics) Calculate(
	ctx context.Context,
	c *components.Components,
	partition files.Partition,
	fs []files.File,
) (round.Info, [][]files.File, []files.File, error) {
	info, branches, later, err := m.inner.Calculate(ctx, c, partition, fs)
	if err != nil {
		return info, branches, later, err
	}

	kind := metric.WithAttributes(attribute.String("kind", string(info.Kind)))
	m.rounds.Add(ctx, 1, kind)
	m.branches.Record(ctx, int64(len(branches)), kind)
	m.deferred.Record(ctx, int64(len(later)), kind)

	return info, branches, later, nil
}
