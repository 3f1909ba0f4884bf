package background

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/database/dto"
	"github.com/dynoinc/skyplan/internal/divide"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/memcatalog"
	"github.com/dynoinc/skyplan/internal/mocks"
	"github.com/dynoinc/skyplan/internal/round"
	"github.com/dynoinc/skyplan/internal/roundinfo"
	"github.com/dynoinc/skyplan/internal/roundsplit"
)

var testConfig = Config{NumWorkers: 1, RecentSize: 10, RecentTTL: time.Hour}

func newTestPlanner(fs ...files.File) (*Planner, *memcatalog.Catalog) {
	catalog := memcatalog.New()
	catalog.Add(fs...)

	c := &components.Components{
		PartitionFiles: catalog,
		RoundSplit:     roundsplit.New(),
		Divide:         divide.New(),
		Commit:         catalog,
	}
	source := roundinfo.NewLevelBased(roundinfo.Config{MaxNumFilesPerPlan: 20, MaxTotalFileSizePerPlan: 100})
	return NewPlanner(source, c, testConfig), catalog
}

func TestPlannerPlan(t *testing.T) {
	ctx := context.Background()
	f1 := files.File{ID: 1, PartitionID: 3, Level: files.Initial, MinTime: 0, MaxTime: 10, SizeBytes: 10, MaxL0CreatedAt: 1}
	f2 := files.File{ID: 2, PartitionID: 3, Level: files.Final, MinTime: 100, MaxTime: 200, SizeBytes: 10, MaxL0CreatedAt: 1}
	p, _ := newTestPlanner(f1, f2)

	plan, ok, err := p.Plan(ctx, 3, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, round.TargetLevel(files.FileNonOverlapped, 100), plan.Info)
	assert.Equal(t, [][]files.File{{f1}}, plan.Branches)
	assert.Equal(t, []files.File{f2}, plan.Later)
	assert.Equal(t, "LevelBased(20, 100)", plan.Source)
	assert.Equal(t, files.Fingerprint([]files.File{f1, f2}), plan.Fingerprint)

	assert.Equal(t, dto.RoundAttrs{
		Source:   "LevelBased(20, 100)",
		Info:     plan.Info,
		Branches: [][]int64{{1}},
		Later:    []int64{2},
	}, plan.Attrs())

	// Not remembered yet, so planned again
	_, ok, err = p.Plan(ctx, 3, true)
	require.NoError(t, err)
	assert.True(t, ok)

	p.Remember(plan)
	_, ok, err = p.Plan(ctx, 3, true)
	require.NoError(t, err)
	assert.False(t, ok)

	// Forced planning ignores what was remembered
	_, ok, err = p.Plan(ctx, 3, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlannerReplansChangedPartition(t *testing.T) {
	ctx := context.Background()
	f1 := files.File{ID: 1, PartitionID: 3, Level: files.Initial, MinTime: 0, MaxTime: 10, SizeBytes: 10, MaxL0CreatedAt: 1}
	p, catalog := newTestPlanner(f1)

	plan, ok, err := p.Plan(ctx, 3, true)
	require.NoError(t, err)
	require.True(t, ok)
	p.Remember(plan)

	catalog.Add(files.File{ID: 2, PartitionID: 3, Level: files.Initial, MinTime: 5, MaxTime: 15, SizeBytes: 10, MaxL0CreatedAt: 2})

	_, ok, err = p.Plan(ctx, 3, true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlannerEmptyPartition(t *testing.T) {
	p, _ := newTestPlanner()

	_, ok, err := p.Plan(context.Background(), 3, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlannerFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockPartitionFilesSource(ctrl)
	errBoom := errors.New("boom")
	source.EXPECT().Fetch(gomock.Any(), files.PartitionID(3)).Return(nil, errBoom)

	p := NewPlanner(roundinfo.NewLevelBased(roundinfo.Config{}), &components.Components{PartitionFiles: source}, testConfig)
	_, _, err := p.Plan(context.Background(), 3, false)
	require.ErrorIs(t, err, errBoom)
}

func TestPlanRoundArgs(t *testing.T) {
	args := PlanRoundArgs{PartitionID: 1}
	assert.Equal(t, "PlanRound", args.Kind())
	assert.True(t, args.InsertOpts().UniqueOpts.ByArgs)
}
