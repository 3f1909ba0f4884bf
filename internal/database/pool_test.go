package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/dynoinc/skyplan/internal/database/dto"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

func setupDB(t *testing.T) *Queries {
	if testing.Short() {
		t.Skip("needs a container runtime")
	}
	ctx := t.Context()

	// https://github.com/testcontainers/testcontainers-go/issues/2264
	t.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	postgresContainer, err := postgres.Run(ctx, PostgresImage, tc.CustomizeRequestOption(func(req *tc.GenericContainerRequest) error {
		req.ProviderType = tc.ProviderPodman
		return nil
	}), postgres.BasicWaitStrategies())
	require.NoError(t, err)
	t.Cleanup(func() { _ = postgresContainer.Terminate(ctx) })

	pgURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := Pool(ctx, Config{URL: pgURL})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return New(pool)
}

func TestPartitionFiles(t *testing.T) {
	ctx := t.Context()
	q := setupDB(t)

	partitionID, err := q.AddPartition(ctx, "cpu/2025-01-01")
	require.NoError(t, err)

	var ids []int64
	for i, level := range []files.Level{files.Initial, files.Initial, files.Final} {
		id, err := q.AddParquetFile(ctx, AddParquetFileParams{
			PartitionID:     partitionID,
			CompactionLevel: int16(level),
			MinTime:         int64(i) * 100,
			MaxTime:         int64(i)*100 + 50,
			FileSizeBytes:   1024,
			MaxL0CreatedAt:  int64(i),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	fs, err := q.GetPartitionFiles(ctx, partitionID)
	require.NoError(t, err)
	require.Len(t, fs, 3)

	compactable, err := q.GetCompactablePartitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{partitionID}, compactable)

	// Deleted files are no longer live
	marked, err := q.MarkParquetFilesToDelete(ctx, ids[:2])
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	fs, err = q.GetPartitionFiles(ctx, partitionID)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, ids[2], fs[0].ID)

	// Only L2 files are left
	compactable, err = q.GetCompactablePartitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, compactable)
}

func TestCompactionRounds(t *testing.T) {
	ctx := t.Context()
	q := setupDB(t)

	partitionID, err := q.AddPartition(ctx, "mem/2025-01-01")
	require.NoError(t, err)

	_, err = q.GetLatestCompactionRound(ctx, partitionID)
	require.True(t, errors.Is(err, pgx.ErrNoRows))

	attrs := dto.RoundAttrs{
		Source:   "LevelBased(20, 100)",
		Info:     round.VerticalSplit([]int64{10, 20}),
		Branches: [][]int64{{1}, {2}},
		Later:    []int64{3},
	}
	require.NoError(t, q.AddCompactionRound(ctx, AddCompactionRoundParams{
		ID:          "round-1",
		PartitionID: partitionID,
		Fingerprint: 42,
		Attrs:       attrs,
	}))

	latest, err := q.GetLatestCompactionRound(ctx, partitionID)
	require.NoError(t, err)
	assert.Equal(t, "round-1", latest.ID)
	assert.Equal(t, int64(42), latest.Fingerprint)
	assert.Equal(t, attrs, latest.Attrs)
}
