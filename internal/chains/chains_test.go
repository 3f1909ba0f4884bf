package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/skyplan/internal/files"
)

func file(id, minTime, maxTime, size, createdAt int64) files.File {
	return files.File{
		ID:             id,
		Level:          files.Initial,
		MinTime:        minTime,
		MaxTime:        maxTime,
		SizeBytes:      size,
		MaxL0CreatedAt: createdAt,
	}
}

func chainIDs(chains [][]files.File) [][]int64 {
	out := make([][]int64, len(chains))
	for i, c := range chains {
		out[i] = files.IDs(c)
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		files []files.File
		want  [][]int64
	}{
		{
			name:  "empty",
			files: nil,
			want:  [][]int64{},
		},
		{
			name:  "single file",
			files: []files.File{file(1, 0, 100, 10, 1)},
			want:  [][]int64{{1}},
		},
		{
			name: "disjoint files",
			files: []files.File{
				file(2, 101, 200, 10, 2),
				file(1, 0, 100, 10, 1),
			},
			want: [][]int64{{1}, {2}},
		},
		{
			name: "touching bounds overlap",
			files: []files.File{
				file(1, 0, 100, 10, 1),
				file(2, 100, 200, 10, 2),
			},
			want: [][]int64{{1, 2}},
		},
		{
			name: "transitive overlap",
			files: []files.File{
				file(3, 180, 300, 10, 3),
				file(1, 0, 100, 10, 1),
				file(2, 50, 200, 10, 2),
				file(4, 400, 500, 10, 4),
			},
			want: [][]int64{{1, 2, 3}, {4}},
		},
		{
			name: "long file bridges later files",
			files: []files.File{
				file(1, 0, 1000, 10, 1),
				file(2, 10, 20, 10, 2),
				file(3, 500, 600, 10, 3),
				file(4, 1001, 1100, 10, 4),
			},
			want: [][]int64{{1, 2, 3}, {4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.files)
			assert.Equal(t, len(tt.want), len(got))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, chainIDs(got))
			}
		})
	}
}

func TestSplitIsAPartition(t *testing.T) {
	fs := []files.File{
		file(1, 0, 10, 1, 1),
		file(2, 5, 15, 1, 2),
		file(3, 20, 30, 1, 3),
		file(4, 25, 26, 1, 4),
		file(5, 40, 50, 1, 5),
		file(6, 0, 3, 1, 6),
	}

	seen := map[int64]int{}
	for _, chain := range Split(fs) {
		for _, f := range chain {
			seen[f.ID]++
		}
	}

	require.Len(t, seen, len(fs))
	for id, n := range seen {
		assert.Equal(t, 1, n, "file %d", id)
	}
}

func TestSplitDoesNotMutateInput(t *testing.T) {
	fs := []files.File{file(2, 100, 200, 1, 2), file(1, 0, 10, 1, 1)}
	_ = Split(fs)
	assert.Equal(t, []int64{2, 1}, files.IDs(fs))
}

func TestMergeSmallL0(t *testing.T) {
	tests := []struct {
		name    string
		chains  [][]files.File
		maxSize int64
		want    [][]int64
	}{
		{
			name: "merges while under budget",
			chains: [][]files.File{
				{file(1, 0, 10, 10, 1)},
				{file(2, 20, 30, 10, 2)},
				{file(3, 40, 50, 10, 3)},
			},
			maxSize: 20,
			want:    [][]int64{{1, 2}, {3}},
		},
		{
			name: "exactly at budget merges",
			chains: [][]files.File{
				{file(1, 0, 10, 10, 1)},
				{file(2, 20, 30, 10, 2)},
			},
			maxSize: 20,
			want:    [][]int64{{1, 2}},
		},
		{
			name: "oversized chain stays alone",
			chains: [][]files.File{
				{file(1, 0, 10, 50, 1)},
				{file(2, 20, 30, 10, 2)},
				{file(3, 40, 50, 10, 3)},
			},
			maxSize: 30,
			want:    [][]int64{{1}, {2, 3}},
		},
		{
			name: "split siblings are not merged",
			chains: [][]files.File{
				{file(1, 0, 10, 10, 7)},
				{file(2, 11, 20, 10, 7)},
				{file(3, 21, 30, 10, 8)},
			},
			maxSize: 100,
			want:    [][]int64{{1}, {2, 3}},
		},
		{
			name: "unordered input is merged in time order",
			chains: [][]files.File{
				{file(3, 40, 50, 10, 3)},
				{file(1, 0, 10, 10, 1)},
				{file(2, 20, 30, 10, 2)},
			},
			maxSize: 20,
			want:    [][]int64{{1, 2}, {3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chainIDs(MergeSmallL0(tt.chains, tt.maxSize)))
		})
	}
}

func TestMergeSmallL0Empty(t *testing.T) {
	assert.Empty(t, MergeSmallL0(nil, 100))
}
