package roundinfo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/skyplan/internal/files"
)

func TestVerticalSplitTimes(t *testing.T) {
	l := NewLevelBased(Config{MaxNumFilesPerPlan: 20, MaxTotalFileSizePerPlan: 100})

	tests := []struct {
		name    string
		files   []files.File
		maxSize int64
		want    []int64
	}{
		{
			name: "chain under the limit",
			files: []files.File{
				newFile(1).timeRange(0, 300).level(files.Initial).size(30).build(),
				newFile(2).timeRange(0, 300).level(files.Initial).size(30).build(),
			},
			maxSize: 100,
			want:    nil,
		},
		{
			name: "single oversized file is not split",
			files: []files.File{
				newFile(1).timeRange(0, 300).level(files.Initial).size(1000).build(),
			},
			maxSize: 100,
			want:    nil,
		},
		{
			name: "stacked files split evenly without hints",
			files: []files.File{
				newFile(1).timeRange(0, 300).level(files.Initial).size(100).build(),
				newFile(2).timeRange(0, 300).level(files.Initial).size(100).build(),
				newFile(3).timeRange(0, 300).level(files.Initial).size(100).build(),
			},
			maxSize: 100,
			want:    []int64{75, 151, 227},
		},
		{
			name: "splits align with L1 boundaries",
			files: []files.File{
				newFile(1).timeRange(0, 300).level(files.Initial).size(100).build(),
				newFile(2).timeRange(0, 300).level(files.Initial).size(100).build(),
				newFile(3).timeRange(0, 300).level(files.Initial).size(100).build(),
				newFile(11).timeRange(0, 70).level(files.FileNonOverlapped).build(),
				newFile(12).timeRange(71, 145).level(files.FileNonOverlapped).build(),
				// L2 files never produce hints
				newFile(21).timeRange(0, 60).level(files.Final).build(),
			},
			maxSize: 100,
			want:    []int64{70, 145, 221, 297},
		},
		{
			name: "range boundaries become split times",
			files: []files.File{
				newFile(1).timeRange(0, 99).level(files.Initial).size(100).build(),
				newFile(2).timeRange(99, 198).level(files.Initial).size(100).build(),
			},
			maxSize: 100,
			want:    []int64{98, 99},
		},
		{
			name: "files ending at the last timestamp",
			files: []files.File{
				newFile(1).timeRange(0, math.MaxInt64).level(files.Initial).size(100).build(),
				newFile(2).timeRange(0, math.MaxInt64).level(files.Initial).size(100).build(),
			},
			maxSize: 100,
			want:    []int64{1<<62 - 1},
		},
		{
			name: "L2 files are ignored",
			files: []files.File{
				newFile(1).timeRange(0, 300).level(files.Final).size(1000).build(),
				newFile(2).timeRange(0, 300).level(files.Final).size(1000).build(),
			},
			maxSize: 100,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.VerticalSplitTimes(tt.files, tt.maxSize))
		})
	}
}

func TestVerticalSplitTimesInsideChain(t *testing.T) {
	l := NewLevelBased(Config{MaxNumFilesPerPlan: 20, MaxTotalFileSizePerPlan: 100})
	fs := []files.File{
		newFile(1).timeRange(1000, 5000).level(files.Initial).size(80).build(),
		newFile(2).timeRange(2000, 6000).level(files.Initial).size(80).build(),
		newFile(3).timeRange(1500, 5500).level(files.Initial).size(80).build(),
	}

	splits := l.VerticalSplitTimes(fs, 100)
	require.NotEmpty(t, splits)
	for _, s := range splits {
		assert.Greater(t, s, int64(1000))
		assert.Less(t, s, int64(6000))
	}
}

func TestVerticalSplitTimesStrictlyIncreasing(t *testing.T) {
	l := NewLevelBased(Config{MaxNumFilesPerPlan: 20, MaxTotalFileSizePerPlan: 500})
	rng := rand.New(rand.NewSource(1))

	for range 50 {
		var fs []files.File
		for i := range 30 {
			minTime := rng.Int63n(10_000)
			level := files.Initial
			if rng.Intn(3) == 0 {
				level = files.FileNonOverlapped
			}
			fs = append(fs, newFile(int64(i)).
				timeRange(minTime, minTime+rng.Int63n(2_000)).
				level(level).
				size(1+rng.Int63n(300)).
				build())
		}

		splits := l.VerticalSplitTimes(fs, 500)
		for i := 1; i < len(splits); i++ {
			require.Less(t, splits[i-1], splits[i])
		}
	}
}

func TestLinearDistRanges(t *testing.T) {
	chain := []files.File{
		newFile(1).timeRange(0, 99).level(files.Initial).size(100).build(),
		newFile(2).timeRange(99, 198).level(files.Initial).size(100).build(),
	}

	assert.Equal(t, []fileRange{
		{min: 0, max: 98, cap: 99},
		{min: 99, max: 99, cap: 2},
		{min: 100, max: 198, cap: 99},
	}, linearDistRanges(chain, 100))

	assert.Equal(t, []fileRange{
		{min: 0, max: 198, cap: 200},
	}, linearDistRanges(chain, 1000))

	wide := []files.File{
		newFile(1).timeRange(math.MinInt64, -1).level(files.Initial).size(100).build(),
		newFile(2).timeRange(0, math.MaxInt64).level(files.Initial).size(100).build(),
	}
	assert.Equal(t, []fileRange{
		{min: math.MinInt64, max: -1, cap: 100},
		{min: 0, max: math.MaxInt64, cap: 100},
	}, linearDistRanges(wide, 100))
}

func TestSelectSplitTimes(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		maxSize  int64
		min, max int64
		hints    []int64
		want     []int64
	}{
		{name: "fits", total: 100, maxSize: 100, min: 0, max: 100, want: nil},
		{name: "empty range", total: 500, maxSize: 100, min: 10, max: 10, want: nil},
		{name: "even halves", total: 200, maxSize: 100, min: 0, max: 99, want: []int64{49}},
		{name: "hint in back half is used", total: 200, maxSize: 100, min: 0, max: 99, hints: []int64{40}, want: []int64{40, 90}},
		{name: "hint too early is ignored", total: 200, maxSize: 100, min: 0, max: 99, hints: []int64{10}, want: []int64{49}},
		{name: "hint past ideal is ignored", total: 200, maxSize: 100, min: 0, max: 99, hints: []int64{70}, want: []int64{49}},
		{name: "narrow range splits every timestamp", total: 1000, maxSize: 100, min: 0, max: 3, want: []int64{0, 1, 2}},
		{name: "pieces stay within the limit", total: 300, maxSize: 100, min: 0, max: 300, want: []int64{75, 151, 227}},
		{name: "full int64 range", total: 200, maxSize: 100, min: math.MinInt64, max: math.MaxInt64, want: []int64{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectSplitTimes(tt.total, tt.maxSize, tt.min, tt.max, tt.hints))
		})
	}
}

func TestSelectSplitTimesPiecesWithinLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for range 200 {
		minTime := rng.Int63n(1_000)
		maxTime := minTime + 1 + rng.Int63n(5_000)
		maxSize := 1 + rng.Int63n(500)
		total := maxSize + 1 + rng.Int63n(5_000)
		span := float64(maxTime - minTime + 1)
		if float64(total)/span > float64(maxSize) {
			// a single timestamp is already over the limit
			continue
		}

		bounds := append(selectSplitTimes(total, maxSize, minTime, maxTime, nil), maxTime)
		lo := minTime
		for _, hi := range bounds {
			est := float64(total) * float64(hi-lo+1) / span
			require.LessOrEqual(t, est, float64(maxSize), "piece [%d, %d] of [%d, %d]", lo, hi, minTime, maxTime)
			lo = hi + 1
		}
	}
}
