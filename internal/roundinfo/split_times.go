package roundinfo

import (
	"math"
	"slices"

	"github.com/dynoinc/skyplan/internal/chains"
	"github.com/dynoinc/skyplan/internal/files"
)

// fileRange is a time range [min, max] with the estimated bytes it holds.
type fileRange struct {
	min int64
	max int64
	cap int64
}

// VerticalSplitTimes returns the times start level files must be split at
// before they can be compacted within maxCompactSize. An empty result means
// vertical splitting isn't needed this round.
func (l *LevelBased) VerticalSplitTimes(fs []files.File, maxCompactSize int64) []int64 {
	var startFiles, targetFiles []files.File
	for _, f := range fs {
		switch f.Level {
		case files.Initial:
			startFiles = append(startFiles, f)
		case files.FileNonOverlapped:
			targetFiles = append(targetFiles, f)
		}
	}

	var splitTimes []int64
	for _, chain := range chains.Split(startFiles) {
		chainCap := chains.Size(chain)

		// A single oversized file is upgraded rather than split, unless it
		// overlaps other L0s, in which case it's part of a bigger chain.
		if len(chain) <= 1 || chainCap <= maxCompactSize {
			continue
		}

		// File contents are unknown, so assume each file's bytes are spread
		// evenly over its own time range.
		for i, r := range linearDistRanges(chain, maxCompactSize) {
			// Later ranges always split at their start, whatever other chains need.
			if i > 0 {
				splitTimes = append(splitTimes, r.min-1)
			}

			var overlaps int
			for _, f := range chain {
				if f.OverlapsTimeRange(r.min, r.max) {
					overlaps++
				}
			}
			if overlaps <= 1 || r.cap <= maxCompactSize {
				continue
			}

			// Prefer splits that line up with L1 boundaries: the left side
			// either ends right before an L1 starts or includes its last ns.
			var hints []int64
			for _, f := range targetFiles {
				if f.MinTime > r.min && f.MinTime-1 > r.min && f.MinTime < r.max {
					hints = append(hints, f.MinTime-1)
				}
				if f.MaxTime > r.min && f.MaxTime < r.max {
					hints = append(hints, f.MaxTime)
				}
			}

			splitTimes = append(splitTimes, selectSplitTimes(r.cap, maxCompactSize, r.min, r.max, hints)...)
		}
	}

	slices.Sort(splitTimes)
	return slices.Compact(splitTimes)
}

// linearDistRanges cuts the chain's time span at every file boundary, estimates
// the bytes in each piece and joins adjacent pieces while they stay within
// maxCompactSize. A single piece over the limit becomes its own range.
func linearDistRanges(chain []files.File, maxCompactSize int64) []fileRange {
	chainMax := chain[0].MaxTime
	bounds := make([]int64, 0, len(chain)*2)
	for _, f := range chain {
		chainMax = max(chainMax, f.MaxTime)
		bounds = append(bounds, f.MinTime)
		if f.MaxTime < math.MaxInt64 {
			bounds = append(bounds, f.MaxTime+1)
		}
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	pieces := make([]fileRange, 0, len(bounds))
	for i, b := range bounds {
		if b > chainMax {
			break
		}
		p := fileRange{min: b, max: chainMax}
		if i+1 < len(bounds) {
			p.max = bounds[i+1] - 1
		}

		var est float64
		for _, f := range chain {
			lo, hi := max(f.MinTime, p.min), min(f.MaxTime, p.max)
			if lo > hi {
				continue
			}
			est += float64(f.SizeBytes) * width(lo, hi) / width(f.MinTime, f.MaxTime)
		}
		p.cap = int64(est)

		pieces = append(pieces, p)
	}

	var ranges []fileRange
	for _, p := range pieces {
		if n := len(ranges); n > 0 && ranges[n-1].cap+p.cap <= maxCompactSize {
			ranges[n-1].max = p.max
			ranges[n-1].cap += p.cap
			continue
		}
		ranges = append(ranges, p)
	}
	return ranges
}

// selectSplitTimes picks split times dividing [minTime, maxTime], holding total
// bytes spread evenly, into pieces estimated at no more than maxCompactSize. A
// hint in the back half of an ideal piece is used instead of the ideal split
// time.
func selectSplitTimes(total, maxCompactSize, minTime, maxTime int64, hints []int64) []int64 {
	if minTime >= maxTime || total <= maxCompactSize || maxCompactSize <= 0 {
		return nil
	}

	hints = slices.Clone(hints)
	slices.Sort(hints)
	hints = slices.Compact(hints)

	// [math.MinInt64, math.MaxInt64] holds one more timestamp than uint64 can
	// count; the missing one doesn't matter for sizing.
	span := uint64(maxTime) - uint64(minTime) + 1
	if span == 0 {
		span = math.MaxUint64
	}

	// Rounding the piece count alone can leave pieces slightly over the
	// limit, so also bound the piece width.
	maxInterval := span
	if w := math.Floor(float64(maxCompactSize) * float64(span) / float64(total)); w < float64(span) {
		maxInterval = max(uint64(w), 1)
	}
	pieces := max(ceilDiv(uint64(total), uint64(maxCompactSize)), ceilDiv(span, maxInterval))
	interval := max(ceilDiv(span, pieces), 1)

	var splits []int64
	start := minTime
	for uint64(maxTime)-uint64(start) >= interval {
		ideal := start + int64(interval-1)
		lowest := start + int64(interval-1-interval/2)

		split := ideal
		for i := len(hints) - 1; i >= 0; i-- {
			h := hints[i]
			if h > ideal {
				continue
			}
			if h >= lowest {
				split = h
			}
			break
		}

		splits = append(splits, split)
		start = split + 1
	}
	return splits
}

// width is the number of timestamps in [lo, hi].
func width(lo, hi int64) float64 {
	return float64(uint64(hi)-uint64(lo)) + 1
}

func ceilDiv(a, b uint64) uint64 {
	n := a / b
	if a%b != 0 {
		n++
	}
	return n
}
