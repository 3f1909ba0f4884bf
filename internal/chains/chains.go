// Package chains groups files into chains: maximal sets of files whose time
// ranges transitively overlap.
package chains

import (
	"cmp"
	"slices"

	"github.com/dynoinc/skyplan/internal/files"
)

// Split groups files into chains ordered by time. Every file lands in exactly
// one chain. The input slice is left untouched.
func Split(fs []files.File) [][]files.File {
	if len(fs) == 0 {
		return nil
	}

	sorted := slices.Clone(fs)
	slices.SortFunc(sorted, func(a, b files.File) int {
		return cmp.Or(
			cmp.Compare(a.MinTime, b.MinTime),
			cmp.Compare(a.MaxTime, b.MaxTime),
			cmp.Compare(a.ID, b.ID),
		)
	})

	var chains [][]files.File
	start := 0
	maxTime := sorted[0].MaxTime
	for i, f := range sorted {
		if f.MinTime > maxTime {
			chains = append(chains, sorted[start:i:i])
			start = i
		}
		maxTime = max(maxTime, f.MaxTime)
	}
	chains = append(chains, sorted[start:])

	return chains
}

// Size is the total byte size of a chain.
func Size(chain []files.File) int64 {
	return files.TotalSize(chain)
}

// MergeSmallL0 coalesces adjacent chains as long as the merged chain stays at or
// below maxTotalSize. Files of a merged chain need not overlap each other.
//
// Chains sharing a MaxL0CreatedAt value are never merged: such files were split
// from the same file and merging them would undo that split.
func MergeSmallL0(chains [][]files.File, maxTotalSize int64) [][]files.File {
	if len(chains) == 0 {
		return nil
	}

	ordered := slices.Clone(chains)
	slices.SortStableFunc(ordered, func(a, b []files.File) int {
		return cmp.Compare(chainStart(a), chainStart(b))
	})

	var merged [][]files.File
	var priorBytes int64
	for _, chain := range ordered {
		chainBytes := Size(chain)

		if len(merged) > 0 {
			prior := merged[len(merged)-1]
			if priorBytes+chainBytes <= maxTotalSize && !sharesCreatedAt(prior, chain) {
				merged[len(merged)-1] = append(prior, chain...)
				priorBytes += chainBytes
				continue
			}
		}

		merged = append(merged, slices.Clone(chain))
		priorBytes = chainBytes
	}

	return merged
}

func chainStart(chain []files.File) int64 {
	minTime, _, _ := files.TimeRange(chain)
	return minTime
}

func sharesCreatedAt(a, b []files.File) bool {
	for _, f := range b {
		for _, g := range a {
			if f.MaxL0CreatedAt == g.MaxL0CreatedAt {
				return true
			}
		}
	}
	return false
}
