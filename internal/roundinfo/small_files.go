package roundinfo

import (
	"github.com/dynoinc/skyplan/internal/chains"
	"github.com/dynoinc/skyplan/internal/files"
)

// ManyUngroupableFiles reports whether the partition looks like ManySmallFiles
// but grouping the start level files by time overlap would not consolidate them.
func (l *LevelBased) ManyUngroupableFiles(fs []files.File, start files.Level, maxTotalFileSizeToGroup int64) bool {
	if !l.TooManySmallFilesToCompact(fs, files.Initial) {
		return false
	}

	startFiles := files.FilterLevel(fs, start)
	merged := chains.MergeSmallL0(chains.Split(startFiles), maxTotalFileSizeToGroup)

	return len(merged) > 1 && len(merged) > len(startFiles)/3
}

// TooManySmallFilesToCompact reports whether the start level files plus the
// next level files they overlap exceed the per plan file limit, and whether
// those start level files are small enough that compacting within the start
// level actually reduces their number.
func (l *LevelBased) TooManySmallFilesToCompact(fs []files.File, start files.Level) bool {
	startFiles := files.FilterLevel(fs, start)
	numStart := len(startFiles)
	sizeStart := files.TotalSize(startFiles)

	createdAt := make(map[int64]struct{}, numStart)
	for _, f := range startFiles {
		createdAt[f.MaxL0CreatedAt] = struct{}{}
	}

	// Worst case a branch compacts all start level files with their next level
	// overlaps in a single plan.
	overlapped := countOverlapped(startFiles, files.FilterLevel(fs, start.Next()))
	if numStart <= 1 || numStart+overlapped <= l.config.MaxNumFilesPerPlan {
		return false
	}

	// Files sharing one max_l0_created_at were split from the same file.
	if len(createdAt) == 1 {
		return false
	}

	// Many large files: file count can't be reduced within the level.
	if sizeStart/int64(numStart) > l.config.MaxTotalFileSizePerPlan/int64(l.config.MaxNumFilesPerPlan) {
		return false
	}

	// A prior round may have split start level files so each overlaps at most
	// one next level file. Compacting within the start level now would undo it.
	var maxNextLevel, maxChainLen int
	for _, chain := range chains.Split(fs) {
		maxNextLevel = max(maxNextLevel, len(files.FilterLevel(chain, start.Next())))
		maxChainLen = max(maxChainLen, len(chain))
	}
	if maxNextLevel <= 1 && maxChainLen <= l.config.MaxNumFilesPerPlan {
		return false
	}

	return true
}

// countOverlapped counts next level files overlapping the time envelope of the
// start level files.
func countOverlapped(startFiles, nextFiles []files.File) int {
	minTime, maxTime, ok := files.TimeRange(startFiles)
	if !ok {
		return 0
	}

	var n int
	for _, f := range nextFiles {
		if f.OverlapsTimeRange(minTime, maxTime) {
			n++
		}
	}
	return n
}
