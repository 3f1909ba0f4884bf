// Package round describes the decision made for one compaction round of a
// partition. Later stages only work out the details of what the Info dictates,
// so it carries enough context to preserve the intent of the round.
package round

import (
	"fmt"

	"github.com/dynoinc/skyplan/internal/files"
)

type Kind string

const (
	// KindVerticalSplit splits start level files at SplitTimes before any merge.
	KindVerticalSplit Kind = "VerticalSplit"
	// KindManySmallFiles compacts only within StartLevel to reduce file count.
	KindManySmallFiles Kind = "ManySmallFiles"
	// KindSimulatedLeadingEdge handles a small file backlog that chains do not
	// consolidate by compacting the oldest L0 files first.
	KindSimulatedLeadingEdge Kind = "SimulatedLeadingEdge"
	// KindTargetLevel compacts the start level into Target.
	KindTargetLevel Kind = "TargetLevel"
)

// Info is a tagged variant; only the fields of its Kind are meaningful.
type Info struct {
	Kind                    Kind        `json:"kind"`
	SplitTimes              []int64     `json:"split_times,omitempty"`
	StartLevel              files.Level `json:"start_level,omitempty"`
	Target                  files.Level `json:"target_level,omitempty"`
	MaxNumFilesToGroup      int         `json:"max_num_files_to_group,omitempty"`
	MaxTotalFileSizeToGroup int64       `json:"max_total_file_size_to_group,omitempty"`
}

func VerticalSplit(splitTimes []int64) Info {
	return Info{Kind: KindVerticalSplit, SplitTimes: splitTimes}
}

func ManySmallFiles(startLevel files.Level, maxNumFiles int, maxTotalSize int64) Info {
	return Info{
		Kind:                    KindManySmallFiles,
		StartLevel:              startLevel,
		MaxNumFilesToGroup:      maxNumFiles,
		MaxTotalFileSizeToGroup: maxTotalSize,
	}
}

func SimulatedLeadingEdge(maxNumFiles int, maxTotalSize int64) Info {
	return Info{
		Kind:                    KindSimulatedLeadingEdge,
		MaxNumFilesToGroup:      maxNumFiles,
		MaxTotalFileSizeToGroup: maxTotalSize,
	}
}

func TargetLevel(target files.Level, maxTotalSize int64) Info {
	return Info{
		Kind:                    KindTargetLevel,
		Target:                  target,
		MaxTotalFileSizeToGroup: maxTotalSize,
	}
}

// TargetLevel returns the level this round writes its output files to.
func (i Info) TargetLevel() files.Level {
	switch i.Kind {
	case KindVerticalSplit:
		return files.Initial
	case KindManySmallFiles:
		return i.StartLevel
	case KindSimulatedLeadingEdge:
		return files.FileNonOverlapped
	default:
		return i.Target
	}
}

func (i Info) IsVerticalSplit() bool        { return i.Kind == KindVerticalSplit }
func (i Info) IsManySmallFiles() bool       { return i.Kind == KindManySmallFiles }
func (i Info) IsSimulatedLeadingEdge() bool { return i.Kind == KindSimulatedLeadingEdge }

// NumFilesLimit returns the per branch file limit, if the round has one.
func (i Info) NumFilesLimit() (int, bool) {
	switch i.Kind {
	case KindManySmallFiles, KindSimulatedLeadingEdge:
		return i.MaxNumFilesToGroup, true
	default:
		return 0, false
	}
}

// FileSizeLimit returns the per branch byte limit, if the round has one.
func (i Info) FileSizeLimit() (int64, bool) {
	switch i.Kind {
	case KindManySmallFiles, KindSimulatedLeadingEdge, KindTargetLevel:
		return i.MaxTotalFileSizeToGroup, true
	default:
		return 0, false
	}
}

func (i Info) String() string {
	switch i.Kind {
	case KindVerticalSplit:
		return fmt.Sprintf("VerticalSplit: %v", i.SplitTimes)
	case KindManySmallFiles:
		return fmt.Sprintf("ManySmallFiles: %s, %d, %d", i.StartLevel, i.MaxNumFilesToGroup, i.MaxTotalFileSizeToGroup)
	case KindSimulatedLeadingEdge:
		return fmt.Sprintf("SimulatedLeadingEdge: %d, %d", i.MaxNumFilesToGroup, i.MaxTotalFileSizeToGroup)
	case KindTargetLevel:
		return fmt.Sprintf("TargetLevel: %s %d", i.Target, i.MaxTotalFileSizeToGroup)
	default:
		return fmt.Sprintf("Unknown(%s)", string(i.Kind))
	}
}
