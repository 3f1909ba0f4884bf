package files

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Level is the compaction level of a file. Only Initial files may overlap
// other files of the same level.
type Level int16

const (
	Initial           Level = 0
	FileNonOverlapped Level = 1
	Final             Level = 2
)

// Next returns the level files are compacted into. Final is terminal.
func (l Level) Next() Level {
	switch l {
	case Initial:
		return FileNonOverlapped
	default:
		return Final
	}
}

// Prev returns the level that compacts into l.
func (l Level) Prev() Level {
	switch l {
	case Final:
		return FileNonOverlapped
	default:
		return Initial
	}
}

func (l Level) String() string {
	switch l {
	case Initial:
		return "L0"
	case FileNonOverlapped:
		return "L1"
	case Final:
		return "L2"
	default:
		return fmt.Sprintf("Level(%d)", int16(l))
	}
}

type PartitionID int64

// Partition identifies the partition a planning call works on.
type Partition struct {
	ID  PartitionID
	Key string
}

// File is the immutable metadata of one data file.
type File struct {
	ID             int64       `json:"id" yaml:"id"`
	PartitionID    PartitionID `json:"partition_id" yaml:"partition_id"`
	Level          Level       `json:"compaction_level" yaml:"compaction_level"`
	MinTime        int64       `json:"min_time" yaml:"min_time"`
	MaxTime        int64       `json:"max_time" yaml:"max_time"`
	SizeBytes      int64       `json:"file_size_bytes" yaml:"file_size_bytes"`
	MaxL0CreatedAt int64       `json:"max_l0_created_at" yaml:"max_l0_created_at"`
}

// OverlapsTimeRange reports whether the file has data in [minTime, maxTime].
func (f File) OverlapsTimeRange(minTime, maxTime int64) bool {
	return f.MinTime <= maxTime && f.MaxTime >= minTime
}

func (f File) Overlaps(other File) bool {
	return f.OverlapsTimeRange(other.MinTime, other.MaxTime)
}

func (f File) String() string {
	return fmt.Sprintf("%d@%s[%d,%d]", f.ID, f.Level, f.MinTime, f.MaxTime)
}

// TotalSize sums the file sizes.
func TotalSize(fs []File) int64 {
	var total int64
	for _, f := range fs {
		total += f.SizeBytes
	}
	return total
}

// FilterLevel returns the files at the given level, preserving order.
func FilterLevel(fs []File, level Level) []File {
	var out []File
	for _, f := range fs {
		if f.Level == level {
			out = append(out, f)
		}
	}
	return out
}

func IDs(fs []File) []int64 {
	ids := make([]int64, len(fs))
	for i, f := range fs {
		ids[i] = f.ID
	}
	return ids
}

// TimeRange returns the envelope of the files. ok is false for an empty set.
func TimeRange(fs []File) (minTime, maxTime int64, ok bool) {
	if len(fs) == 0 {
		return 0, 0, false
	}

	minTime, maxTime = fs[0].MinTime, fs[0].MaxTime
	for _, f := range fs[1:] {
		minTime = min(minTime, f.MinTime)
		maxTime = max(maxTime, f.MaxTime)
	}
	return minTime, maxTime, true
}

// Fingerprint hashes a snapshot independent of file order. Two snapshots with
// the same files and metadata always have the same fingerprint.
func Fingerprint(fs []File) uint64 {
	sorted := slices.Clone(fs)
	slices.SortFunc(sorted, func(a, b File) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	d := xxhash.New()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	for _, f := range sorted {
		put(f.ID)
		put(int64(f.Level))
		put(f.MinTime)
		put(f.MaxTime)
		put(f.SizeBytes)
		put(f.MaxL0CreatedAt)
	}
	return d.Sum64()
}
