package roundinfo

import "github.com/dynoinc/skyplan/internal/files"

// startLevel decides what level to start compaction from. Usually this is the
// lowest level with files, but occasionally L1->L2 runs while L0s still exist.
//
// L0 may overlap itself and L1/L2 may not, so moving a large L0 backlog into a
// large L1 can take many split/compact cycles. L1 only overlaps L2 across
// levels and is aligned with a few splits, so compacting L1 first leaves a
// clean L1 for the remaining L0->L1 work.
func startLevel(fs []files.File, maxFiles int, maxBytes, escalationFactor int64) files.Level {
	if len(fs) == 0 {
		panic("roundinfo: start level requested for an empty file set")
	}

	var l0Count int
	var l0Bytes, l1Bytes int64
	for _, f := range fs {
		switch f.Level {
		case files.Initial:
			l0Count++
			l0Bytes += f.SizeBytes
		case files.FileNonOverlapped:
			l1Bytes += f.SizeBytes
		}
	}

	switch {
	case l1Bytes > escalationFactor*maxBytes && (l0Count > maxFiles || l0Bytes > maxBytes):
		// L1 is big enough to make L0 overlaps expensive and a lot more is
		// still coming from L0. The thresholds were tuned against write
		// amplification of existing scenarios.
		return files.FileNonOverlapped
	case l0Bytes > 0:
		return files.Initial
	case l1Bytes > 0:
		return files.FileNonOverlapped
	default:
		return files.Final
	}
}
