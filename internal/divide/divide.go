// Package divide groups the files of a round into branches that can be
// compacted independently of each other.
package divide

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dynoinc/skyplan/internal/chains"
	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

// MultipleBranches divides files into as many branches as the round allows.
type MultipleBranches struct{}

var _ components.Divide = MultipleBranches{}

func New() MultipleBranches {
	return MultipleBranches{}
}

func (MultipleBranches) Divide(_ context.Context, fs []files.File, info round.Info) ([][]files.File, []files.File, error) {
	if len(fs) == 0 {
		return nil, nil, nil
	}

	switch info.Kind {
	case round.KindVerticalSplit:
		branches := make([][]files.File, 0, len(fs))
		for _, f := range fs {
			branches = append(branches, []files.File{f})
		}
		return branches, nil, nil
	case round.KindManySmallFiles:
		branches, later := smallFileGroups(fs, info.MaxNumFilesToGroup, info.MaxTotalFileSizeToGroup)
		return branches, later, nil
	case round.KindSimulatedLeadingEdge:
		branch, later := leadingEdge(fs, info.MaxNumFilesToGroup, info.MaxTotalFileSizeToGroup)
		if len(branch) == 0 {
			return nil, later, nil
		}
		return [][]files.File{branch}, later, nil
	case round.KindTargetLevel:
		branches, later := targetChains(fs, info.Target.Prev())
		return branches, later, nil
	default:
		return nil, nil, fmt.Errorf("unknown round kind %q", info.Kind)
	}
}

// smallFileGroups cuts every merged chain, oldest data first, into groups within
// the file and byte limits. Compacting a group of one file is a no-op, so those
// are deferred.
func smallFileGroups(fs []files.File, maxFiles int, maxBytes int64) ([][]files.File, []files.File) {
	var branches [][]files.File
	var later []files.File

	for _, chain := range chains.MergeSmallL0(chains.Split(fs), maxBytes) {
		slices.SortFunc(chain, byCreatedAt)

		var group []files.File
		var groupBytes int64
		flush := func() {
			if len(group) == 1 {
				later = append(later, group[0])
			} else if len(group) > 1 {
				branches = append(branches, group)
			}
			group, groupBytes = nil, 0
		}

		for _, f := range chain {
			if len(group) > 0 && (len(group)+1 > maxFiles || groupBytes+f.SizeBytes > maxBytes) {
				flush()
			}
			group = append(group, f)
			groupBytes += f.SizeBytes
		}
		flush()
	}

	return branches, later
}

// leadingEdge picks the oldest L0 files within the limits, always at least one,
// and the L1 files overlapping them. Everything else waits.
func leadingEdge(fs []files.File, maxFiles int, maxBytes int64) ([]files.File, []files.File) {
	l0 := files.FilterLevel(fs, files.Initial)
	slices.SortFunc(l0, byCreatedAt)

	var picked []files.File
	var pickedBytes int64
	for _, f := range l0 {
		if len(picked) > 0 && (len(picked)+1 > maxFiles || pickedBytes+f.SizeBytes > maxBytes) {
			break
		}
		picked = append(picked, f)
		pickedBytes += f.SizeBytes
	}

	minTime, maxTime, ok := files.TimeRange(picked)
	if !ok {
		return nil, fs
	}

	inBranch := make(map[int64]struct{}, len(picked))
	for _, f := range picked {
		inBranch[f.ID] = struct{}{}
	}

	branch := picked
	var later []files.File
	for _, f := range fs {
		if _, ok := inBranch[f.ID]; ok {
			continue
		}
		if f.Level == files.FileNonOverlapped && f.OverlapsTimeRange(minTime, maxTime) {
			branch = append(branch, f)
			continue
		}
		later = append(later, f)
	}

	return branch, later
}

// targetChains makes one branch per chain holding a start level file. Chains of
// target level files alone have nothing to compact.
func targetChains(fs []files.File, start files.Level) ([][]files.File, []files.File) {
	var branches [][]files.File
	var later []files.File
	for _, chain := range chains.Split(fs) {
		if slices.ContainsFunc(chain, func(f files.File) bool { return f.Level == start }) {
			branches = append(branches, chain)
		} else {
			later = append(later, chain...)
		}
	}
	return branches, later
}

func byCreatedAt(a, b files.File) int {
	return cmp.Or(
		cmp.Compare(a.MaxL0CreatedAt, b.MaxL0CreatedAt),
		cmp.Compare(a.ID, b.ID),
	)
}
