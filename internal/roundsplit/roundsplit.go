// Package roundsplit decides which files of a partition a round acts on.
package roundsplit

import (
	"context"
	"fmt"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

// ManyFiles keeps the files a round of the given kind needs and defers the rest.
type ManyFiles struct{}

var _ components.RoundSplit = ManyFiles{}

func New() ManyFiles {
	return ManyFiles{}
}

func (ManyFiles) Split(_ context.Context, fs []files.File, info round.Info) ([]files.File, []files.File, error) {
	var keep func(files.File) bool
	switch info.Kind {
	case round.KindManySmallFiles:
		keep = func(f files.File) bool { return f.Level == info.StartLevel }
	case round.KindSimulatedLeadingEdge:
		keep = func(f files.File) bool { return f.Level != files.Final }
	case round.KindVerticalSplit:
		keep = func(f files.File) bool {
			return f.Level == files.Initial && containsSplit(f, info.SplitTimes)
		}
	case round.KindTargetLevel:
		target := info.Target
		keep = func(f files.File) bool { return f.Level == target || f.Level == target.Prev() }
	default:
		return nil, nil, fmt.Errorf("unknown round kind %q", info.Kind)
	}

	var now, later []files.File
	for _, f := range fs {
		if keep(f) {
			now = append(now, f)
		} else {
			later = append(later, f)
		}
	}
	return now, later, nil
}

// containsSplit reports whether splitting at any of the times cuts f in two.
// A split at t keeps t on the left side.
func containsSplit(f files.File, splitTimes []int64) bool {
	for _, t := range splitTimes {
		if f.MinTime <= t && t < f.MaxTime {
			return true
		}
	}
	return false
}
