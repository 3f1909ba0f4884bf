package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/round"
)

var kindColors = map[round.Kind]*color.Color{
	round.KindVerticalSplit:        color.New(color.FgMagenta, color.Bold),
	round.KindManySmallFiles:       color.New(color.FgYellow, color.Bold),
	round.KindSimulatedLeadingEdge: color.New(color.FgCyan, color.Bold),
	round.KindTargetLevel:          color.New(color.FgGreen, color.Bold),
}

func colorInfo(info round.Info) string {
	c, ok := kindColors[info.Kind]
	if !ok {
		return info.String()
	}
	return c.Sprint(info.String())
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(true)
	table.SetAutoFormatHeaders(false)
	return table
}

// branchRows describes each branch, then the deferred files as a last row.
func branchRows(branches [][]files.File, later []files.File) [][]string {
	rows := make([][]string, 0, len(branches)+1)
	for i, b := range branches {
		rows = append(rows, fileSetRow(strconv.Itoa(i), b))
	}
	if len(later) > 0 {
		rows = append(rows, fileSetRow("later", later))
	}
	return rows
}

func fileSetRow(name string, fs []files.File) []string {
	minTime, maxTime, _ := files.TimeRange(fs)
	return []string{
		name,
		strconv.Itoa(len(fs)),
		fmt.Sprintf("%d/%d/%d",
			len(files.FilterLevel(fs, files.Initial)),
			len(files.FilterLevel(fs, files.FileNonOverlapped)),
			len(files.FilterLevel(fs, files.Final))),
		strconv.FormatInt(files.TotalSize(fs), 10),
		fmt.Sprintf("[%d, %d]", minTime, maxTime),
	}
}

// planFingerprint identifies a planned round: its info, every branch in order
// and the deferred files. Equal plans have equal fingerprints.
func planFingerprint(info round.Info, branches [][]files.File, later []files.File) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(info.String())

	var buf [8]byte
	for _, b := range branches {
		binary.LittleEndian.PutUint64(buf[:], files.Fingerprint(b))
		_, _ = d.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], files.Fingerprint(later))
	_, _ = d.Write(buf[:])
	return d.Sum64()
}
