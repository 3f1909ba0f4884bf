package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dynoinc/skyplan/internal/roundinfo"
)

func runPlan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	sf := registerSnapshotFlags(fs)
	_ = fs.Parse(args)
	sf.setupLogging()

	name, err := snapshotArg(fs)
	if err != nil {
		return err
	}

	s, err := sf.load(ctx, name)
	if err != nil {
		return err
	}

	source := roundinfo.NewLogging(roundinfo.NewLevelBased(sf.plan))
	info, branches, later, err := source.Calculate(ctx, inMemory(s), s.PartitionInfo(), s.Files)
	if err != nil {
		return err
	}

	fmt.Printf("Partition %d (%d files): %s\n", s.Partition, len(s.Files), colorInfo(info))

	table := newTable(os.Stdout, "Branch", "Files", "L0/L1/L2", "Bytes", "Time range")
	table.AppendBulk(branchRows(branches, later))
	table.Render()
	return nil
}
