package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/dynoinc/skyplan/internal/roundinfo"
	"github.com/dynoinc/skyplan/internal/simulate"
)

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	sf := registerSnapshotFlags(fs)
	maxRounds := fs.Int("rounds", 100, "Give up after this many rounds")
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

	res, err := simulate.Run(ctx, roundinfo.NewLevelBased(sf.plan), inMemory(s), s.PartitionInfo(), *maxRounds)
	if err != nil {
		return err
	}

	table := newTable(os.Stdout, "Round", "Info", "Branches", "Commits", "Later", "Read", "Written", "Bytes read", "Bytes written")
	for _, r := range res.Rounds {
		table.Append([]string{
			strconv.Itoa(r.Index),
			colorInfo(r.Info),
			strconv.Itoa(r.Branches),
			strconv.Itoa(r.Commits),
			strconv.Itoa(r.FilesLater),
			strconv.Itoa(r.FilesRead),
			strconv.Itoa(r.FilesWritten),
			strconv.FormatInt(r.BytesRead, 10),
			strconv.FormatInt(r.BytesWritten, 10),
		})
	}
	table.Render()

	fmt.Println()
	finalTable := newTable(os.Stdout, "Final", "Files", "L0/L1/L2", "Bytes", "Time range")
	finalTable.Append(fileSetRow("files", res.Files))
	finalTable.Render()

	if !res.Converged {
		color.Red("did not converge within %d rounds", *maxRounds)
		return fmt.Errorf("no convergence after %d rounds", len(res.Rounds))
	}
	color.Green("converged after %d rounds", len(res.Rounds))
	return nil
}
