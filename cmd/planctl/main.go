// Command planctl plans compaction rounds offline from partition snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/lmittmann/tint"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/divide"
	"github.com/dynoinc/skyplan/internal/memcatalog"
	"github.com/dynoinc/skyplan/internal/roundinfo"
	"github.com/dynoinc/skyplan/internal/roundsplit"
	"github.com/dynoinc/skyplan/internal/snapshot"
	"github.com/dynoinc/skyplan/internal/storage"
)

const usage = `usage: planctl <command> [flags]

commands:
  plan      plan the next round of a snapshot
  simulate  plan and execute rounds of a snapshot until nothing is left to do
  bench     plan a snapshot repeatedly and report latencies
  export    write a snapshot of a partition in the catalog database
  version   print the version
`

type commandFunc func(ctx context.Context, args []string) error

func main() {
	commands := map[string]commandFunc{
		"plan":     runPlan,
		"simulate": runSimulate,
		"bench":    runBench,
		"export":   runExport,
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	name := os.Args[1]
	if name == "version" {
		fmt.Println(versioninfo.Short())
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", name, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd(ctx, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "planctl %s: %v\n", name, err)
		os.Exit(1)
	}
}

// snapshotFlags selects a snapshot and the planning limits to plan it with.
type snapshotFlags struct {
	storageURL string
	debug      bool
	plan       roundinfo.Config
}

func registerSnapshotFlags(fs *flag.FlagSet) *snapshotFlags {
	f := &snapshotFlags{}
	fs.StringVar(&f.storageURL, "storage-url", "", "Read the snapshot from this bucket instead of the local filesystem")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.plan.MaxNumFilesPerPlan, "max-files", 20, "Maximum number of files per plan")
	fs.Int64Var(&f.plan.MaxTotalFileSizePerPlan, "max-bytes", 300*1024*1024, "Maximum total file size per plan")
	fs.Int64Var(&f.plan.L1EscalationFactor, "escalation-factor", 3, "Plans worth of L1 bytes that escalate an L0 backlog")
	return f
}

func (f *snapshotFlags) setupLogging() {
	level := slog.LevelWarn
	if f.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

func (f *snapshotFlags) load(ctx context.Context, name string) (snapshot.Snapshot, error) {
	if f.storageURL == "" {
		return snapshot.ReadFile(name)
	}

	bkt, err := storage.New(ctx, f.storageURL)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("setting up storage: %w", err)
	}
	defer bkt.Close()

	return snapshot.Load(ctx, bkt, name)
}

// inMemory returns components planning and committing against a catalog
// holding only the snapshot's files.
func inMemory(s snapshot.Snapshot) *components.Components {
	catalog := memcatalog.New()
	catalog.Add(s.Files...)

	return &components.Components{
		PartitionFiles: catalog,
		RoundSplit:     roundsplit.New(),
		Divide:         divide.New(),
		Commit:         catalog,
	}
}

func snapshotArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one snapshot, got %d", fs.NArg())
	}
	return fs.Arg(0), nil
}
