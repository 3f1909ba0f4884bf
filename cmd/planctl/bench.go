package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/influxdata/tdigest"

	"github.com/dynoinc/skyplan/internal/roundinfo"
)

func runBench(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	sf := registerSnapshotFlags(fs)
	iterations := fs.Int("n", 1000, "Number of plans")
	shuffle := fs.Bool("shuffle", true, "Shuffle the input files before every plan")
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

	source := roundinfo.NewLevelBased(sf.plan)
	c := inMemory(s)
	input := slices.Clone(s.Files)
	digest := tdigest.NewWithCompression(100)

	var (
		first             uint64
		minLat, maxLat    float64
		totalLat          float64
		mismatches, count int
	)
	start := time.Now()
	for i := range max(*iterations, 1) {
		if ctx.Err() != nil {
			break
		}
		if *shuffle {
			rand.Shuffle(len(input), func(a, b int) { input[a], input[b] = input[b], input[a] })
		}

		planStart := time.Now()
		info, branches, later, err := source.Calculate(ctx, c, s.PartitionInfo(), input)
		if err != nil {
			return fmt.Errorf("plan %d: %w", i, err)
		}
		latency := float64(time.Since(planStart).Microseconds()) / 1000

		fingerprint := planFingerprint(info, branches, later)
		if i == 0 {
			first = fingerprint
			minLat = latency
		} else if fingerprint != first {
			mismatches++
		}

		count++
		totalLat += latency
		minLat = min(minLat, latency)
		maxLat = max(maxLat, latency)
		digest.Add(latency, 1)
	}
	elapsed := time.Since(start)

	table := newTable(os.Stdout, "Files", "Plans", "Throughput", "Min", "Max", "Avg", "P50", "P90", "P99", "Mismatches")
	table.Append([]string{
		fmt.Sprintf("%d", len(s.Files)),
		fmt.Sprintf("%d", count),
		fmt.Sprintf("%.2f/s", float64(count)/elapsed.Seconds()),
		fmt.Sprintf("%.3fms", minLat),
		fmt.Sprintf("%.3fms", maxLat),
		fmt.Sprintf("%.3fms", totalLat/float64(max(count, 1))),
		fmt.Sprintf("%.3fms", digest.Quantile(0.5)),
		fmt.Sprintf("%.3fms", digest.Quantile(0.9)),
		fmt.Sprintf("%.3fms", digest.Quantile(0.99)),
		fmt.Sprintf("%d", mismatches),
	})
	table.Render()

	if mismatches > 0 {
		return fmt.Errorf("planning is not deterministic: %d of %d plans differ from the first", mismatches, count)
	}
	return nil
}
