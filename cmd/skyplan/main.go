package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dynoinc/skyplan/internal/admin"
	"github.com/dynoinc/skyplan/internal/background"
	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/database"
	"github.com/dynoinc/skyplan/internal/divide"
	"github.com/dynoinc/skyplan/internal/partitionfiles"
	"github.com/dynoinc/skyplan/internal/roundinfo"
	"github.com/dynoinc/skyplan/internal/roundsplit"
	"github.com/dynoinc/skyplan/internal/scheduler"
	"github.com/dynoinc/skyplan/internal/storage"
)

const (
	sourceCatalog = "catalog"
	sourceBucket  = "bucket"
)

type config struct {
	Addr       string `split_words:"true" default:"127.0.0.1:5001"`
	StorageURL string `split_words:"true" default:"filesystem://objstore"`

	// FilesSource is where partition files are read from: the catalog
	// database or partition snapshots in object storage.
	FilesSource         string `split_words:"true" default:"catalog"`
	CompressedSnapshots bool   `split_words:"true" default:"true"`

	Database   database.Config
	Plan       roundinfo.Config
	Files      partitionfiles.Config
	Background background.Config
	Scheduler  scheduler.Config
}

func main() {
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	debug := flag.Bool("debug", false, "Enable debug logging")
	dev := flag.Bool("dev", false, "Start a local postgres container")
	flag.Parse()

	if *help {
		_ = envconfig.Usage("skyplan", &config{})
		return
	}

	if *version {
		fmt.Println(versioninfo.Short())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.ErrorContext(ctx, "error loading .env file", "error", err)
		os.Exit(1)
	}

	var c config
	if err := envconfig.Process("skyplan", &c); err != nil {
		slog.ErrorContext(ctx, "error processing environment variables", "error", err)
		os.Exit(1)
	}

	// Logging setup
	shortfile := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			s := a.Value.Any().(*slog.Source)
			s.File = path.Base(s.File)
		}
		return a
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		ReplaceAttr: shortfile,
	}))
	if *debug {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			AddSource:   true,
			Level:       slog.LevelDebug,
			TimeFormat:  time.Kitchen,
			ReplaceAttr: shortfile,
		}))
	}
	slog.SetDefault(logger)
	slog.InfoContext(ctx, "Starting skyplan", "version", versioninfo.Short())

	// Metrics setup
	promExporter, err := prometheus.New()
	if err != nil {
		slog.ErrorContext(ctx, "setting up Prometheus exporter", "error", err)
		os.Exit(1)
	}
	meterProvider := metric.NewMeterProvider(metric.WithReader(promExporter))
	otel.SetMeterProvider(meterProvider)

	// Database setup
	if *dev {
		if err := database.StartPostgresContainer(ctx, c.Database.URL); err != nil {
			slog.ErrorContext(ctx, "starting postgres container", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.Pool(ctx, c.Database)
	if err != nil {
		slog.ErrorContext(ctx, "setting up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	queries := database.New(db)

	// Partition files setup
	var filesSource components.PartitionFilesSource
	switch c.FilesSource {
	case sourceCatalog:
		filesSource = partitionfiles.NewCatalog(queries, c.Files)
	case sourceBucket:
		store, err := storage.New(ctx, c.StorageURL)
		if err != nil {
			slog.ErrorContext(ctx, "setting up storage", "error", err)
			os.Exit(1)
		}
		filesSource = partitionfiles.NewBucket(store, c.CompressedSnapshots)
	default:
		slog.ErrorContext(ctx, "unknown files source", "source", c.FilesSource)
		os.Exit(1)
	}

	// Planning setup. Rounds are only planned here; executors commit them.
	comps := &components.Components{
		PartitionFiles: filesSource,
		RoundSplit:     roundsplit.New(),
		Divide:         divide.New(),
	}

	metered, err := roundinfo.NewMetrics(roundinfo.NewLevelBased(c.Plan))
	if err != nil {
		slog.ErrorContext(ctx, "setting up round metrics", "error", err)
		os.Exit(1)
	}
	planner := background.NewPlanner(roundinfo.NewLogging(metered), comps, c.Background)

	// Background jobs setup
	riverClient, err := background.New(db, c.Background, planner)
	if err != nil {
		slog.ErrorContext(ctx, "setting up background jobs", "error", err)
		os.Exit(1)
	}
	if err := riverClient.Start(ctx); err != nil {
		slog.ErrorContext(ctx, "starting background jobs", "error", err)
		os.Exit(1)
	}

	if c.Scheduler.Enabled {
		sched := scheduler.New(c.Scheduler, queries, riverClient)
		go sched.Run(ctx)
		go func() {
			if err := database.Watch(ctx, db, database.FilesChangedChannel, sched.Trigger); err != nil && !errors.Is(err, context.Canceled) {
				slog.ErrorContext(ctx, "watching catalog changes", "error", err)
			}
		}()
	}

	// Create server with h2c support for unencrypted HTTP/2
	server := &http.Server{
		Addr:    c.Addr,
		Handler: h2c.NewHandler(admin.NewRouter(planner, queries), &http2.Server{}),
	}

	go func() {
		slog.InfoContext(ctx, "starting server", "addr", c.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "server error", "error", err)
			os.Exit(1)
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.InfoContext(ctx, "received shutdown signal", "signal", sig)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	slog.InfoContext(ctx, "shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "server shutdown failed", "error", err)
	}

	if err := riverClient.Stop(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "background jobs shutdown failed", "error", err)
	}

	slog.InfoContext(ctx, "shutdown complete")
}
