package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/kobo-uploader/internal/common"
	"github.com/joseph-ayodele/kobo-uploader/internal/dispatch"
	"github.com/joseph-ayodele/kobo-uploader/internal/payload"
	"github.com/joseph-ayodele/kobo-uploader/internal/scheduler"
	"github.com/joseph-ayodele/kobo-uploader/internal/source"
	"github.com/joseph-ayodele/kobo-uploader/internal/submit"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		configPath = flag.String("config", "config.json", "path to JSON config file")
		mapping    = flag.String("mapping", "", "override the configured field-mapping variant")
		dryRun     = flag.Bool("dry-run", false, "build payloads but skip the network")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration; any failure here is fatal before a single submission.
	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if *mapping != "" {
		cfg.Mapping = *mapping
	}

	m, err := payload.MappingByName(cfg.Mapping)
	if err != nil {
		logger.Error("failed to resolve mapping", "mapping", cfg.Mapping, "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	// Credential resolution: explicit token, token map lookup, then env.
	var sender dispatch.Sender
	if *dryRun {
		sender = submit.NewDryRun(logger)
		logger.Info("dry run: no requests will be sent")
	} else {
		token, err := cfg.ResolveToken()
		if err != nil {
			logger.Error("failed to resolve api token", "error", err)
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		sender = submit.NewRequester(submit.Config{
			Endpoint:      cfg.Endpoint,
			Token:         token,
			MaxRetries:    cfg.MaxRetries,
			BackoffFactor: cfg.BackoffFactor,
			Timeout:       cfg.RequestTimeout(),
		}, logger)
	}

	// Load the record set; a missing or unreadable source is fatal.
	records, err := source.Load(cfg.DataSourcePath, logger)
	if err != nil {
		logger.Error("failed to load data source", "path", cfg.DataSourcePath, "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	builder := payload.NewBuilder(m, cfg.ProjectUUID)
	dispatcher := dispatch.NewDispatcher(sender, builder, logger,
		dispatch.WithWorkers(cfg.ConcurrencyLevel))

	sched, err := scheduler.New(dispatcher, cfg.BatchSize, cfg.InterBatchPause(), logger)
	if err != nil {
		logger.Error("failed to build scheduler", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting upload",
		"source", cfg.DataSourcePath,
		"records", len(records),
		"mapping", m.Name,
		"batch_size", cfg.BatchSize,
		"concurrency_level", cfg.ConcurrencyLevel,
	)

	stats, err := sched.Run(ctx, records)
	if err != nil {
		// Interrupted mid-run; report what completed before the signal.
		logger.Warn("run interrupted", "error", err,
			"succeeded", stats.Succeeded, "failed", stats.Failed)
	}

	// Record-level failures are already logged per outcome; the process
	// still exits 0 because the run itself completed.
	fmt.Printf("Upload complete!\n")
	fmt.Printf("- Records: %d\n", stats.Total)
	fmt.Printf("- Batches: %d\n", stats.Batches)
	fmt.Printf("- Succeeded: %d\n", stats.Succeeded)
	fmt.Printf("- Failed: %d\n", stats.Failed)
	fmt.Printf("- Elapsed: %s\n", stats.Elapsed)
}
