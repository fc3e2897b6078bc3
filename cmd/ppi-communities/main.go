package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/config"
	"github.com/dd0wney/cluso-community/pkg/edgelist"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
	"github.com/dd0wney/cluso-community/pkg/report"
)

// errTimeout is returned when the run exceeds -timeout
var errTimeout = errors.New("analysis timed out")

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	edgesPath := flag.String("edges", "", "Edge list file (overrides input.path)")
	outPath := flag.String("out", "", "Report file, .sz for snappy compressed (overrides output.path)")
	textfile := flag.String("metrics-textfile", "", "Prometheus textfile collector output (overrides output.metrics_textfile)")
	resolution := flag.Float64("resolution", -1, "Louvain resolution (overrides louvain.resolution)")
	workers := flag.Int("workers", -1, "Metric workers, 0 for all CPUs (overrides metrics.workers)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")
	noMetrics := flag.Bool("no-metrics", false, "Skip degree, betweenness and transitivity")
	timeout := flag.Duration("timeout", 0, "Abort the run after this long (0 = no limit)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *edgesPath != "" {
		cfg.Input.Path = *edgesPath
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *textfile != "" {
		cfg.Output.MetricsTextfile = *textfile
	}
	if *resolution >= 0 {
		cfg.Louvain.Resolution = *resolution
	}
	if *workers >= 0 {
		cfg.Metrics.Workers = *workers
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *noMetrics {
		cfg.Metrics.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration:\n%v\n", err)
		os.Exit(1)
	}
	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: an edge list is required (-edges or input.path)")
		flag.Usage()
		os.Exit(1)
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logger := logging.NewDefaultLogger()
	logger.SetLevel(level)
	logging.SetDefaultLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if err := runWithContext(ctx, cfg, logger, os.Stdout, os.Stderr); err != nil {
		logger.Error("run failed", logging.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runWithContext runs the analysis in the background and gives up when ctx
// ends. The engine itself is not interruptible, so an abandoned run keeps
// its goroutine until the process exits.
func runWithContext(ctx context.Context, cfg *config.Config, logger logging.Logger, stdout, stderr io.Writer) error {
	done := make(chan error, 1)
	go func() {
		done <- run(cfg, logger, stdout, stderr)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errTimeout
		}
		return ctx.Err()
	}
}

// run loads the edge list, detects communities, collects node metrics and
// writes the report.
func run(cfg *config.Config, logger logging.Logger, stdout, stderr io.Writer) error {
	reg := metrics.NewRegistry()

	loadStart := time.Now()
	g, stats, err := edgelist.ReadFile(cfg.Input.Path, cfg.EdgeListOptions())
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Input.Path, err)
	}
	reg.RecordGraph(g.NodeCount(), g.EdgeCount(), g.TotalEdgeWeight(), time.Since(loadStart))
	logger.Info("edge list loaded",
		logging.String("path", cfg.Input.Path),
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Int("lines", stats.Lines),
		logging.Int("skipped_self_loops", stats.SkippedSelfLoops),
		logging.Latency(time.Since(loadStart)))

	result, err := community.DetectCommunities(g, cfg.LouvainOptions(logger, reg))
	if err != nil {
		return fmt.Errorf("detect communities: %w", err)
	}

	var nodeMetrics *algorithms.NodeMetrics
	if cfg.Metrics.Enabled {
		nodeMetrics, err = algorithms.Collect(g, cfg.CollectOptions(logger, reg))
		if err != nil {
			return fmt.Errorf("collect metrics: %w", err)
		}
	}

	rep := report.New(cfg.Input.Path, g, result, nodeMetrics, cfg.Metrics.TopN)
	logger = logger.With(logging.RunID(rep.RunID))

	summaryOut := stdout
	if cfg.Output.Path == "" {
		if err := rep.Encode(stdout, false); err != nil {
			return err
		}
		summaryOut = stderr
	} else {
		if err := rep.WriteFile(cfg.Output.Path); err != nil {
			return err
		}
		logger.Info("report written", logging.String("path", cfg.Output.Path))
	}

	if cfg.Output.Summary {
		fmt.Fprintln(summaryOut, report.RenderSummary(rep, cfg.Metrics.TopN))
	}

	if cfg.Output.MetricsTextfile != "" {
		if err := reg.WriteTextfile(cfg.Output.MetricsTextfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		logger.Debug("metrics textfile written", logging.String("path", cfg.Output.MetricsTextfile))
	}
	return nil
}
