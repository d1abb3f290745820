package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/observable/internal/bench"
	"github.com/vango-dev/observable/internal/config"
	"github.com/vango-dev/observable/internal/errors"
	"github.com/vango-dev/observable/pkg/instrument"
	"github.com/vango-dev/observable/pkg/observable"
)

type runOptions struct {
	configPath  string
	writes      int
	metricsAddr string
	jsonOutput  bool
	hold        bool
}

func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the graph and perform the configured writes",
		Long: `Build the cell graph described by the configuration and perform
its writes, alternating source increments with array pushes.

Without --config, observable-bench.json is read from the current
directory if present; otherwise the defaults are used.

Examples:
  observable-bench run
  observable-bench run --config bench/wide.json --writes 100000
  observable-bench run --metrics-addr :9090 --hold`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBench(ctx, cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to "+config.ConfigFileName+" or its directory")
	cmd.Flags().IntVarP(&opts.writes, "writes", "n", 0, "Number of writes (overrides config)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (enables metrics)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&opts.hold, "hold", false, "Keep serving metrics after the run until interrupted")

	return cmd
}

// resolveConfig loads the configuration and applies flag overrides.
func resolveConfig(cmd *cobra.Command, opts runOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case opts.configPath == "":
		cfg, err = config.Load(".")
		if errors.HasCode(err, "C001") {
			cfg, err = config.Default(), nil
		}
	case isDir(opts.configPath):
		cfg, err = config.Load(opts.configPath)
	default:
		cfg, err = config.LoadFile(opts.configPath)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("writes") {
		if opts.writes < 0 {
			return nil, errors.New("C040").WithDetailf("--writes must not be negative, got %d", opts.writes)
		}
		cfg.Writes = opts.writes
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if opts.hold && !cfg.Metrics.Enabled {
		return nil, errors.New("C040").
			WithDetail("--hold requires metrics to be enabled").
			WithSuggestion("Pass --metrics-addr or set metrics.enabled in the config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBench(ctx context.Context, out io.Writer, cfg *config.Config, opts runOptions) error {
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	var hooks []observable.Hooks
	serveErr := make(chan error, 1)

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		hooks = append(hooks, instrument.Prometheus(
			instrument.WithRegistry(reg),
			instrument.WithNamespace(cfg.Metrics.Namespace),
			instrument.WithConstLabels(prometheus.Labels{"run": cfg.Name}),
		))

		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			serveErr <- bench.ServeMetrics(serveCtx, cfg.Metrics.Addr, reg, logger)
		}()
	}
	if cfg.Tracing.Enabled {
		hooks = append(hooks, instrument.OpenTelemetry(
			instrument.WithTracerName(cfg.Tracing.TracerName),
			instrument.WithParentContext(ctx),
		))
	}
	if cfg.Level() <= slog.LevelDebug {
		hooks = append(hooks, instrument.Logger(logger))
	}

	report, err := bench.Run(ctx, cfg, bench.Options{
		Hooks:  instrument.Chain(hooks...),
		Logger: logger,
	})
	if err != nil && report.Writes == 0 {
		return err
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
	} else {
		printReport(out, report)
	}
	if err != nil {
		return err
	}

	if opts.hold {
		info(out, "Serving metrics on %s, press Ctrl+C to stop", cfg.Metrics.Addr)
		select {
		case <-ctx.Done():
			return nil
		case err := <-serveErr:
			return err
		}
	}

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

func printReport(out io.Writer, r bench.Report) {
	success(out, "Run %q finished", r.Name)
	info(out, "Cells:          %d", r.Cells)
	info(out, "Writes:         %d (%.0f/s)", r.Writes, r.WritesPerSecond())
	info(out, "Evaluations:    %d", r.Evaluations)
	info(out, "Notifications:  %d (%d listener calls)", r.Notifications, r.Listeners)
	info(out, "Top:            %d", r.Top)
	info(out, "Items total:    %d", r.ItemsTotal)
	info(out, "Duration:       %s", r.Duration)
	if !r.Consistent() {
		warn(out, "Top value %d does not match expected %d", r.Top, r.Expected)
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
