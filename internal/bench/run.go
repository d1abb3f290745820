package bench

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vango-dev/observable/internal/config"
	"github.com/vango-dev/observable/internal/errors"
	"github.com/vango-dev/observable/pkg/instrument"
	"github.com/vango-dev/observable/pkg/observable"
)

// Options configures a run.
type Options struct {
	// Hooks are installed on the run's tracker next to the run's own
	// counters. May be nil.
	Hooks observable.Hooks

	// Logger is used by the tracker and for progress records.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Report summarises a run.
type Report struct {
	Name          string        `json:"name"`
	Cells         int           `json:"cells"`
	Writes        int           `json:"writes"`
	Evaluations   uint64        `json:"evaluations"`
	Failures      uint64        `json:"failures"`
	Notifications uint64        `json:"notifications"`
	Listeners     uint64        `json:"listenersNotified"`
	Top           int           `json:"top"`
	Expected      int           `json:"expected"`
	ItemsTotal    int           `json:"itemsTotal"`
	Duration      time.Duration `json:"durationNs"`
}

// Consistent reports whether the top cell matched the source values when the
// run ended.
func (r Report) Consistent() bool {
	return r.Top == r.Expected
}

// WritesPerSecond returns the write throughput of the run.
func (r Report) WritesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Writes) / r.Duration.Seconds()
}

// counters is a Hooks implementation that counts activity.
type counters struct {
	evaluations   atomic.Uint64
	failures      atomic.Uint64
	notifications atomic.Uint64
	listeners     atomic.Uint64
}

func (c *counters) OnNotify(_ observable.Source, listeners int) {
	c.notifications.Add(1)
	c.listeners.Add(uint64(listeners))
}

func (c *counters) OnEvaluate(observable.Source) func(int, error) {
	return func(_ int, err error) {
		if err != nil {
			c.failures.Add(1)
			return
		}
		c.evaluations.Add(1)
	}
}

// Run builds the graph described by cfg and performs cfg.Writes writes,
// alternating an increment of the next source value with a push onto the
// array. It stops early when ctx is cancelled and returns the partial report
// together with the context error.
func Run(ctx context.Context, cfg *config.Config, opts Options) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var count counters
	tracker := observable.NewTracker(
		observable.WithHooks(instrument.Chain(&count, opts.Hooks)),
		observable.WithLogger(logger),
	)

	g := Build(cfg, tracker)
	defer g.Release()

	logger.Info("bench: graph built",
		"name", cfg.Name,
		"cells", g.Cells(),
		"depth", len(g.Layers),
		"fanout", cfg.Graph.Fanout,
	)

	report := Report{
		Name:  cfg.Name,
		Cells: g.Cells(),
	}

	// Construction is not part of the measurement.
	baseEvaluations := count.evaluations.Load()
	baseNotifications := count.notifications.Load()
	baseListeners := count.listeners.Load()

	start := time.Now()
	var runErr error
	for i := 0; i < cfg.Writes; i++ {
		if err := ctx.Err(); err != nil {
			runErr = errors.New("C042").Wrap(err).WithDetailf("stopped after %d of %d writes", i, cfg.Writes)
			break
		}
		if i%2 == 0 {
			g.Values[(i/2)%len(g.Values)].Increment()
		} else {
			g.Items.Push(i)
		}
		report.Writes++
	}
	report.Duration = time.Since(start)

	report.Evaluations = count.evaluations.Load() - baseEvaluations
	report.Failures = count.failures.Load()
	report.Notifications = count.notifications.Load() - baseNotifications
	report.Listeners = count.listeners.Load() - baseListeners
	report.Top = g.Top.Peek()
	report.Expected = g.Expected()
	report.ItemsTotal = g.ItemsTotal.Peek()

	logger.Info("bench: run finished",
		"name", cfg.Name,
		"writes", report.Writes,
		"evaluations", report.Evaluations,
		"notifications", report.Notifications,
		"duration", report.Duration,
	)
	if !report.Consistent() {
		logger.Warn("bench: top value does not match sources",
			"top", report.Top,
			"expected", report.Expected,
		)
	}

	return report, runErr
}
