package instrument

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/observable/pkg/observable"
)

// anonymous labels cells created without observable.WithName.
const anonymous = "anonymous"

// MetricsConfig configures the Prometheus hooks.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "observable").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for evaluation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hooks.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "observable",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is the Prometheus implementation of observable.Hooks.
type Metrics struct {
	notificationsTotal *prometheus.CounterVec
	listenersNotified  *prometheus.CounterVec
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	dependencies       *prometheus.GaugeVec
}

// defaultMetrics is shared by every Prometheus call that registers with
// prometheus.DefaultRegisterer, which rejects duplicate collectors.
var (
	defaultMetrics   *Metrics
	defaultMetricsMu sync.Mutex
)

func newMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of notification passes",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		listenersNotified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_notified_total",
			Help:        "Total number of listener calls made by notification passes",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		evaluationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "evaluations_total",
			Help:        "Total number of computed cell evaluations",
			ConstLabels: config.ConstLabels,
		}, []string{"cell", "status"}),

		evaluationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "evaluation_duration_seconds",
			Help:        "Computed cell evaluation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"cell"}),

		dependencies: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dependencies",
			Help:        "Number of dependencies collected by the last evaluation",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),
	}
}

// Prometheus creates hooks that record cell activity as Prometheus metrics.
//
// Metrics are registered with the configured registry when Prometheus is
// called. With the default registry the metrics are created once and shared
// by later calls; pass WithRegistry to get an independent set.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	if config.Registry != prometheus.DefaultRegisterer {
		return newMetrics(config)
	}

	defaultMetricsMu.Lock()
	defer defaultMetricsMu.Unlock()
	if defaultMetrics == nil {
		defaultMetrics = newMetrics(config)
	}
	return defaultMetrics
}

// OnNotify counts the pass and the listeners it reached.
func (m *Metrics) OnNotify(cell observable.Source, listeners int) {
	label := cellLabel(cell)
	m.notificationsTotal.WithLabelValues(label).Inc()
	m.listenersNotified.WithLabelValues(label).Add(float64(listeners))
}

// OnEvaluate times the evaluation and records its outcome.
func (m *Metrics) OnEvaluate(cell observable.Source) func(int, error) {
	label := cellLabel(cell)
	start := time.Now()

	return func(deps int, err error) {
		m.evaluationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "panic"
		} else {
			m.dependencies.WithLabelValues(label).Set(float64(deps))
		}
		m.evaluationsTotal.WithLabelValues(label, status).Inc()
	}
}

// cellLabel returns the metric label for cell.
func cellLabel(cell observable.Source) string {
	if name := cell.Name(); name != "" {
		return name
	}
	return anonymous
}

var _ observable.Hooks = (*Metrics)(nil)
