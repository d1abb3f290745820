package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/observable/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "observable-bench.json"

	// DefaultValues is the default number of source value cells.
	DefaultValues = 16

	// DefaultDepth is the default number of computed layers.
	DefaultDepth = 3

	// DefaultFanout is the default number of cells each computed cell reads.
	DefaultFanout = 4

	// DefaultArrayLen is the default initial length of the array cell.
	DefaultArrayLen = 8

	// DefaultWrites is the default number of writes per run.
	DefaultWrites = 1000

	// DefaultMetricsAddr is the default metrics listen address.
	DefaultMetricsAddr = ":9090"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "observable"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "observable"

	// maxEvaluationsPerWrite bounds fanout^depth. Propagation is eager, so a
	// single write re-evaluates every path from the written cell to the top.
	maxEvaluationsPerWrite = 1 << 20
)

// Config represents the complete observable-bench.json configuration.
type Config struct {
	// Name labels the run in reports and metrics.
	Name string `json:"name,omitempty"`

	// Graph describes the dependency graph to build.
	Graph GraphConfig `json:"graph"`

	// Writes is the number of writes a run performs.
	Writes int `json:"writes"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing"`

	// Log contains logging configuration.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// GraphConfig describes the bench dependency graph.
type GraphConfig struct {
	// Values is the number of source value cells, and the width of every
	// computed layer.
	Values int `json:"values"`

	// Depth is the number of computed layers above the values.
	Depth int `json:"depth"`

	// Fanout is the number of cells of the previous layer each computed cell
	// sums.
	Fanout int `json:"fanout"`

	// ArrayLen is the initial length of the array cell.
	ArrayLen int `json:"arrayLen"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled installs the Prometheus hooks.
	Enabled bool `json:"enabled,omitempty"`

	// Addr is the address the /metrics endpoint listens on.
	Addr string `json:"addr,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled installs the OpenTelemetry hooks.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName is the name of the tracer.
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// Default creates a new Config with default values.
func Default() *Config {
	return &Config{
		Name: "default",
		Graph: GraphConfig{
			Values:   DefaultValues,
			Depth:    DefaultDepth,
			Fanout:   DefaultFanout,
			ArrayLen: DefaultArrayLen,
		},
		Writes: DefaultWrites,
		Metrics: MetricsConfig{
			Addr:      DefaultMetricsAddr,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for observable-bench.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields absent
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run without --config to use the defaults, or create the file")
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty string fields.
func (c *Config) applyDefaults() {
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	g := c.Graph
	switch {
	case g.Values < 1:
		return invalid("graph.values must be at least 1")
	case g.Depth < 0:
		return invalid("graph.depth must not be negative")
	case g.Fanout < 1 || g.Fanout > g.Values:
		return invalid("graph.fanout must be between 1 and graph.values")
	case g.ArrayLen < 0:
		return invalid("graph.arrayLen must not be negative")
	case c.Writes < 0:
		return invalid("writes must not be negative")
	}

	paths := 1
	for i := 0; i < g.Depth; i++ {
		paths *= g.Fanout
		if paths > maxEvaluationsPerWrite {
			return invalid("graph.fanout^graph.depth is too large").
				WithSuggestion("Lower graph.depth or graph.fanout")
		}
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return invalid("log.level must be one of debug, info, warn, error")
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return invalid("log.format must be text or json")
	}
	return nil
}

func invalid(detail string) *errors.ObservableError {
	return errors.New("C003").WithDetail(detail)
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// NewLogger returns a logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
