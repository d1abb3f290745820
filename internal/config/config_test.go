package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	obserrors "github.com/vango-dev/observable/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graph.Values != DefaultValues {
		t.Errorf("Graph.Values = %d, want %d", cfg.Graph.Values, DefaultValues)
	}
	if cfg.Graph.Fanout != DefaultFanout {
		t.Errorf("Graph.Fanout = %d, want %d", cfg.Graph.Fanout, DefaultFanout)
	}
	if cfg.Writes != DefaultWrites {
		t.Errorf("Writes = %d, want %d", cfg.Writes, DefaultWrites)
	}
	if cfg.Metrics.Addr != DefaultMetricsAddr {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, DefaultMetricsAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !errors.Is(err, obserrors.New("C001")) {
		t.Errorf("Expected C001 for missing config, got %v", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "name": "wide",
  "graph": {
    "values": 64,
    "depth": 2,
    "fanout": 8
  },
  "writes": 500,
  "metrics": {
    "enabled": true
  },
  "log": {
    "level": "debug",
    "format": "json"
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "wide" {
		t.Errorf("Name = %q, want wide", cfg.Name)
	}
	if cfg.Graph.Values != 64 || cfg.Graph.Depth != 2 || cfg.Graph.Fanout != 8 {
		t.Errorf("Graph = %+v", cfg.Graph)
	}
	if cfg.Graph.ArrayLen != DefaultArrayLen {
		t.Errorf("Graph.ArrayLen = %d, want default %d", cfg.Graph.ArrayLen, DefaultArrayLen)
	}
	if cfg.Writes != 500 {
		t.Errorf("Writes = %d, want 500", cfg.Writes)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Addr != DefaultMetricsAddr || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.TracerName != DefaultTracerName {
		t.Errorf("Tracing.TracerName = %q", cfg.Tracing.TracerName)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
	if cfg.Path() != configPath {
		t.Errorf("Path = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, obserrors.New("C002")) {
		t.Fatalf("Expected C002, got %v", err)
	}
}

func TestLoadFile_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"graph": {"values": 2, "depth": 1, "fanout": 5}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, obserrors.New("C003")) {
		t.Fatalf("Expected C003, got %v", err)
	}
	if !strings.Contains(err.Error(), "graph.fanout") {
		t.Errorf("Expected error to name the field, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no values", func(c *Config) { c.Graph.Values = 0 }, true},
		{"negative depth", func(c *Config) { c.Graph.Depth = -1 }, true},
		{"zero depth", func(c *Config) { c.Graph.Depth = 0 }, false},
		{"zero fanout", func(c *Config) { c.Graph.Fanout = 0 }, true},
		{"fanout equals values", func(c *Config) { c.Graph.Fanout = c.Graph.Values }, false},
		{"negative array", func(c *Config) { c.Graph.ArrayLen = -1 }, true},
		{"negative writes", func(c *Config) { c.Writes = -1 }, true},
		{"explosive graph", func(c *Config) { c.Graph.Values = 64; c.Graph.Fanout = 64; c.Graph.Depth = 8 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"warning level", func(c *Config) { c.Log.Level = "WARNING" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"json format", func(c *Config) { c.Log.Format = "JSON" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := Default()
	cfg.Name = "saved"
	cfg.Graph.Depth = 5
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path = %q, want %q", cfg.Path(), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("Expected trailing newline")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Name != "saved" || loaded.Graph.Depth != 5 {
		t.Errorf("Loaded = %+v", loaded)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	cfg.Log.Format = "json"
	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug record to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("Expected JSON record, got %s", out)
	}

	buf.Reset()
	cfg.Log.Format = "text"
	cfg.Log.Level = "error"
	logger = cfg.NewLogger(&buf)
	logger.Warn("hidden")
	logger.Error("failed")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "msg=failed") {
		t.Errorf("Unexpected text output: %s", out)
	}
}
