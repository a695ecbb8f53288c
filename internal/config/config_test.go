package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
pitwall:
  listen:
    host: "127.0.0.1"
    port: 20778
    read_buffer: 4194304
  pipeline:
    buffer_size: 2048
    workers: 4
    drop_policy: "head"
  sinks:
    - name: "console"
      options:
        kinds: ["event", "lap"]
    - name: "stats"
  metrics:
    enabled: true
    listen: "0.0.0.0:9100"
    path: "/metrics"
  log:
    level: "debug"
    pattern: "%time [%level] %msg\n"
    time: "2006-01-02 15:04:05"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Listen.Host != "127.0.0.1" {
		t.Errorf("Expected listen host 127.0.0.1, got %s", cfg.Listen.Host)
	}
	if cfg.Listen.Port != 20778 {
		t.Errorf("Expected listen port 20778, got %d", cfg.Listen.Port)
	}
	if cfg.Listen.ReadBuffer != 4194304 {
		t.Errorf("Expected read buffer 4194304, got %d", cfg.Listen.ReadBuffer)
	}
	if cfg.Pipeline.BufferSize != 2048 {
		t.Errorf("Expected buffer size 2048, got %d", cfg.Pipeline.BufferSize)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.DropPolicy != "head" {
		t.Errorf("Expected drop policy head, got %s", cfg.Pipeline.DropPolicy)
	}
	if len(cfg.Sinks) != 2 || cfg.Sinks[0].Name != "console" || cfg.Sinks[1].Name != "stats" {
		t.Errorf("Expected console and stats sinks, got %v", cfg.Sinks)
	}
	if _, ok := cfg.Sinks[0].Options["kinds"]; !ok {
		t.Errorf("Expected console sink options to survive, got %v", cfg.Sinks[0].Options)
	}
	if cfg.Metrics.Listen != "0.0.0.0:9100" {
		t.Errorf("Expected metrics listen 0.0.0.0:9100, got %s", cfg.Metrics.Listen)
	}
	if cfg.Log == nil || cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %+v", cfg.Log)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if cfg.Listen.Port != 20777 {
		t.Errorf("Expected default port 20777, got %d", cfg.Listen.Port)
	}
	if cfg.Listen.Host != "0.0.0.0" {
		t.Errorf("Expected default host 0.0.0.0, got %s", cfg.Listen.Host)
	}
	if cfg.Pipeline.BufferSize != 1024 {
		t.Errorf("Expected default buffer size 1024, got %d", cfg.Pipeline.BufferSize)
	}
	if cfg.Pipeline.DropPolicy != "tail" {
		t.Errorf("Expected default drop policy tail, got %s", cfg.Pipeline.DropPolicy)
	}
	if len(cfg.Sinks) != 1 || cfg.Sinks[0].Name != "console" {
		t.Errorf("Expected default console sink, got %v", cfg.Sinks)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Listen != ":9091" {
		t.Errorf("Expected default metrics on :9091, got %+v", cfg.Metrics)
	}
	if cfg.Log == nil || cfg.Log.Level != "info" {
		t.Errorf("Expected default log config, got %+v", cfg.Log)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PITWALL_LISTEN_PORT", "30000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Listen.Port != 30000 {
		t.Errorf("Expected env override port 30000, got %d", cfg.Listen.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad port", "pitwall:\n  listen:\n    port: 0\n"},
		{"bad buffer", "pitwall:\n  pipeline:\n    buffer_size: -5\n"},
		{"no workers", "pitwall:\n  pipeline:\n    workers: 0\n"},
		{"bad drop policy", "pitwall:\n  pipeline:\n    drop_policy: \"newest\"\n"},
		{"unnamed sink", "pitwall:\n  sinks:\n    - options:\n        foo: 1\n"},
		{"metrics without listen", "pitwall:\n  metrics:\n    enabled: true\n    listen: \"\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, c.content)); err == nil {
				t.Errorf("Expected validation error, got nil")
			}
		})
	}
}
