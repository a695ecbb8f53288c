// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"blackflag.dev/pitwall/internal/log"
)

// Config is the top-level static configuration. It maps to the
// `pitwall:` root key in YAML; environment variables use the PITWALL_
// prefix (e.g. PITWALL_LISTEN_PORT).
type Config struct {
	Listen   ListenConfig      `mapstructure:"listen" yaml:"listen"`
	Replay   ReplayConfig      `mapstructure:"replay" yaml:"replay"`
	Pipeline PipelineConfig    `mapstructure:"pipeline" yaml:"pipeline"`
	Sinks    []SinkConfig      `mapstructure:"sinks" yaml:"sinks"`
	Metrics  MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	Log      *log.LoggerConfig `mapstructure:"log" yaml:"log"`
}

// ListenConfig configures the UDP capture socket.
type ListenConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	// Multicast is an optional group address to join on the listen
	// interface, for setups broadcasting telemetry to several boxes.
	Multicast string `mapstructure:"multicast" yaml:"multicast"`

	// ReadBuffer is the socket receive buffer size in bytes.
	ReadBuffer int `mapstructure:"read_buffer" yaml:"read_buffer"`
}

// ReplayConfig configures capture-file replay.
type ReplayConfig struct {
	// Port filters the capture to datagrams addressed to this UDP port.
	Port int `mapstructure:"port" yaml:"port"`

	// Realtime replays with the capture's original inter-packet gaps
	// instead of as fast as possible.
	Realtime bool `mapstructure:"realtime" yaml:"realtime"`
}

// PipelineConfig configures the decode pipeline.
type PipelineConfig struct {
	// BufferSize is the capacity of the channel between capture and
	// decode.
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`

	// Workers is the decode parallelism. More than one worker trades
	// packet ordering at the sinks for throughput.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// DropPolicy picks which datagram loses when the buffer is full:
	// "tail" drops the incoming one, "head" evicts the oldest.
	DropPolicy string `mapstructure:"drop_policy" yaml:"drop_policy"`
}

// SinkConfig selects one output sink by name with sink-specific options.
type SinkConfig struct {
	Name    string                 `mapstructure:"name" yaml:"name"`
	Options map[string]interface{} `mapstructure:"options" yaml:"options"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// configRoot is the top-level wrapper matching the YAML structure
// `pitwall: ...`.
type configRoot struct {
	Pitwall Config `mapstructure:"pitwall" yaml:"pitwall"`
}

// Load loads configuration from path, layering environment variables and
// defaults underneath. An empty path skips the file and uses defaults
// and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The `pitwall.` key prefix maps to PITWALL_ env vars through the
	// key replacer, e.g. "pitwall.listen.port" -> PITWALL_LISTEN_PORT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Pitwall

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values. All keys use the "pitwall." prefix to
// match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("pitwall.listen.host", "0.0.0.0")
	v.SetDefault("pitwall.listen.port", 20777)
	v.SetDefault("pitwall.listen.read_buffer", 1048576)

	v.SetDefault("pitwall.replay.port", 20777)
	v.SetDefault("pitwall.replay.realtime", false)

	v.SetDefault("pitwall.pipeline.buffer_size", 1024)
	v.SetDefault("pitwall.pipeline.workers", 1)
	v.SetDefault("pitwall.pipeline.drop_policy", "tail")

	v.SetDefault("pitwall.metrics.enabled", true)
	v.SetDefault("pitwall.metrics.listen", ":9091")
	v.SetDefault("pitwall.metrics.path", "/metrics")
}

// ValidateAndApplyDefaults validates the configuration and fills the
// pieces viper defaults cannot express.
func (cfg *Config) ValidateAndApplyDefaults() error {
	if cfg.Listen.Port < 1 || cfg.Listen.Port > 65535 {
		return fmt.Errorf("invalid listen.port: %d", cfg.Listen.Port)
	}
	if cfg.Replay.Port < 1 || cfg.Replay.Port > 65535 {
		return fmt.Errorf("invalid replay.port: %d", cfg.Replay.Port)
	}
	if cfg.Pipeline.BufferSize < 1 {
		return fmt.Errorf("invalid pipeline.buffer_size: %d", cfg.Pipeline.BufferSize)
	}
	if cfg.Pipeline.Workers < 1 {
		return fmt.Errorf("invalid pipeline.workers: %d", cfg.Pipeline.Workers)
	}
	if p := cfg.Pipeline.DropPolicy; p != "tail" && p != "head" {
		return fmt.Errorf("pipeline.drop_policy must be 'tail' or 'head', got %q", p)
	}

	for i, s := range cfg.Sinks {
		if s.Name == "" {
			return fmt.Errorf("sinks[%d]: name is required", i)
		}
	}
	if len(cfg.Sinks) == 0 {
		cfg.Sinks = []SinkConfig{{Name: "console"}}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		return fmt.Errorf("metrics.listen is required when metrics.enabled=true")
	}

	if cfg.Log == nil {
		cfg.Log = log.DefaultConfig()
	}
	return nil
}
