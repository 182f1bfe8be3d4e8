// Package config loads the hestia-state daemon configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration.
type Config struct {
	// StatePath is where the entity state snapshot is persisted.
	StatePath string `yaml:"state_path"`

	// QueueBuffer is the per-consumer queue capacity.
	QueueBuffer int `yaml:"queue_buffer"`

	// SaveInterval is how often the state snapshot is written.
	SaveInterval time.Duration `yaml:"save_interval"`

	// Log configures event and console logging.
	Log LogConfig `yaml:"log"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Discovery configures mDNS advertising.
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is the console log level: debug, info, warn, error.
	Level string `yaml:"level"`

	// File is the binary event log path. Empty disables file logging.
	File string `yaml:"file"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled turns the /metrics HTTP endpoint on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the HTTP listen address for /metrics.
	ListenAddress string `yaml:"listen_address"`
}

// DiscoveryConfig configures mDNS service advertising.
type DiscoveryConfig struct {
	// Enabled turns LAN advertising on.
	Enabled bool `yaml:"enabled"`

	// InstanceName is the advertised service instance name.
	// Empty derives a name from the dispatcher instance ID.
	InstanceName string `yaml:"instance_name"`

	// Port is the advertised service port.
	Port int `yaml:"port"`
}

// Default returns the default daemon configuration.
func Default() Config {
	return Config{
		StatePath:    "hestia-state.json",
		QueueBuffer:  64,
		SaveInterval: 30 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:       false,
			ListenAddress: ":9464",
		},
		Discovery: DiscoveryConfig{
			Enabled: false,
			Port:    8920,
		},
	}
}

// Load reads a YAML config file, applying defaults for unset fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.QueueBuffer < 0 {
		return fmt.Errorf("queue_buffer must not be negative")
	}
	if c.Discovery.Enabled && (c.Discovery.Port <= 0 || c.Discovery.Port > 65535) {
		return fmt.Errorf("invalid discovery port %d", c.Discovery.Port)
	}
	return nil
}
