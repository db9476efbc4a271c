// Package config loads the healthd YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/healthstatus/health"
	"github.com/jonwraymond/healthstatus/observe"
	"github.com/jonwraymond/healthstatus/secret"
)

// Duration is a time.Duration that unmarshals from a YAML string like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	d.Duration = dur
	return nil
}

// Check types.
const (
	CheckTCP    = "tcp"
	CheckHTTP   = "http"
	CheckMemory = "memory"
)

// CheckConfig describes one registered check.
type CheckConfig struct {
	Name              string            `yaml:"name"`
	Type              string            `yaml:"type"`
	Target            string            `yaml:"target"`
	Timeout           Duration          `yaml:"timeout"`
	ExpectedStatus    int               `yaml:"expected_status"`
	Headers           map[string]string `yaml:"headers"`
	CriticalThreshold float64           `yaml:"critical_threshold"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string   `yaml:"address"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// RefreshRate and RefreshBurst throttle POST /health/refresh.
	// A zero RefreshRate leaves the endpoint unthrottled.
	RefreshRate  float64 `yaml:"refresh_rate"`
	RefreshBurst int     `yaml:"refresh_burst"`
}

// HealthConfig holds aggregator settings.
type HealthConfig struct {
	ExpirationWindow Duration `yaml:"expiration_window"`
}

// ObserveConfig holds telemetry settings.
type ObserveConfig struct {
	ServiceName string `yaml:"service_name"`
	Tracing     struct {
		Enabled   bool    `yaml:"enabled"`
		Exporter  string  `yaml:"exporter"`
		SamplePct float64 `yaml:"sample_pct"`
	} `yaml:"tracing"`
	Metrics struct {
		Enabled  bool   `yaml:"enabled"`
		Exporter string `yaml:"exporter"`
	} `yaml:"metrics"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// AuthConfig protects the refresh endpoint. An empty SigningKey leaves it open.
type AuthConfig struct {
	SigningKey string `yaml:"signing_key"`
	Issuer     string `yaml:"issuer"`
	Audience   string `yaml:"audience"`
}

// Config is the root healthd configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Health  HealthConfig  `yaml:"health"`
	Checks  []CheckConfig `yaml:"checks"`
	Observe ObserveConfig `yaml:"observe"`
	Auth    AuthConfig    `yaml:"auth"`
}

var validTypes = map[string]bool{
	CheckTCP:    true,
	CheckHTTP:   true,
	CheckMemory: true,
}

// Load reads, expands, parses, and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references in data, decodes it, applies defaults and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded, err := secret.ExpandEnvStrict(string(data))
	if err != nil {
		return nil, fmt.Errorf("expanding config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		c.Server.ShutdownTimeout.Duration = 30 * time.Second
	}
	if c.Health.ExpirationWindow.Duration <= 0 {
		c.Health.ExpirationWindow.Duration = health.DefaultExpirationWindow
	}
	if c.Observe.ServiceName == "" {
		c.Observe.ServiceName = "healthd"
	}
	if c.Observe.Logging.Level == "" {
		c.Observe.Logging.Level = "info"
	}
	if c.Server.RefreshRate > 0 && c.Server.RefreshBurst <= 0 {
		c.Server.RefreshBurst = 1
	}
	for i := range c.Checks {
		if c.Checks[i].Timeout.Duration <= 0 {
			c.Checks[i].Timeout.Duration = 5 * time.Second
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.RefreshRate < 0 {
		return fmt.Errorf("server: refresh_rate must not be negative")
	}

	seen := make(map[string]bool, len(c.Checks))
	for i, chk := range c.Checks {
		if chk.Name == "" {
			return fmt.Errorf("checks[%d]: name is required", i)
		}
		if seen[chk.Name] {
			return fmt.Errorf("checks[%d]: duplicate name %q", i, chk.Name)
		}
		seen[chk.Name] = true

		if !validTypes[chk.Type] {
			return fmt.Errorf("check %q: unknown type %q", chk.Name, chk.Type)
		}
		if chk.Type != CheckMemory && chk.Target == "" {
			return fmt.Errorf("check %q: target is required", chk.Name)
		}
		if chk.CriticalThreshold < 0 || chk.CriticalThreshold >= 1 {
			return fmt.Errorf("check %q: critical_threshold must be in [0, 1)", chk.Name)
		}
	}

	obs := c.ObserveConfig()
	if err := obs.Validate(); err != nil {
		return fmt.Errorf("observe: %w", err)
	}
	return nil
}

// ObserveConfig converts the telemetry section into an observe.Config.
// Logging is always enabled for the daemon.
func (c *Config) ObserveConfig() observe.Config {
	return observe.Config{
		ServiceName: c.Observe.ServiceName,
		Tracing: observe.TracingConfig{
			Enabled:   c.Observe.Tracing.Enabled,
			Exporter:  c.Observe.Tracing.Exporter,
			SamplePct: c.Observe.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Observe.Metrics.Enabled,
			Exporter: c.Observe.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.Observe.Logging.Level,
		},
	}
}
