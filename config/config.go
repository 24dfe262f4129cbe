package config

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/resilience"
	"github.com/kbukum/gorest/validation"
)

// DefaultTimeoutKey is the timeout table entry used when no path matches.
const DefaultTimeoutKey = "default"

// Config is the full application configuration.
type Config struct {
	BaseConfig    `yaml:",inline" mapstructure:",squash"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Rest          RestConfig          `yaml:"rest" mapstructure:"rest"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// AppConfig holds per-application sections. Only the REST service map is
// read by this module.
type AppConfig struct {
	Rest map[string]ServiceConfig `yaml:"rest" mapstructure:"rest" validate:"dive"`
}

// ServiceConfig describes one remote REST service.
type ServiceConfig struct {
	URL          string                `yaml:"url" mapstructure:"url" validate:"required,http_url"`
	Path         string                `yaml:"path" mapstructure:"path"`
	Version      string                `yaml:"version" mapstructure:"version"`
	ClientID     string                `yaml:"client_id" mapstructure:"client_id" validate:"required_with=ClientSecret"`
	ClientSecret string                `yaml:"client_secret" mapstructure:"client_secret" validate:"required_with=ClientID"`
	Headers      map[string]string     `yaml:"headers" mapstructure:"headers"`
	TLS          *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls"`
	Limits       *resilience.Config    `yaml:"limits" mapstructure:"limits"`
}

// HasCredentials reports whether requests should be signed.
func (s ServiceConfig) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// PathSegments splits the configured base path into non-empty segments.
func (s ServiceConfig) PathSegments() []string {
	var out []string
	for seg := range strings.SplitSeq(s.Path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Validate checks a single service entry.
func (s ServiceConfig) Validate() error {
	if err := validation.Struct(s); err != nil {
		return err
	}
	return s.TLS.Validate()
}

// RestConfig holds settings shared by every REST service.
type RestConfig struct {
	Timeout TimeoutTable `yaml:"timeout" mapstructure:"timeout"`
}

// TimeoutTable maps an exact request path (e.g. "/users/5") to a timeout in
// seconds. The "default" key applies when no path matches.
type TimeoutTable map[string]float64

// Lookup returns the timeout configured for exactly path. Non-positive
// entries count as absent. Matching is case-sensitive.
func (t TimeoutTable) Lookup(path string) (time.Duration, bool) {
	return t.seconds(path)
}

// Resolve returns the path timeout, then the default entry, then fallback.
func (t TimeoutTable) Resolve(path string, fallback time.Duration) time.Duration {
	if d, ok := t.Lookup(path); ok {
		return d
	}
	if d, ok := t.seconds(DefaultTimeoutKey); ok {
		return d
	}
	return fallback
}

func (t TimeoutTable) seconds(key string) (time.Duration, bool) {
	v, ok := t[key]
	if !ok || v <= 0 {
		return 0, false
	}
	return time.Duration(v * float64(time.Second)), true
}

// restoreRawKeys puts back the case of timeout paths as written in the
// config file. Values already decoded win, so environment overrides of a
// lower-case path still apply.
func (c *Config) restoreRawKeys(data []byte) error {
	var raw struct {
		Rest struct {
			Timeout map[string]float64 `yaml:"timeout"`
		} `yaml:"rest"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, seconds := range raw.Rest.Timeout {
		lower := strings.ToLower(key)
		if key == lower {
			continue
		}
		if v, ok := c.Rest.Timeout[lower]; ok {
			if _, exact := raw.Rest.Timeout[lower]; !exact {
				delete(c.Rest.Timeout, lower)
				seconds = v
			}
		}
		if c.Rest.Timeout == nil {
			c.Rest.Timeout = TimeoutTable{}
		}
		c.Rest.Timeout[key] = seconds
	}
	return nil
}

// ObservabilityConfig configures OTLP export. Empty endpoints disable export.
type ObservabilityConfig struct {
	TracingEndpoint string        `yaml:"tracing_endpoint" mapstructure:"tracing_endpoint"`
	MetricsEndpoint string        `yaml:"metrics_endpoint" mapstructure:"metrics_endpoint"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	MetricsInterval time.Duration `yaml:"metrics_interval" mapstructure:"metrics_interval"`
}

// Service returns the configuration for name. Viper lower-cases map keys,
// so a case-insensitive match is tried after the exact one.
func (c *Config) Service(name string) (ServiceConfig, bool) {
	if s, ok := c.App.Rest[name]; ok {
		return s, true
	}
	s, ok := c.App.Rest[strings.ToLower(name)]
	return s, ok
}

// Timeouts returns the shared timeout table.
func (c *Config) Timeouts() TimeoutTable {
	return c.Rest.Timeout
}

// ServiceNames lists configured service names.
func (c *Config) ServiceNames() []string {
	names := make([]string, 0, len(c.App.Rest))
	for name := range c.App.Rest {
		names = append(names, name)
	}
	return names
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1
	}
	if c.Observability.MetricsInterval <= 0 {
		c.Observability.MetricsInterval = 15 * time.Second
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := validation.Struct(c); err != nil {
		return err
	}
	for name, svc := range c.App.Rest {
		if err := svc.TLS.Validate(); err != nil {
			return fmt.Errorf("app.rest[%s]: %w", name, err)
		}
	}
	return nil
}

// Load reads, defaults and validates the configuration for name.
func Load(name string, opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
