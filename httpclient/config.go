package httpclient

import (
	"fmt"
	"time"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultDialTimeout = 30 * time.Second
)

// Config configures the transport.
type Config struct {
	// Timeout applies to a request that carries no timeout of its own.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// DialTimeout caps connection setup. The request timeout still bounds it.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`

	// TLS configures the transport's TLS settings.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// UserAgent is sent when a request does not set its own.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// FollowRedirects makes the client follow 3xx responses.
	// Redirects are returned as-is by default.
	FollowRedirects bool `yaml:"follow_redirects" mapstructure:"follow_redirects"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return c.TLS.Validate()
}
