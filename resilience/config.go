package resilience

import "time"

// Config limits calls to one service. Zero values disable each limit.
type Config struct {
	// Rate is the sustained number of calls per second.
	Rate float64 `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	// Burst is the bucket size. Defaults to Rate rounded up.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
	// MaxConcurrent caps calls in flight.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`
	// MaxWait is how long a call may queue for a concurrency slot. Zero
	// rejects immediately when all slots are taken.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
}

// IsEnabled reports whether any limit is configured. Nil-safe.
func (c *Config) IsEnabled() bool {
	return c != nil && (c.Rate > 0 || c.MaxConcurrent > 0)
}
