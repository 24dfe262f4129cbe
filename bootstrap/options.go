package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/rest"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	out             io.Writer
	restOptions     []rest.Option
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the application logger instead of building one from the
// logging config. It also becomes the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithOutput sets where the summary is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.out = w
	}
}

// WithRestOptions passes options to the REST client registry.
func WithRestOptions(opts ...rest.Option) Option {
	return func(o *appOptions) {
		o.restOptions = append(o.restOptions, opts...)
	}
}
