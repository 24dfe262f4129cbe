package rest

import (
	"context"
	"maps"

	"github.com/kbukum/gorest/config"
	"github.com/kbukum/gorest/cookie"
	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/observability"
)

// Transport issues one HTTP exchange. *httpclient.Adapter implements it.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}

// Option configures a Registry or a single client built by it. Options
// given to Registry.Of only apply when the client is first built.
type Option func(*options)

type options struct {
	log        *logger.Logger
	transport  Transport
	metrics    *observability.CallMetrics
	jar        *cookie.Jar
	jarOptions []cookie.Option
	headers    map[string]string
	timeouts   config.TimeoutTable
}

func (o options) with(opts []Option) options {
	o.jarOptions = append([]cookie.Option(nil), o.jarOptions...)
	o.headers = maps.Clone(o.headers)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger for request and response events.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithMetrics records call counts and latency.
func WithMetrics(m *observability.CallMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithJar uses an existing cookie jar instead of creating one. The caller
// keeps ownership: closing the client does not close jar.
func WithJar(jar *cookie.Jar) Option {
	return func(o *options) { o.jar = jar }
}

// WithJarOptions configures jars created for new clients.
func WithJarOptions(opts ...cookie.Option) Option {
	return func(o *options) { o.jarOptions = append(o.jarOptions, opts...) }
}

// WithHeaders adds headers sent on every call of a new client.
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(h))
		}
		maps.Copy(o.headers, h)
	}
}

// WithTimeouts overrides the timeout table from the config source.
func WithTimeouts(t config.TimeoutTable) Option {
	return func(o *options) { o.timeouts = t }
}
