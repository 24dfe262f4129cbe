package rest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kbukum/gorest/config"
	"github.com/kbukum/gorest/cookie"
	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/resilience"
)

// ConfigSource supplies service configuration. *config.Config implements it.
type ConfigSource interface {
	Service(name string) (config.ServiceConfig, bool)
	Timeouts() config.TimeoutTable
}

// Registry caches one root Client per service name. The first successful
// Of for a name builds the client; later calls return it unchanged and
// ignore their options. Entries live until Close.
type Registry struct {
	src  ConfigSource
	opts options

	mu      sync.RWMutex
	clients map[string]*Client
	group   singleflight.Group
	closed  bool
}

// NewRegistry creates a registry reading service configuration from src.
// opts apply to every client it builds.
func NewRegistry(src ConfigSource, opts ...Option) *Registry {
	return &Registry{
		src:     src,
		opts:    options{}.with(opts),
		clients: make(map[string]*Client),
	}
}

// ErrRegistryClosed is returned by Of after Close.
var ErrRegistryClosed = errors.New("rest: registry closed")

// Of returns the client for name, building it on first use. It fails with
// KindConfigMissing when src has no entry for name.
func (r *Registry) Of(name string, opts ...Option) (*Client, error) {
	r.mu.RLock()
	c, ok := r.clients[name]
	closed := r.closed
	r.mu.RUnlock()
	if ok {
		return c, nil
	}
	if closed {
		return nil, ErrRegistryClosed
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		r.mu.RLock()
		c, ok := r.clients[name]
		r.mu.RUnlock()
		if ok {
			return c, nil
		}

		c, err := r.build(name, r.opts.with(opts))
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			_ = c.Close()
			return nil, ErrRegistryClosed
		}
		r.clients[name] = c
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Client), nil
}

func (r *Registry) build(name string, o options) (*Client, error) {
	cfg, ok := r.src.Service(name)
	if !ok {
		return nil, newConfigMissingError(name)
	}
	return newClient(name, cfg, o, r.src.Timeouts)
}

// Names returns the names of the clients built so far, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.clients))
}

// Close closes every cached client and erases their cookie stores. Of
// fails afterwards.
func (r *Registry) Close(context.Context) error {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]*Client)
	r.closed = true
	r.mu.Unlock()

	var errs []error
	for _, c := range clients {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewClient builds a root client from a single service entry without a
// registry.
func NewClient(name string, cfg config.ServiceConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rest %s: %w", name, err)
	}
	return newClient(name, cfg, options{}.with(opts), nil)
}

// newClient builds a root client. Timeouts come from the WithTimeouts
// table when given, otherwise from source at call time.
func newClient(name string, cfg config.ServiceConfig, o options, source func() config.TimeoutTable) (*Client, error) {
	svc := &service{
		name:    name,
		baseURL: cfg.URL,
		version: cfg.Version,
		log:     o.log,
		metrics: o.metrics,
	}
	if svc.log == nil {
		svc.log = logger.Get("rest")
	}
	svc.log = svc.log.WithFields(logger.Fields(logger.FieldService, name))

	if cfg.HasCredentials() {
		svc.authorization = Signature(cfg.ClientID, cfg.ClientSecret)
	}

	switch {
	case o.timeouts != nil:
		table := o.timeouts
		svc.timeouts = func() config.TimeoutTable { return table }
	case source != nil:
		svc.timeouts = source
	default:
		svc.timeouts = func() config.TimeoutTable { return nil }
	}

	svc.transport = o.transport
	if svc.transport == nil {
		adapter, err := httpclient.New(httpclient.Config{TLS: cfg.TLS})
		if err != nil {
			return nil, fmt.Errorf("rest %s: %w", name, err)
		}
		svc.transport = adapter
		svc.adapter = adapter
	}
	if guard := resilience.NewGuard(cfg.Limits); guard != nil {
		svc.transport = guardedTransport{next: svc.transport, guard: guard}
	}

	svc.jar = o.jar
	if svc.jar == nil {
		jar, err := cookie.New(o.jarOptions...)
		if err != nil {
			return nil, fmt.Errorf("rest %s: %w", name, err)
		}
		svc.jar = jar
		svc.ownsJar = true
	}

	headers := canonicalHeaders(cfg.Headers)
	maps.Copy(headers, canonicalHeaders(o.headers))

	return &Client{svc: svc, path: cfg.PathSegments(), root: true, headers: headers}, nil
}
