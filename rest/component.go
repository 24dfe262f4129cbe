package rest

import (
	"context"
	"fmt"

	"github.com/kbukum/gorest/component"
)

var (
	_ component.Component   = (*Registry)(nil)
	_ component.Describable = (*Registry)(nil)
)

// Name implements component.Component.
func (r *Registry) Name() string { return "rest" }

// Start implements component.Component. Clients are built on first use.
func (r *Registry) Start(context.Context) error { return nil }

// Stop closes every client.
func (r *Registry) Stop(ctx context.Context) error { return r.Close(ctx) }

// Health reports the registry state.
func (r *Registry) Health(context.Context) component.Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := component.Health{Name: r.Name(), Status: component.StatusHealthy}
	if r.closed {
		h.Status = component.StatusUnhealthy
		h.Message = "closed"
		return h
	}
	h.Message = fmt.Sprintf("%d active clients", len(r.clients))
	return h
}

// Describe summarises the configured services.
func (r *Registry) Describe() component.Description {
	d := component.Description{Name: "REST clients", Type: "rest"}
	if lister, ok := r.src.(interface{ ServiceNames() []string }); ok {
		d.Details = fmt.Sprintf("%d services configured", len(lister.ServiceNames()))
	}
	return d
}
