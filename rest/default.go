package rest

import (
	"errors"
	"sync"
)

// ErrNotInitialized is returned by Of before Init.
var ErrNotInitialized = errors.New("rest: default registry not initialized")

var (
	defaultMu       sync.RWMutex
	defaultRegistry *Registry
)

// Init installs the process-wide registry used by Of and returns it.
func Init(src ConfigSource, opts ...Option) *Registry {
	r := NewRegistry(src, opts...)
	defaultMu.Lock()
	defaultRegistry = r
	defaultMu.Unlock()
	return r
}

// Default returns the registry installed by Init, or nil.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// Of returns the named client from the default registry.
func Of(name string, opts ...Option) (*Client, error) {
	r := Default()
	if r == nil {
		return nil, ErrNotInitialized
	}
	return r.Of(name, opts...)
}
