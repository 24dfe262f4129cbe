package rest

import (
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/kbukum/gorest/config"
	"github.com/kbukum/gorest/cookie"
	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/observability"
)

// service is the state shared by a root client and every handle derived
// from it.
type service struct {
	name          string
	baseURL       string
	version       string
	authorization string
	jar           *cookie.Jar
	ownsJar       bool
	transport     Transport
	adapter       *httpclient.Adapter
	timeouts      func() config.TimeoutTable
	log           *logger.Logger
	metrics       *observability.CallMetrics
	closeOnce     sync.Once
	closeErr      error
}

func (s *service) close() error {
	s.closeOnce.Do(func() {
		if s.adapter != nil {
			s.adapter.Close()
		}
		if s.ownsJar {
			s.closeErr = s.jar.Close()
		}
	})
	return s.closeErr
}

// Client is a handle on one remote service at a resource path. Handles are
// cheap: Segment returns a new handle sharing the service, credentials and
// cookie jar. A Client is safe for concurrent use.
type Client struct {
	svc  *service
	path []string
	root bool

	mu      sync.RWMutex
	headers map[string]string
}

// Segment returns a handle with name appended to the path. Empty names
// are ignored. The receiver is not modified.
func (c *Client) Segment(name string) *Client {
	path := c.path
	if name != "" {
		path = append(slices.Clone(c.path), name)
	}
	return &Client{svc: c.svc, path: path, headers: c.Headers()}
}

// Path appends several segments.
func (c *Client) Path(segments ...string) *Client {
	out := c.Segment("")
	for _, s := range segments {
		out = out.Segment(s)
	}
	return out
}

// Segments returns a copy of the accumulated path.
func (c *Client) Segments() []string {
	return slices.Clone(c.path)
}

// FullPath returns "/" followed by the path and segment joined with "/".
func (c *Client) FullPath(segment string) string {
	parts := c.path
	if segment != "" {
		parts = append(slices.Clip(parts), segment)
	}
	return "/" + strings.Join(parts, "/")
}

// Name returns the logical service name.
func (c *Client) Name() string { return c.svc.name }

// BaseURL returns the configured service URL.
func (c *Client) BaseURL() string { return c.svc.baseURL }

// Version returns the configured protocol version.
func (c *Client) Version() string { return c.svc.version }

// Jar returns the cookie jar shared by the handle chain.
func (c *Client) Jar() *cookie.Jar { return c.svc.jar }

// SetHeader merges h into the handle's custom headers. Derived handles
// created earlier are not affected.
func (c *Client) SetHeader(h map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.headers == nil {
		c.headers = make(map[string]string, len(h))
	}
	for k, v := range h {
		c.headers[http.CanonicalHeaderKey(k)] = v
	}
}

// SetHeaderLines merges headers given as "Key: Value" lines. Lines
// without a colon are skipped.
func (c *Client) SetHeaderLines(lines ...string) {
	h := make(map[string]string, len(lines))
	for _, line := range lines {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			h[k] = strings.TrimSpace(v)
		}
	}
	c.SetHeader(h)
}

// Headers returns a copy of the custom headers.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.headers)
}

// Close releases the cookie jar owned by a root client and erases its
// store. On derived handles, and on later calls, it is a no-op.
func (c *Client) Close() error {
	if !c.root {
		return nil
	}
	return c.svc.close()
}

func canonicalHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[http.CanonicalHeaderKey(k)] = v
	}
	return out
}
