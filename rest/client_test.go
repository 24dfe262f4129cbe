package rest

import (
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/gorest/config"
)

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{}
	cfg := testConfig("https://billing.example.com")
	reg := NewRegistry(cfg, append([]Option{quiet(), WithTransport(ft)}, opts...)...)
	t.Cleanup(func() { _ = reg.Close(t.Context()) })
	c, err := reg.Of("billing")
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	return c, ft
}

func TestClient_PathComposition(t *testing.T) {
	c, _ := newTestClient(t)

	if got := c.FullPath(""); got != "/v1" {
		t.Errorf("root path = %q", got)
	}
	users := c.Segment("users")
	five := users.Segment("5")
	if got := five.FullPath("orders"); got != "/v1/users/5/orders" {
		t.Errorf("FullPath = %q", got)
	}
	if got := users.FullPath(""); got != "/v1/users" {
		t.Errorf("parent changed: %q", got)
	}
	if got := c.Segment("").FullPath(""); got != "/v1" {
		t.Errorf("empty segment should be ignored, got %q", got)
	}
	if got := c.Path("a", "", "b").Segments(); !slices.Equal(got, []string{"v1", "a", "b"}) {
		t.Errorf("Path segments = %v", got)
	}

	// Siblings derived from one parent must not share backing arrays.
	a := users.Segment("a")
	b := users.Segment("b")
	if a.FullPath("") != "/v1/users/a" || b.FullPath("") != "/v1/users/b" {
		t.Errorf("siblings = %q, %q", a.FullPath(""), b.FullPath(""))
	}
}

func TestClient_RootWithoutPath(t *testing.T) {
	ft := &fakeTransport{}
	reg := NewRegistry(testConfig("https://p.example/"), quiet(), WithTransport(ft))
	defer reg.Close(t.Context())

	c, err := reg.Of("public")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.FullPath(""); got != "/" {
		t.Errorf("root path = %q", got)
	}
	if got := c.Request("GET", "ping", nil).URL; got != "https://p.example/ping" {
		t.Errorf("URL = %q", got)
	}
}

func TestClient_Accessors(t *testing.T) {
	c, _ := newTestClient(t)
	d := c.Segment("x")
	if d.Name() != "billing" || d.BaseURL() != "https://billing.example.com" || d.Version() != "2" {
		t.Errorf("accessors = %q %q %q", d.Name(), d.BaseURL(), d.Version())
	}
	if d.Jar() != c.Jar() || d.Jar() == nil {
		t.Error("derived handles must share the jar")
	}
}

func TestClient_Request(t *testing.T) {
	c, _ := newTestClient(t)

	tests := []struct {
		name        string
		verb        string
		params      Params
		url         string
		body        string
		contentType string
	}{
		{"get with params", "get", Params{"q": "a b", "n": 1}, "https://billing.example.com/v1/items?n=1&q=a+b", "", ContentTypeJSON},
		{"get without params", "GET", nil, "https://billing.example.com/v1/items", "", ContentTypeJSON},
		{"post", "post", Params{"name": "bob"}, "https://billing.example.com/v1/items", "name=bob", ContentTypeForm},
		{"put", "PUT", Params{"a": 1}, "https://billing.example.com/v1/items", "a=1", ContentTypeForm},
		{"patch", "Patch", Params{"a": 1}, "https://billing.example.com/v1/items", "a=1", ContentTypeForm},
		{"delete", "DELETE", Params{"id": 9}, "https://billing.example.com/v1/items", "id=9", ContentTypeForm},
		{"unknown verb", "purge", Params{"a": 1}, "https://billing.example.com/v1/items?a=1", "", ContentTypeJSON},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := c.Request(tc.verb, "items", tc.params)
			if req.URL != tc.url {
				t.Errorf("URL = %q, want %q", req.URL, tc.url)
			}
			if string(req.Body) != tc.body {
				t.Errorf("body = %q, want %q", req.Body, tc.body)
			}
			if got := req.Headers["Content-Type"]; got != tc.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tc.contentType)
			}
		})
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	c, _ := newTestClient(t)
	req := c.Request("GET", "", nil)

	if got := req.Headers["Accept"]; got != "application/https://billing.example.com+json; version=2" {
		t.Errorf("Accept = %q", got)
	}
	if got := req.Headers["Authorization"]; got != Signature("id", "secret") {
		t.Errorf("Authorization = %q", got)
	}
	if req.Method != http.MethodGet {
		t.Errorf("Method = %q", req.Method)
	}
	if req.Jar == nil {
		t.Error("request should carry the service jar")
	}
}

func TestClient_NoCredentialsNoAuthorization(t *testing.T) {
	reg := NewRegistry(testConfig("https://p.example"), quiet(), WithTransport(&fakeTransport{}))
	defer reg.Close(t.Context())

	c, err := reg.Of("public")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Request("GET", "", nil).Headers["Authorization"]; ok {
		t.Error("Authorization must be absent without credentials")
	}
}

func TestClient_CustomHeaders(t *testing.T) {
	c, _ := newTestClient(t, WithHeaders(map[string]string{"x-tenant": "acme"}))

	c.SetHeader(map[string]string{
		"x-trace":       "t1",
		"accept":        "text/plain",
		"authorization": "Bearer nope",
		"content-type":  "text/plain",
	})
	c.SetHeaderLines("X-Debug: yes", "garbage", " X-Empty :  ")

	req := c.Request("POST", "", nil)
	want := map[string]string{
		"X-Tenant":      "acme",
		"X-Trace":       "t1",
		"X-Debug":       "yes",
		"X-Empty":       "",
		"Accept":        "application/https://billing.example.com+json; version=2",
		"Authorization": Signature("id", "secret"),
		"Content-Type":  ContentTypeForm,
	}
	for k, v := range want {
		if got, ok := req.Headers[k]; !ok || got != v {
			t.Errorf("%s = %q (present %v), want %q", k, got, ok, v)
		}
	}
}

func TestClient_HeadersCopiedOnDerive(t *testing.T) {
	c, _ := newTestClient(t)
	c.SetHeader(map[string]string{"X-A": "1"})
	child := c.Segment("child")
	c.SetHeader(map[string]string{"X-B": "2"})
	child.SetHeader(map[string]string{"X-C": "3"})

	if _, ok := child.Headers()["X-B"]; ok {
		t.Error("headers set on the parent after deriving must not leak")
	}
	if _, ok := c.Headers()["X-C"]; ok {
		t.Error("headers set on the child must not leak to the parent")
	}
	if child.Headers()["X-A"] != "1" {
		t.Error("child should inherit headers set before deriving")
	}
}

func TestClient_TimeoutResolution(t *testing.T) {
	c, _ := newTestClient(t)
	tests := []struct {
		segment string
		want    time.Duration
	}{
		{"slow", 250 * time.Millisecond},
		{"slow/", 2 * time.Second},
		{"SLOW", 2 * time.Second},
		{"fast", 2 * time.Second},
	}
	for _, tc := range tests {
		if got := c.Request("GET", tc.segment, nil).Timeout; got != tc.want {
			t.Errorf("timeout(%q) = %v, want %v", tc.segment, got, tc.want)
		}
	}
}

func TestClient_TimeoutFallbacks(t *testing.T) {
	cfg := testConfig("https://billing.example.com")
	cfg.Rest.Timeout = nil
	reg := NewRegistry(cfg, quiet(), WithTransport(&fakeTransport{}))
	defer reg.Close(t.Context())

	c, err := reg.Of("billing")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Request("GET", "slow", nil).Timeout; got != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", got, DefaultTimeout)
	}

	override, err := NewClient("billing", cfg.App.Rest["billing"], quiet(),
		WithTransport(&fakeTransport{}),
		WithTimeouts(config.TimeoutTable{"/v1/x": 1.5}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer override.Close()
	if got := override.Request("GET", "x", nil).Timeout; got != 1500*time.Millisecond {
		t.Errorf("override timeout = %v", got)
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient("broken", config.ServiceConfig{URL: "not a url"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
