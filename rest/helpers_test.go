package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gorest/config"
	"github.com/kbukum/gorest/cookie"
	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/logger"
)

// captured is one request seen by fakeService.
type captured struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	Header   http.Header
}

// fakeService is a gin server that records requests and answers with a
// canned body per path.
type fakeService struct {
	srv *httptest.Server

	mu      sync.Mutex
	reqs    []captured
	replies map[string]reply
}

type reply struct {
	status int
	body   string
	delay  time.Duration
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fakeService{replies: make(map[string]reply)}
	engine := gin.New()
	engine.POST("/v1/login", func(c *gin.Context) {
		f.record(c)
		http.SetCookie(c.Writer, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		c.JSON(http.StatusOK, gin.H{"logged_in": true})
	})
	engine.NoRoute(func(c *gin.Context) {
		f.record(c)
		f.mu.Lock()
		r, ok := f.replies[c.Request.URL.Path]
		f.mu.Unlock()
		if !ok {
			r = reply{status: http.StatusOK, body: `{"ok":true}`}
		}
		if r.delay > 0 {
			time.Sleep(r.delay)
		}
		c.Data(r.status, "application/json", []byte(r.body))
	})

	f.srv = httptest.NewServer(engine)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeService) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, captured{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Body:     string(body),
		Header:   c.Request.Header.Clone(),
	})
}

func (f *fakeService) reply(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[path] = reply{status: status, body: body}
}

func (f *fakeService) last(t *testing.T) captured {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		t.Fatal("no request recorded")
	}
	return f.reqs[len(f.reqs)-1]
}

// testConfig returns a config with a "billing" service pointing at url.
func testConfig(url string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Rest: map[string]config.ServiceConfig{
			"billing": {
				URL:          url,
				Path:         "v1",
				Version:      "2",
				ClientID:     "id",
				ClientSecret: "secret",
			},
			"public": {URL: url, Version: "1"},
		}},
		Rest: config.RestConfig{Timeout: config.TimeoutTable{
			"/v1/slow":               0.25,
			config.DefaultTimeoutKey: 2,
		}},
	}
}

// fakeTransport records requests without sending them.
type fakeTransport struct {
	mu   sync.Mutex
	reqs []httpclient.Request
	body string
	err  error
}

func (f *fakeTransport) Do(_ context.Context, req httpclient.Request) (*httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	body := f.body
	if body == "" {
		body = `{"ok":true}`
	}
	return &httpclient.Response{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func (f *fakeTransport) last(t *testing.T) httpclient.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		t.Fatal("no request recorded")
	}
	return f.reqs[len(f.reqs)-1]
}

func quiet() Option {
	return WithLogger(logger.Nop())
}

func cookieFileStore(dir string) cookie.Option {
	return cookie.WithFileStore(dir)
}

func storePath(t *testing.T, c *Client) string {
	t.Helper()
	fs, ok := c.Jar().Store().(*cookie.FileStore)
	if !ok {
		t.Fatalf("store is %T, want *cookie.FileStore", c.Jar().Store())
	}
	return fs.Path()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
