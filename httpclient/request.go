package httpclient

import (
	"net/http"
	"time"
)

// Request describes one outbound HTTP exchange.
type Request struct {
	// Method is the HTTP method sent on the wire.
	Method string
	// URL is the absolute request URL, query string included.
	URL string
	// Headers are sent as-is. Later entries do not merge with earlier ones.
	Headers map[string]string
	// Body is sent verbatim. Nil sends no body.
	Body []byte
	// Timeout bounds the whole exchange. Zero uses Config.Timeout.
	Timeout time.Duration
	// Jar, when set, supplies and captures cookies for this request.
	Jar http.CookieJar
}

// Response is the result of an HTTP request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
