// Package httpclient is the transport under the REST client: one HTTP
// exchange per call over a shared, TLS-configurable http.Transport.
//
// The adapter never retries, never follows redirects unless asked, and
// returns every HTTP status as a normal response. Only transport failures
// (timeouts, refused connections, DNS) surface as *Error.
//
//	a, err := httpclient.New(httpclient.Config{Timeout: 5 * time.Second})
//	resp, err := a.Do(ctx, httpclient.Request{Method: "GET", URL: u, Jar: jar})
package httpclient
