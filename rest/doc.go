// Package rest is a client facade for JSON REST services configured by
// name. A Client accumulates a resource path, and a verb call turns the
// path and parameters into one signed HTTP request whose JSON response is
// returned as a value or mapped to an *Error.
//
//	cfg, _ := config.Load("gorest")
//	rest.Init(cfg)
//
//	billing, err := rest.Of("billing")
//	invoice, err := billing.Segment("invoices").Get(ctx, "42", rest.Params{"expand": "lines"})
//
// Every call sends
//
//	Accept: application/{url}+json; version={version}
//
// and, when both client_id and client_secret are configured,
//
//	Authorization: HMAC {client_id}:{base64(HMAC-SHA1(client_secret, client_id))}
//
// GET and unrecognised verbs encode params in the query string with
// Content-Type application/json. POST, PUT, PATCH and DELETE send a form
// body. Timeouts are looked up by exact path in the rest.timeout table,
// then its "default" entry, then DefaultTimeout.
//
// The body is interpreted regardless of HTTP status: {"error": {...}}
// yields KindRemote, an empty or non-JSON body KindMalformedResponse, and a
// network failure KindTransport. Calls are attempted once.
//
// Handles derived from the same root share its cookie jar, so a session
// cookie set by one call is sent on later calls through any sub-path.
// Closing the root client erases the jar.
package rest
