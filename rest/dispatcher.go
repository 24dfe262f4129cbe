package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/observability"
)

// DefaultTimeout applies when neither the path nor "default" has an entry
// in the timeout table.
const DefaultTimeout = 5 * time.Second

// Content types selected by verb.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Call outcomes reported to metrics and spans.
const (
	outcomeSuccess   = "success"
	outcomeTransport = "transport"
	outcomeRemote    = "remote"
	outcomeMalformed = "malformed"
)

// Call sends verb to the handle path plus segment and interprets the
// response. The verb is case-insensitive. GET and unknown verbs send
// params as a query string; POST, PUT, PATCH and DELETE send them as a
// form body.
func (c *Client) Call(ctx context.Context, verb, segment string, params Params) (any, error) {
	_, v, err := c.exchange(ctx, verb, segment, params, true)
	return v, err
}

// Get calls GET.
func (c *Client) Get(ctx context.Context, segment string, params Params) (any, error) {
	return c.Call(ctx, http.MethodGet, segment, params)
}

// Post calls POST.
func (c *Client) Post(ctx context.Context, segment string, params Params) (any, error) {
	return c.Call(ctx, http.MethodPost, segment, params)
}

// Put calls PUT.
func (c *Client) Put(ctx context.Context, segment string, params Params) (any, error) {
	return c.Call(ctx, http.MethodPut, segment, params)
}

// Patch calls PATCH.
func (c *Client) Patch(ctx context.Context, segment string, params Params) (any, error) {
	return c.Call(ctx, http.MethodPatch, segment, params)
}

// Delete calls DELETE.
func (c *Client) Delete(ctx context.Context, segment string, params Params) (any, error) {
	return c.Call(ctx, http.MethodDelete, segment, params)
}

// Raw performs the exchange and returns the body without interpreting it.
// Only transport failures are errors.
func (c *Client) Raw(ctx context.Context, verb, segment string, params Params) ([]byte, error) {
	raw, _, err := c.exchange(ctx, verb, segment, params, false)
	return raw, err
}

// CallAs is Call with the successful body decoded into T. A body that does
// not fit T fails with KindMalformedResponse.
func CallAs[T any](ctx context.Context, c *Client, verb, segment string, params Params) (T, error) {
	var out T
	raw, _, err := c.exchange(ctx, verb, segment, params, true)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		merr := newMalformedError(raw, err)
		merr.Service = c.svc.name
		return out, merr
	}
	return out, nil
}

// Request returns the HTTP request Call would send, without sending it.
func (c *Client) Request(verb, segment string, params Params) httpclient.Request {
	req, _ := c.prepare(verb, segment, params)
	return req
}

func (c *Client) prepare(verb, segment string, params Params) (httpclient.Request, string) {
	method := strings.ToUpper(verb)
	fullPath := c.FullPath(segment)
	encoded := params.Encode()

	headers := c.Headers()
	if headers == nil {
		headers = make(map[string]string, 3)
	}
	headers["Accept"] = "application/" + c.svc.baseURL + "+json; version=" + c.svc.version
	if c.svc.authorization != "" {
		headers["Authorization"] = c.svc.authorization
	}

	req := httpclient.Request{
		Method:  method,
		URL:     strings.TrimRight(c.svc.baseURL, "/") + fullPath,
		Headers: headers,
		Timeout: c.svc.timeouts().Resolve(fullPath, DefaultTimeout),
		Jar:     c.svc.jar,
	}

	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		headers["Content-Type"] = ContentTypeForm
		req.Body = []byte(encoded)
	default:
		headers["Content-Type"] = ContentTypeJSON
		if encoded != "" {
			req.URL += "?" + encoded
		}
	}
	return req, fullPath
}

func (c *Client) exchange(ctx context.Context, verb, segment string, params Params, decode bool) ([]byte, any, error) {
	req, fullPath := c.prepare(verb, segment, params)
	svc := c.svc
	requestID := uuid.NewString()

	ctx, span := observability.StartSpan(ctx, observability.SpanRESTCall,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrService, svc.name),
			attribute.String(observability.AttrMethod, req.Method),
			attribute.String(observability.AttrPath, fullPath),
			attribute.String(observability.AttrURL, req.URL),
		),
	)
	defer span.End()

	start := time.Now()
	svc.metrics.Start(ctx, svc.name)
	finish := func(outcome string, err error) {
		span.SetAttributes(attribute.String(observability.AttrOutcome, outcome))
		if code, ok := CodeOf(err); ok {
			span.SetAttributes(attribute.Int(observability.AttrErrorCode, code))
		}
		observability.SetSpanError(span, err)
		svc.metrics.Record(ctx, svc.name, req.Method, outcome, time.Since(start))
	}

	svc.log.Debug("REST =>", logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldURL, req.URL,
		logger.FieldMethod, req.Method,
		logger.FieldPath, fullPath,
		logger.FieldParams, map[string]any(params),
	))

	resp, err := svc.transport.Do(ctx, req)
	if err != nil {
		terr := newTransportError(svc.name, err)
		svc.log.Error("REST transport error", logger.WithDuration(logger.Fields(
			logger.FieldRequestID, requestID,
			logger.FieldURL, req.URL,
			logger.FieldError, terr.Message,
		), time.Since(start)))
		finish(outcomeTransport, terr)
		return nil, nil, terr
	}

	svc.log.Debug("REST <=", logger.WithDuration(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldRawData, string(resp.Body),
	), time.Since(start)))

	if !decode {
		finish(outcomeSuccess, nil)
		return resp.Body, nil, nil
	}

	v, rerr := interpret(resp.Body)
	if rerr != nil {
		rerr.Service = svc.name
		if rerr.Kind == KindRemote {
			finish(outcomeRemote, rerr)
		} else {
			finish(outcomeMalformed, rerr)
		}
		return resp.Body, nil, rerr
	}
	finish(outcomeSuccess, nil)
	return resp.Body, v, nil
}
