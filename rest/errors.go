package rest

import (
	"errors"
	"fmt"

	"github.com/kbukum/gorest/httpclient"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindConfigMissing means no configuration exists for the service name.
	KindConfigMissing Kind = iota + 1
	// KindTransport means the request never produced a response body.
	KindTransport
	// KindRemote means the server answered with an error envelope.
	KindRemote
	// KindMalformedResponse means the body was empty, null or not JSON.
	KindMalformedResponse
)

// Error codes fixed by the wire contract. Remote errors carry the code
// reported by the server.
const (
	CodeTransport = -32300
	CodeMalformed = 404
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfigMissing:
		return "config_missing"
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by calls.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	// Service is the logical service name, when known.
	Service string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("rest %s: %s (code %d)", e.Service, e.Message, e.Code)
	}
	return fmt.Sprintf("rest: %s (code %d)", e.Message, e.Code)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newConfigMissingError(service string) *Error {
	return &Error{
		Kind:    KindConfigMissing,
		Message: fmt.Sprintf("no configuration for service %q", service),
		Service: service,
	}
}

func newTransportError(service string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    CodeTransport,
		Message: "transport error: " + transportMessage(err),
		Service: service,
		Err:     err,
	}
}

func transportMessage(err error) string {
	var herr *httpclient.Error
	if errors.As(err, &herr) {
		return herr.Message
	}
	return err.Error()
}

func newMalformedError(raw []byte, err error) *Error {
	data := string(raw)
	if data == "" {
		data = "(null)"
	}
	return &Error{
		Kind:    KindMalformedResponse,
		Code:    CodeMalformed,
		Message: "unknown error with raw data: " + data,
		Err:     err,
	}
}

func newRemoteError(message string, code int) *Error {
	return &Error{
		Kind:    KindRemote,
		Code:    code,
		Message: "remote error: " + message,
	}
}

// KindOf returns the kind of a *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// CodeOf returns the code of a *Error in err's chain.
func CodeOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsConfigMissing reports whether err is a missing-configuration error.
func IsConfigMissing(err error) bool { return KindOf(err) == KindConfigMissing }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsRemote reports whether err is a server-reported error.
func IsRemote(err error) bool { return KindOf(err) == KindRemote }

// IsMalformed reports whether err is a malformed-response error.
func IsMalformed(err error) bool { return KindOf(err) == KindMalformedResponse }
