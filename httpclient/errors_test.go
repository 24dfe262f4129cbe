package httpclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeInvalidRequest, "invalid_request"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := NewConnectionError(errors.New("connection refused"))
	want := "httpclient: connection: connection refused"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: i/o timeout")
	wrapped := fmt.Errorf("call: %w", NewTimeoutError(inner))

	if !errors.Is(wrapped, inner) {
		t.Error("expected errors.Is to reach the inner error")
	}
	if !IsTimeout(wrapped) {
		t.Error("expected IsTimeout through wrapping")
	}
	if IsConnection(wrapped) {
		t.Error("timeout must not be reported as connection")
	}
}
