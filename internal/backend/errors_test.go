package backend

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
)

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"dns error", &net.DNSError{Err: "no such host", Name: "api.invalid"}, true},
		{"wrapped dns error", fmt.Errorf("call: %w", &net.DNSError{Err: "no such host", Name: "x"}), true},
		{"errno refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"string fallback", errors.New("Get \"http://x\": connection refused"), true},
		{"invalid body", &TransportError{Method: "GET", Path: "/p", Status: 502, Cause: ErrInvalidBody}, false},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsConnectionError(tt.err); got != tt.want {
				t.Errorf("IsConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTransportError_Message(t *testing.T) {
	t.Parallel()

	err := &TransportError{Method: "POST", Path: "/projects/p1/keys", Cause: errors.New("reset")}
	if got, want := err.Error(), "POST /projects/p1/keys: reset"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	withStatus := &TransportError{Method: "GET", Path: "/projects", Status: 502, Cause: ErrInvalidBody}
	if got, want := withStatus.Error(), "GET /projects: HTTP 502: response body is not valid JSON"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(withStatus, ErrInvalidBody) {
		t.Error("expected errors.Is to reach ErrInvalidBody")
	}
}
