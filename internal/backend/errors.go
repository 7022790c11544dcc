// errors.go - Transport-level failures and their classification.
package backend

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrInvalidBody is the cause when a response body is not valid JSON.
var ErrInvalidBody = errors.New("response body is not valid JSON")

// TransportError is a failure below the HTTP status level: DNS, refused or
// reset connections, or an unparseable response body.
type TransportError struct {
	Method string
	Path   string
	// Status is set when a response arrived but its body could not be used.
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: HTTP %d: %v", e.Method, e.Path, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsConnectionError reports whether err means the backend could not be reached.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	// Fallback for wrapped errors that lost their type.
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host")
}
