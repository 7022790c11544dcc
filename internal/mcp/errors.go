// errors.go - Structured error codes and error result construction for MCP tools.
package mcp

import (
	"encoding/json"
	"fmt"
)

// Error codes are self-describing snake_case strings.
// Every code tells the LLM what went wrong.
const (
	// Input errors: the LLM can fix arguments and retry immediately
	ErrMissingParam = "missing_param"
	ErrInvalidParam = "invalid_param"
	ErrUnknownParam = "unknown_param"
	ErrUnknownTool  = "unknown_tool"

	// Throttling: retry after a delay
	ErrRateLimited = "rate_limited"

	// Backend errors
	ErrBackendRejected    = "backend_rejected"
	ErrBackendUnreachable = "backend_unreachable"
	ErrTransport          = "transport_error"

	// Internal errors: do not retry
	ErrInternal      = "internal_error"
	ErrMarshalFailed = "marshal_failed"
)

// StructuredError is embedded in MCP text content. Every field is
// self-describing so an LLM can act on it without a lookup table.
type StructuredError struct {
	Error        string          `json:"error"`
	Message      string          `json:"message"`
	Retry        string          `json:"retry"`
	Retryable    bool            `json:"retryable"`
	RetryAfterMs int             `json:"retry_after_ms,omitempty"`
	Param        string          `json:"param,omitempty"`
	Status       int             `json:"status,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
}

// StructuredErrorResult constructs an MCP error result. Format:
//
//	Error: missing_param: Add the 'projectId' parameter and call again
//	{"error":"missing_param","message":"...","retry":"Add the 'projectId' parameter and call again","retryable":false,"param":"projectId"}
//
// The retry string is a plain-English instruction the LLM can follow directly.
func StructuredErrorResult(code, message, retry string, opts ...func(*StructuredError)) ToolResult {
	se := StructuredError{Error: code, Message: message, Retry: retry}
	for _, defaultOpt := range RetryDefaultsForCode(code) {
		defaultOpt(&se)
	}
	for _, opt := range opts {
		opt(&se)
	}

	seJSON, err := json.Marshal(se)
	if err != nil {
		// Details was not valid JSON; keep everything else.
		se.Details = nil
		seJSON, _ = json.Marshal(se)
	}
	return ErrorResult(fmt.Sprintf("Error: %s: %s\n%s", code, retry, seJSON))
}

// WithParam names the offending parameter.
func WithParam(p string) func(*StructuredError) {
	return func(se *StructuredError) { se.Param = p }
}

// WithStatus records the backend HTTP status.
func WithStatus(status int) func(*StructuredError) {
	return func(se *StructuredError) { se.Status = status }
}

// WithDetails attaches a raw JSON body, usually the backend's error payload.
func WithDetails(raw json.RawMessage) func(*StructuredError) {
	return func(se *StructuredError) {
		if len(raw) > 0 {
			se.Details = raw
		}
	}
}

// WithRetryable marks whether the error is retryable by the LLM.
func WithRetryable(retryable bool) func(*StructuredError) {
	return func(se *StructuredError) { se.Retryable = retryable }
}

// WithRetryAfterMs sets the suggested delay before retrying (milliseconds).
func WithRetryAfterMs(ms int) func(*StructuredError) {
	return func(se *StructuredError) { se.RetryAfterMs = ms }
}

// RetryDefaultsForCode returns option functions that set retryable and
// retry_after_ms based on the error code. The server never retries on its
// own; these fields are advice for the caller.
func RetryDefaultsForCode(code string) []func(*StructuredError) {
	switch code {
	case ErrRateLimited:
		return []func(*StructuredError){WithRetryable(true), WithRetryAfterMs(1000)}
	case ErrBackendUnreachable:
		return []func(*StructuredError){WithRetryable(true), WithRetryAfterMs(2000)}
	default:
		return []func(*StructuredError){WithRetryable(false)}
	}
}
