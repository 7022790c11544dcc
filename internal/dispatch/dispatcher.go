// dispatcher.go - Turns one tool invocation into exactly one tool result.
//
// Each invocation moves through validating -> calling -> responding. Every
// failure below this boundary (bad arguments, backend rejection, transport
// failure, handler panic) becomes an error result; nothing propagates past Invoke.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/mcp"
	"github.com/localeops/localeops-mcp/internal/tools"
)

// Outcomes reported to the Recorder.
const (
	OutcomeOK              = "ok"
	OutcomeUnknownTool     = "unknown_tool"
	OutcomeRateLimited     = "rate_limited"
	OutcomeInvalidArgs     = "invalid_args"
	OutcomeBackendRejected = "backend_rejected"
	OutcomeTransportError  = "transport_error"
	OutcomeInternalError   = "internal_error"
)

// unknownToolLabel keeps arbitrary host-supplied names out of metric labels.
const unknownToolLabel = "unknown"

// Limiter gates invocations before any validation work is done.
type Limiter interface {
	Allow() bool
}

// Recorder observes finished invocations.
type Recorder interface {
	ObserveToolCall(tool, outcome string, elapsed time.Duration)
}

// Dispatcher holds only read-only collaborators; it is safe for concurrent use.
type Dispatcher struct {
	registry *tools.Registry
	caller   backend.Caller
	log      *zap.Logger
	limiter  Limiter
	recorder Recorder
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithLimiter sets a rate limiter. nil disables limiting.
func WithLimiter(l Limiter) Option {
	return func(d *Dispatcher) { d.limiter = l }
}

// WithRecorder sets the invocation recorder, typically the metrics collector.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// New returns a Dispatcher over registry that sends backend calls through caller.
func New(registry *tools.Registry, caller backend.Caller, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry, caller: caller, log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tools returns the tool descriptors advertised to the host.
func (d *Dispatcher) Tools() []mcp.Tool {
	return d.registry.Tools()
}

// Invoke runs the named tool with raw arguments and always returns exactly one result.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (result mcp.ToolResult) {
	start := time.Now()
	log := d.log.With(zap.String("invocation_id", uuid.NewString()), zap.String("tool", name))
	label := name
	outcome := OutcomeInternalError

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool handler panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			result = mcp.StructuredErrorResult(mcp.ErrInternal,
				fmt.Sprintf("internal error while running %s: %v", name, r),
				"Do not retry; report this as a server bug")
			outcome = OutcomeInternalError
		}
		elapsed := time.Since(start)
		if d.recorder != nil {
			d.recorder.ObserveToolCall(label, outcome, elapsed)
		}
		log.Info("tool call finished",
			zap.String("outcome", outcome),
			zap.Bool("is_error", result.IsError),
			zap.Duration("elapsed", elapsed))
	}()

	// validating
	op, ok := d.registry.Lookup(name)
	if !ok {
		label, outcome = unknownToolLabel, OutcomeUnknownTool
		return mcp.StructuredErrorResult(mcp.ErrUnknownTool,
			fmt.Sprintf("unknown tool '%s'", name),
			"Call one of: "+strings.Join(d.registry.Names(), ", "))
	}
	if d.limiter != nil && !d.limiter.Allow() {
		outcome = OutcomeRateLimited
		return mcp.StructuredErrorResult(mcp.ErrRateLimited,
			"tool call rate limit exceeded",
			"Wait before calling again")
	}
	validated, err := op.Tool.Validate(args)
	if err != nil {
		outcome = OutcomeInvalidArgs
		log.Debug("invalid arguments", zap.Error(err))
		return validationResult(err)
	}

	// calling
	res, err := op.Handler(ctx, d.caller, validated)
	if err != nil {
		outcome = OutcomeTransportError
		return transportResult(err)
	}

	// responding
	if !res.OK {
		outcome = OutcomeBackendRejected
		return rejectedResult(res)
	}
	result = mcp.JSONResult(res.Data)
	if result.IsError {
		outcome = OutcomeInternalError
	} else {
		outcome = OutcomeOK
	}
	return result
}
