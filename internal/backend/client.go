// client.go - HTTP client for the translation-management REST backend.
// Non-2xx responses are results, not errors: only transport failures are errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Result is the normalized outcome of one backend call.
type Result struct {
	// OK is true iff Status is in the 2xx range.
	OK     bool
	Status int
	// Data is the response body exactly as received. nil when the body was empty.
	Data json.RawMessage
}

// Caller issues one backend call. Tool handlers depend on this, not on *Client.
type Caller interface {
	Call(ctx context.Context, method, path string, body any) (Result, error)
}

// Observer receives one notification per completed backend call.
type Observer interface {
	ObserveBackendCall(method string, status int, elapsed time.Duration, err error)
}

// Config holds what the client needs from process configuration.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client talks to the backend with bearer authentication and JSON bodies.
type Client struct {
	rc       *resty.Client
	log      *zap.Logger
	observer Observer
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	log        *zap.Logger
	observer   Observer
	userAgent  string
}

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// WithObserver sets the call observer, typically the metrics collector.
func WithObserver(obs Observer) Option {
	return func(o *clientOptions) { o.observer = obs }
}

// WithUserAgent sets the User-Agent header sent on every call.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// New returns a Client for cfg. cfg.BaseURL must already be normalized.
func New(cfg Config, opts ...Option) *Client {
	o := clientOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(o.log.Sugar())
	if o.userAgent != "" {
		rc.SetHeader("User-Agent", o.userAgent)
	}

	return &Client{rc: rc, log: o.log, observer: o.observer}
}

// Call sends one request. body is JSON-encoded when non-nil and omitted otherwise.
// A response body that is not valid JSON is reported as a *TransportError.
func (c *Client) Call(ctx context.Context, method, path string, body any) (Result, error) {
	start := time.Now()
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		terr := &TransportError{Method: method, Path: path, Cause: err}
		c.done(method, path, 0, start, terr)
		return Result{}, terr
	}

	status := resp.StatusCode()
	data := bytes.TrimSpace(resp.Body())
	if len(data) == 0 {
		data = nil
	} else if !json.Valid(data) {
		terr := &TransportError{Method: method, Path: path, Status: status, Cause: ErrInvalidBody}
		c.done(method, path, status, start, terr)
		return Result{}, terr
	}

	c.done(method, path, status, start, nil)
	return Result{
		OK:     status >= 200 && status <= 299,
		Status: status,
		Data:   json.RawMessage(data),
	}, nil
}

func (c *Client) done(method, path string, status int, start time.Time, err error) {
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveBackendCall(method, status, elapsed, err)
	}
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		c.log.Warn("backend call failed", append(fields, zap.Error(err))...)
		return
	}
	c.log.Debug("backend call", fields...)
}
