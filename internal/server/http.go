// http.go - MCP over HTTP (POST /mcp) plus health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/localeops/localeops-mcp/internal/mcp"
)

const shutdownTimeout = 5 * time.Second

// NewHTTPHandler routes POST /mcp to h. metrics may be nil.
func NewHTTPHandler(h *Handler, metrics http.Handler, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		handleMCP(h, log, w, r)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonResponse(w, log, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
			return
		}
		jsonResponse(w, log, http.StatusOK, map[string]string{"status": "ok", "version": h.version})
	})
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}

func handleMCP(h *Handler, log *zap.Logger, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, log, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	// Must be application/json, or empty for lenient clients.
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		jsonResponse(w, log, http.StatusOK, mcp.NewError(nil, mcp.CodeParseError, "Unsupported Content-Type: "+ct))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMessageSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonResponse(w, log, http.StatusBadRequest, mcp.NewError(nil, mcp.CodeParseError, "Read error: "+err.Error()))
		return
	}

	// Invocations run to completion even if the client goes away.
	resp := h.HandleMessage(context.WithoutCancel(r.Context()), body)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	jsonResponse(w, log, http.StatusOK, resp)
}

func jsonResponse(w http.ResponseWriter, log *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("encoding JSON response", zap.Error(err))
	}
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler, log)
}

// Serve is ListenAndServe on an existing listener.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listener started", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http listener: %w", err)
		}
		<-errCh
		log.Info("http listener stopped", zap.String("addr", ln.Addr().String()))
		return nil
	}
}
