// stdio.go - MCP over stdin/stdout. Stdout carries nothing but framed responses.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/localeops/localeops-mcp/internal/bridge"
	"github.com/localeops/localeops-mcp/internal/mcp"
)

// maxMessageSize caps one inbound message.
const maxMessageSize = 4 << 20

const responseFallback = `{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error: failed to marshal response"}}`

// ServeStdio reads messages from in until EOF and writes responses to out.
// Up to maxConcurrency messages are handled at once, so responses may be
// written in a different order than requests arrived. In-flight invocations
// always run to completion, even after ctx is cancelled.
func ServeStdio(ctx context.Context, h *Handler, in io.Reader, out io.Writer, maxConcurrency int, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	reader := bufio.NewReader(in)
	writer := bridge.NewWriter(out)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	var readErr error
	for gctx.Err() == nil {
		msg, framing, err := bridge.ReadStdioMessageWithMode(reader, maxMessageSize)
		if errors.Is(err, bridge.ErrMessageTooLarge) {
			log.Warn("dropping oversized stdin message", zap.Int("limit", maxMessageSize), zap.Stringer("framing", framing))
			payload := mcp.SafeMarshal(mcp.NewError(nil, mcp.CodeParseError, "Parse error: message too large"), responseFallback)
			if err := writer.WriteMessage(payload, framing); err != nil {
				readErr = fmt.Errorf("writing response: %w", err)
				break
			}
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = fmt.Errorf("reading stdin: %w", err)
			}
			break
		}

		g.Go(func() error {
			resp := h.HandleMessage(context.WithoutCancel(gctx), msg)
			if resp == nil {
				return nil
			}
			if resp.Error != nil {
				log.Debug("json-rpc error", zap.Int("code", resp.Error.Code), zap.String("message", resp.Error.Message))
			}
			payload := mcp.SafeMarshal(resp, responseFallback)
			if err := writer.WriteMessage(payload, framing); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if readErr != nil {
		return readErr
	}
	log.Info("stdin closed, stdio channel finished")
	return nil
}
