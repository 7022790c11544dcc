package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localeops/localeops-mcp/internal/logging"
	"github.com/localeops/localeops-mcp/internal/mcp"
)

func responsesByID(t *testing.T, out string) map[string]mcp.JSONRPCResponse {
	t.Helper()
	got := map[string]mcp.JSONRPCResponse{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var resp mcp.JSONRPCResponse
		require.NoError(t, json.Unmarshal([]byte(line), &resp), line)
		got[jsonString(resp.ID)] = resp
	}
	return got
}

func jsonString(v any) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func TestServeStdio_Session(t *testing.T) {
	h, inv := newTestHandler(t)
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"list_projects","arguments":{}}}`,
		`not json`,
	}, "\n") + "\n"

	var out bytes.Buffer
	err := ServeStdio(context.Background(), h, strings.NewReader(in), &out, 4, logging.Test(t))
	require.NoError(t, err)

	got := responsesByID(t, out.String())
	require.Len(t, got, 4, "notification must not be answered:\n%s", out.String())
	assert.Nil(t, got["1"].Error)
	assert.Nil(t, got["2"].Error)
	assert.Nil(t, got["3"].Error)
	require.NotNil(t, got["null"].Error)
	assert.Equal(t, mcp.CodeParseError, got["null"].Error.Code)
	assert.Len(t, inv.calls, 1)
}

func TestServeStdio_ContentLengthFramingIsMirrored(t *testing.T) {
	h, _ := newTestHandler(t)
	payload := `{"jsonrpc":"2.0","id":5,"method":"ping"}`
	in := "Content-Length: " + itoa(len(payload)) + "\r\n\r\n" + payload

	var out bytes.Buffer
	require.NoError(t, ServeStdio(context.Background(), h, strings.NewReader(in), &out, 1, nil))
	assert.Equal(t, "Content-Length: 36\r\n\r\n{\"jsonrpc\":\"2.0\",\"id\":5,\"result\":{}}", out.String())
}

func TestServeStdio_ManyConcurrentCalls(t *testing.T) {
	h, inv := newTestHandler(t)
	var in strings.Builder
	for i := 0; i < 100; i++ {
		in.WriteString(`{"jsonrpc":"2.0","id":` + itoa(i) + `,"method":"tools/call","params":{"name":"list_projects"}}` + "\n")
	}

	var out bytes.Buffer
	require.NoError(t, ServeStdio(context.Background(), h, strings.NewReader(in.String()), &out, 8, nil))

	got := responsesByID(t, out.String())
	assert.Len(t, got, 100)
	assert.Len(t, inv.calls, 100)
}

func TestServeStdio_OversizedFramedMessageGetsOneResponse(t *testing.T) {
	h, inv := newTestHandler(t)
	big := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_projects","arguments":{"pad":"` +
		strings.Repeat("x", maxMessageSize) + `"}}}`
	ping := `{"jsonrpc":"2.0","id":2,"method":"ping"}`
	in := "Content-Length: " + itoa(len(big)) + "\r\n\r\n" + big +
		"Content-Length: " + itoa(len(ping)) + "\r\n\r\n" + ping

	var out bytes.Buffer
	require.NoError(t, ServeStdio(context.Background(), h, strings.NewReader(in), &out, 1, logging.Test(t)))

	assert.Equal(t, 2, strings.Count(out.String(), "Content-Length: "), out.String())
	assert.Contains(t, out.String(), `"code":-32700`)
	assert.Contains(t, out.String(), "message too large")
	assert.Contains(t, out.String(), `{"jsonrpc":"2.0","id":2,"result":{}}`)
	assert.Empty(t, inv.calls)
}

func TestServeStdio_OversizedLineIsSkipped(t *testing.T) {
	h, inv := newTestHandler(t)
	big := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_projects","arguments":{"pad":"` +
		strings.Repeat("x", maxMessageSize) + `"}}}`
	in := big + "\n" + `{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"

	var out bytes.Buffer
	require.NoError(t, ServeStdio(context.Background(), h, strings.NewReader(in), &out, 1, logging.Test(t)))

	got := responsesByID(t, out.String())
	require.Len(t, got, 2, out.String())
	require.NotNil(t, got["null"].Error)
	assert.Equal(t, mcp.CodeParseError, got["null"].Error.Code)
	assert.Nil(t, got["2"].Error)
	assert.Empty(t, inv.calls)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestServeStdio_WriteFailure(t *testing.T) {
	h, _ := newTestHandler(t)
	in := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	err := ServeStdio(context.Background(), h, strings.NewReader(in), failingWriter{}, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func itoa(n int) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}
