// response.go - Tool result construction and JSON formatting helpers.
package mcp

import (
	"bytes"
	"encoding/json"
)

const marshalFallback = `{"content":[{"type":"text","text":"Internal error: failed to marshal result"}],"isError":true}`

// SafeMarshal marshals v to JSON, returning fallback if marshaling fails.
func SafeMarshal(v any, fallback string) json.RawMessage {
	out, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(fallback)
	}
	return json.RawMessage(out)
}

// MarshalResult encodes a tool result for a JSON-RPC result field.
func MarshalResult(result ToolResult) json.RawMessage {
	return SafeMarshal(result, marshalFallback)
}

// TextResult constructs a successful tool result with a single text block.
func TextResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}
}

// ErrorResult constructs a failed tool result with a single text block.
func ErrorResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}, IsError: true}
}

// PrettyJSON re-indents raw JSON with two spaces, keeping key order and
// literals exactly as received. Empty input renders as null.
func PrettyJSON(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONResult constructs a successful tool result whose text is the
// pretty-printed payload.
func JSONResult(raw json.RawMessage) ToolResult {
	text, err := PrettyJSON(raw)
	if err != nil {
		return StructuredErrorResult(ErrMarshalFailed, "Failed to format response: "+err.Error(), "Do not retry; report this payload as a server bug")
	}
	return TextResult(text)
}
