// types.go - MCP typed result structs.
// Content blocks, tool results, tool descriptors, and initialize results.
package mcp

import "encoding/json"

// ContentBlock represents a single content block in an MCP tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the Response Envelope returned for every tools/call.
// It always carries exactly one text block.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}

// Text returns the text of the first content block, or "" when there is none.
func (r ToolResult) Text() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

// Tool describes a tool in the MCP tools/list response.
type Tool struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	InputSchema map[string]any `json:"inputSchema" yaml:"inputSchema"`
}

// InitializeResult represents the result of an MCP initialize request.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
	Instructions    string       `json:"instructions,omitempty"`
}

// ServerInfo identifies the MCP server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities declares the server's MCP capabilities.
type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability declares tool support. The tool list never changes at runtime.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ToolsListResult represents the result of a tools/list request.
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

// ToolsCallParams is the params object of a tools/call request.
type ToolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}
