// handler.go - MCP protocol handler for JSON-RPC 2.0 requests.
// Transport-independent; the stdio and HTTP adapters both feed it decoded messages.
package server

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/localeops/localeops-mcp/internal/mcp"
)

const (
	protocolVersionLatest = "2025-06-18"
	protocolVersionLegacy = "2024-11-05"

	serverName = "localeops"
)

// serverInstructions is sent once per session in the initialize response.
const serverInstructions = `LocaleOps manages translation projects through 9 tools.

Workflow:
- list_projects / get_project: find the project ID and its locales
- list_keys / list_untranslated: inspect keys and find gaps per locale
- add_key, delete_key, add_locale: change the project structure
- set_translation: write one translation by hand
- translate: machine-translate up to 20 keys at once

Every tool returns the backend's JSON as text. Errors start with "Error: <code>:" followed by an instruction, then a JSON object with details.`

// Invoker runs tools. *dispatch.Dispatcher implements it.
type Invoker interface {
	Tools() []mcp.Tool
	Invoke(ctx context.Context, name string, args json.RawMessage) mcp.ToolResult
}

// Handler answers MCP methods. Safe for concurrent use.
type Handler struct {
	invoker Invoker
	version string
	log     *zap.Logger
}

func NewHandler(invoker Invoker, version string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{invoker: invoker, version: version, log: log}
}

type methodHandler func(h *Handler, ctx context.Context, req mcp.JSONRPCRequest) mcp.JSONRPCResponse

var methodHandlers = map[string]methodHandler{
	"initialize": (*Handler).handleInitialize,
	"tools/list": (*Handler).handleToolsList,
	"tools/call": (*Handler).handleToolsCall,
}

// staticResponses maps methods to fixed result bodies.
var staticResponses = map[string]string{
	"ping":                     `{}`,
	"prompts/list":             `{"prompts":[]}`,
	"resources/list":           `{"resources":[]}`,
	"resources/templates/list": `{"resourceTemplates":[]}`,
}

// HandleMessage decodes one raw message and handles it.
// Returns nil when no response should be sent.
func (h *Handler) HandleMessage(ctx context.Context, raw []byte) *mcp.JSONRPCResponse {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		resp := mcp.NewError(nil, mcp.CodeInvalidRequest, "Invalid Request: batch requests are not supported")
		return &resp
	}

	var req mcp.JSONRPCRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		// JSON-RPC: parse errors must have null id
		resp := mcp.NewError(nil, mcp.CodeParseError, "Parse error: "+err.Error())
		return &resp
	}
	return h.HandleRequest(ctx, req)
}

// HandleRequest processes an MCP request and returns a response.
// Returns nil for notifications.
func (h *Handler) HandleRequest(ctx context.Context, req mcp.JSONRPCRequest) *mcp.JSONRPCResponse {
	if req.HasInvalidID() {
		resp := mcp.NewError(nil, mcp.CodeInvalidRequest, "Invalid Request: id must be string or number when present")
		return &resp
	}

	// Notifications do not get responses per JSON-RPC 2.0.
	if !req.HasID() {
		h.log.Debug("notification", zap.String("method", req.Method))
		return nil
	}

	if req.JSONRPC != "2.0" {
		resp := mcp.NewError(req.ID, mcp.CodeInvalidRequest, `Invalid Request: jsonrpc must be "2.0"`)
		return &resp
	}

	if handler, ok := methodHandlers[req.Method]; ok {
		resp := handler(h, ctx, req)
		return &resp
	}

	if staticResult, ok := staticResponses[req.Method]; ok {
		resp := mcp.NewResult(req.ID, json.RawMessage(staticResult))
		return &resp
	}

	resp := mcp.NewError(req.ID, mcp.CodeMethodNotFound, "Method not found: "+req.Method)
	return &resp
}

func negotiateProtocolVersion(rawParams json.RawMessage) string {
	var params struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if len(rawParams) > 0 {
		_ = json.Unmarshal(rawParams, &params)
	}

	switch params.ProtocolVersion {
	case protocolVersionLatest, protocolVersionLegacy:
		return params.ProtocolVersion
	default:
		return protocolVersionLatest
	}
}

func (h *Handler) handleInitialize(_ context.Context, req mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	result := mcp.InitializeResult{
		ProtocolVersion: negotiateProtocolVersion(req.Params),
		ServerInfo:      mcp.ServerInfo{Name: serverName, Version: h.version},
		Capabilities:    mcp.Capabilities{Tools: mcp.ToolsCapability{}},
		Instructions:    serverInstructions,
	}
	h.log.Info("session initialized", zap.String("protocol_version", result.ProtocolVersion))
	return mcp.NewResult(req.ID, mcp.SafeMarshal(result, "{}"))
}

func (h *Handler) handleToolsList(_ context.Context, req mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	result := mcp.ToolsListResult{Tools: h.invoker.Tools()}
	return mcp.NewResult(req.ID, mcp.SafeMarshal(result, `{"tools":[]}`))
}

func (h *Handler) handleToolsCall(ctx context.Context, req mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	var params mcp.ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return mcp.NewError(req.ID, mcp.CodeInvalidParams, "Invalid params: "+err.Error())
	}
	if params.Name == "" {
		return mcp.NewError(req.ID, mcp.CodeInvalidParams, "Invalid params: missing tool name")
	}

	result := h.invoker.Invoke(ctx, params.Name, params.Arguments)
	return mcp.NewResult(req.ID, mcp.MarshalResult(result))
}
