// registry.go - Operation registry: tool name -> (schema, handler).
// Built once at startup and read-only afterwards, so concurrent lookups need no locking.
package tools

import (
	"context"
	"fmt"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/mcp"
	"github.com/localeops/localeops-mcp/internal/schema"
)

// Handler performs exactly one backend call for validated arguments.
type Handler func(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error)

// Operation pairs a tool declaration with its handler.
type Operation struct {
	Tool    schema.Tool
	Handler Handler
}

// Registry is the single source of truth for what the server can do.
type Registry struct {
	ops   map[string]Operation
	order []string
}

var handlers = map[string]Handler{
	"list_projects":     listProjects,
	"get_project":       getProject,
	"list_keys":         listKeys,
	"add_key":           addKey,
	"set_translation":   setTranslation,
	"translate":         translate,
	"list_untranslated": listUntranslated,
	"add_locale":        addLocale,
	"delete_key":        deleteKey,
}

// NewRegistry binds every declared tool to its handler.
// It panics if a declared tool has no handler: that is a build-time mistake.
func NewRegistry() *Registry {
	return newRegistry(schema.AllTools(), handlers)
}

func newRegistry(decls []schema.Tool, hs map[string]Handler) *Registry {
	r := &Registry{ops: make(map[string]Operation, len(decls))}
	for _, tool := range decls {
		h, ok := hs[tool.Name]
		if !ok {
			panic(fmt.Sprintf("tools: no handler for %q", tool.Name))
		}
		if _, dup := r.ops[tool.Name]; dup {
			panic(fmt.Sprintf("tools: duplicate tool %q", tool.Name))
		}
		r.ops[tool.Name] = Operation{Tool: tool, Handler: h}
		r.order = append(r.order, tool.Name)
	}
	return r
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered tool names in advertised order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Tools returns the MCP descriptors for tools/list.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name].Tool.Descriptor())
	}
	return out
}
