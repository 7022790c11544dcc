// schema.go - Tool parameter declarations and MCP schema rendering.
// Pure data: every tool is declared once here and never changes at runtime.
package schema

import "github.com/localeops/localeops-mcp/internal/mcp"

// Type is a parameter type. Tools only accept flat parameters of these types.
type Type string

const (
	TypeString      Type = "string"
	TypeBoolean     Type = "boolean"
	TypeNumber      Type = "number"
	TypeStringArray Type = "array" // array of strings
)

// Param declares one tool parameter.
type Param struct {
	Name        string
	Type        Type
	Required    bool
	Description string
	// Default is substituted when an optional parameter is absent. nil means no default.
	Default any
}

// Required declares a mandatory parameter.
func Required(name string, typ Type, description string) Param {
	return Param{Name: name, Type: typ, Required: true, Description: description}
}

// Optional declares an optional parameter.
func Optional(name string, typ Type, description string) Param {
	return Param{Name: name, Type: typ, Description: description}
}

// WithDefault returns a copy of p that defaults to v when absent.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	return p
}

// Tool is the declaration of one callable operation: its name, the one-line
// description shown to the host, and its ordered parameters.
type Tool struct {
	Name        string
	Description string
	Params      []Param
}

// Param returns the declaration for name.
func (t Tool) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// InputSchema renders the JSON Schema object advertised through tools/list.
func (t Tool) InputSchema() map[string]any {
	properties := make(map[string]any, len(t.Params))
	required := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		prop := map[string]any{
			"type":        string(p.Type),
			"description": p.Description,
		}
		if p.Type == TypeStringArray {
			prop["items"] = map[string]any{"type": "string"}
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	out := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// Descriptor returns the MCP tool descriptor for t.
func (t Tool) Descriptor() mcp.Tool {
	return mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema(),
	}
}

// AllTools returns every tool declaration in the order they are advertised.
func AllTools() []Tool {
	return []Tool{
		ListProjects(),
		GetProject(),
		ListKeys(),
		AddKey(),
		SetTranslation(),
		Translate(),
		ListUntranslated(),
		AddLocale(),
		DeleteKey(),
	}
}
