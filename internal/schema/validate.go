// validate.go - Argument validation against a tool's parameter declarations.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ProblemKind classifies a single validation problem.
type ProblemKind string

const (
	ProblemMissing ProblemKind = "missing"
	ProblemType    ProblemKind = "type"
	ProblemUnknown ProblemKind = "unknown"
)

// Problem is one offending field.
type Problem struct {
	Field   string
	Kind    ProblemKind
	Message string
}

// ValidationError reports every problem found in one set of arguments.
type ValidationError struct {
	Tool     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Message
	}
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(msgs, "; "))
}

// Fields returns the offending field names in the order they were found.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Field != "" {
			fields = append(fields, p.Field)
		}
	}
	return fields
}

// Validate checks raw arguments against t and returns typed Args.
// Empty or null arguments are treated as an empty object. A null value
// for a parameter is the same as leaving it out.
func (t Tool) Validate(raw json.RawMessage) (Args, error) {
	fields := map[string]json.RawMessage{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Args{}, &ValidationError{Tool: t.Name, Problems: []Problem{{
				Kind:    ProblemType,
				Message: "arguments must be a JSON object",
			}}}
		}
	}

	values := make(map[string]any, len(t.Params))
	var problems []Problem
	for _, p := range t.Params {
		v, ok := fields[p.Name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			if p.Required {
				problems = append(problems, Problem{
					Field:   p.Name,
					Kind:    ProblemMissing,
					Message: fmt.Sprintf("missing required parameter '%s'", p.Name),
				})
			} else if p.Default != nil {
				values[p.Name] = p.Default
			}
			continue
		}

		decoded, err := decodeParam(p.Type, v)
		if err != nil {
			problems = append(problems, Problem{
				Field:   p.Name,
				Kind:    ProblemType,
				Message: fmt.Sprintf("parameter '%s' must be %s", p.Name, typeNoun(p.Type)),
			})
			continue
		}
		values[p.Name] = decoded
	}

	var unknown []string
	for name := range fields {
		if _, known := t.Param(name); !known {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		problems = append(problems, Problem{
			Field:   name,
			Kind:    ProblemUnknown,
			Message: fmt.Sprintf("unknown parameter '%s'", name),
		})
	}

	if len(problems) > 0 {
		return Args{}, &ValidationError{Tool: t.Name, Problems: problems}
	}
	return Args{values: values}, nil
}

func decodeParam(typ Type, raw json.RawMessage) (any, error) {
	switch typ {
	case TypeString:
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case TypeBoolean:
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err
	case TypeNumber:
		var n float64
		err := json.Unmarshal(raw, &n)
		return n, err
	case TypeStringArray:
		// Decoding straight into []string would turn a null element into "".
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, err
		}
		ss := make([]string, len(elems))
		for i, elem := range elems {
			elem = bytes.TrimSpace(elem)
			if len(elem) == 0 || elem[0] != '"' {
				return nil, fmt.Errorf("element %d is not a string", i)
			}
			if err := json.Unmarshal(elem, &ss[i]); err != nil {
				return nil, err
			}
		}
		return ss, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type %q", typ)
	}
}

func typeNoun(typ Type) string {
	switch typ {
	case TypeString:
		return "a string"
	case TypeBoolean:
		return "a boolean"
	case TypeNumber:
		return "a number"
	case TypeStringArray:
		return "an array of strings"
	default:
		return string(typ)
	}
}
