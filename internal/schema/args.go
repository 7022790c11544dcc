// args.go - Validated, typed tool arguments.
package schema

// Args holds arguments that passed Validate. Every required parameter is
// present with its declared type; optional parameters are present only when
// supplied or defaulted.
type Args struct {
	values map[string]any
}

// NewArgs builds Args directly from typed values. Intended for tests and
// internal callers that already hold validated data.
func NewArgs(values map[string]any) Args {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Args{values: copied}
}

// Has reports whether name was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns the string value of name, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a.values[name].(string)
	return s
}

// Bool returns the boolean value of name, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

// Number returns the numeric value of name and whether it was present.
func (a Args) Number(name string) (float64, bool) {
	switch n := a.values[name].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// Strings returns the string array value of name, or nil when absent.
func (a Args) Strings(name string) []string {
	ss, _ := a.values[name].([]string)
	return ss
}

// Len returns the number of parameters held.
func (a Args) Len() int {
	return len(a.values)
}
