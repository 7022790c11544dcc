// paths.go - Path and query construction for backend calls.
package tools

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/localeops/localeops-mcp/internal/schema"
)

// projectPath returns /projects/{projectId} followed by the given segments.
// Every dynamic segment is percent-encoded so a '/' or space inside a key
// cannot change the route.
func projectPath(projectID string, segments ...string) string {
	var b strings.Builder
	b.WriteString("/projects/")
	b.WriteString(url.PathEscape(projectID))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

func keyPath(args schema.Args, segments ...string) string {
	return projectPath(args.String("projectId"), append([]string{"keys", url.PathEscape(args.String("key"))}, segments...)...)
}

// withQuery appends q to path, or returns path unchanged when q is empty.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// keyFilters builds the list_keys query from supplied arguments only.
// Empty strings, false booleans, and absent numbers are left out.
func keyFilters(args schema.Args) url.Values {
	q := url.Values{}
	if s := args.String("search"); s != "" {
		q.Set("search", s)
	}
	if l := args.String("locale"); l != "" {
		q.Set("locale", l)
	}
	if args.Bool("untranslated") {
		q.Set("untranslated", "true")
	}
	// An empty search means no filter, but a supplied page number is sent even when 0.
	for _, name := range []string{"page", "pageSize"} {
		if n, ok := args.Number(name); ok {
			q.Set(name, formatNumber(n))
		}
	}
	return q
}

// formatNumber renders n in its shortest decimal form: 2, 2.5, 1000000.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
