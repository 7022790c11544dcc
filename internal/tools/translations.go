// translations.go - Translation handlers.
package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/schema"
)

type setTranslationBody struct {
	Value string `json:"value"`
}

func setTranslation(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	path := keyPath(args, "translations", url.PathEscape(args.String("locale")))
	return c.Call(ctx, http.MethodPut, path, setTranslationBody{Value: args.String("value")})
}

type translateBody struct {
	Keys []string `json:"keys"`
	// any so that an explicitly empty list is still sent.
	TargetLocales any `json:"targetLocales,omitempty"`
}

// translate forwards the key list as-is; the backend enforces its 20-key limit.
func translate(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	body := translateBody{Keys: args.Strings("keys")}
	if args.Has("targetLocales") {
		body.TargetLocales = args.Strings("targetLocales")
	}
	return c.Call(ctx, http.MethodPost, projectPath(args.String("projectId"), "translate"), body)
}
