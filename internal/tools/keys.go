// keys.go - Translation key handlers.
package tools

import (
	"context"
	"net/http"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/schema"
)

func listKeys(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	path := withQuery(projectPath(args.String("projectId"), "keys"), keyFilters(args))
	return c.Call(ctx, http.MethodGet, path, nil)
}

func listUntranslated(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	q := keyFilters(args)
	q.Set("untranslated", "true")
	return c.Call(ctx, http.MethodGet, withQuery(projectPath(args.String("projectId"), "keys"), q), nil)
}

type addKeyBody struct {
	Key          string `json:"key"`
	DefaultValue string `json:"defaultValue"`
}

// addKey does not check the key format locally; the backend rejects bad keys.
func addKey(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	return c.Call(ctx, http.MethodPost, projectPath(args.String("projectId"), "keys"), addKeyBody{
		Key:          args.String("key"),
		DefaultValue: args.String("defaultValue"),
	})
}

func deleteKey(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	return c.Call(ctx, http.MethodDelete, keyPath(args), nil)
}
