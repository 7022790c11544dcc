// projects.go - Project and locale handlers.
package tools

import (
	"context"
	"net/http"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/schema"
)

func listProjects(ctx context.Context, c backend.Caller, _ schema.Args) (backend.Result, error) {
	return c.Call(ctx, http.MethodGet, "/projects", nil)
}

func getProject(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	return c.Call(ctx, http.MethodGet, projectPath(args.String("projectId")), nil)
}

type addLocaleBody struct {
	Locale string `json:"locale"`
}

// addLocale passes the locale tag through unchecked; the backend validates BCP-47.
func addLocale(ctx context.Context, c backend.Caller, args schema.Args) (backend.Result, error) {
	return c.Call(ctx, http.MethodPost, projectPath(args.String("projectId"), "locales"), addLocaleBody{
		Locale: args.String("locale"),
	})
}
