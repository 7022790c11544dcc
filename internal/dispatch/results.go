// results.go - Conversion of each failure class into a structured error result.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/mcp"
	"github.com/localeops/localeops-mcp/internal/schema"
)

func validationResult(err error) mcp.ToolResult {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return mcp.StructuredErrorResult(mcp.ErrInvalidParam, err.Error(), "Fix the arguments and call again")
	}

	fields := verr.Fields()
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "'" + f + "'"
	}
	list := strings.Join(quoted, ", ")

	code, retry := mcp.ErrInvalidParam, "Fix the arguments and call again"
	switch problemKind(verr) {
	case schema.ProblemMissing:
		code, retry = mcp.ErrMissingParam, fmt.Sprintf("Add the %s parameter and call again", list)
	case schema.ProblemUnknown:
		code, retry = mcp.ErrUnknownParam, fmt.Sprintf("Remove the %s parameter and call again", list)
	case schema.ProblemType:
		if len(fields) > 0 {
			retry = fmt.Sprintf("Fix the %s parameter and call again", list)
		}
	}
	return mcp.StructuredErrorResult(code, verr.Error(), retry, mcp.WithParam(strings.Join(fields, ",")))
}

// problemKind returns the shared kind of every problem, or "" when they differ.
func problemKind(verr *schema.ValidationError) schema.ProblemKind {
	if len(verr.Problems) == 0 {
		return ""
	}
	kind := verr.Problems[0].Kind
	for _, p := range verr.Problems[1:] {
		if p.Kind != kind {
			return ""
		}
	}
	return kind
}

// rejectedResult surfaces the backend's own error body unchanged. Status codes
// are not interpreted beyond success or failure.
func rejectedResult(res backend.Result) mcp.ToolResult {
	result := mcp.StructuredErrorResult(mcp.ErrBackendRejected,
		fmt.Sprintf("backend returned HTTP %d", res.Status),
		"Read the backend error in details, fix the request, and call again",
		mcp.WithStatus(res.Status),
		mcp.WithDetails(res.Data))
	if len(res.Data) == 0 {
		return result
	}
	if pretty, err := mcp.PrettyJSON(res.Data); err == nil {
		result.Content[0].Text += "\n\nBackend response:\n" + pretty
	}
	return result
}

func transportResult(err error) mcp.ToolResult {
	var opts []func(*mcp.StructuredError)
	var terr *backend.TransportError
	if errors.As(err, &terr) && terr.Status != 0 {
		opts = append(opts, mcp.WithStatus(terr.Status))
	}
	if backend.IsConnectionError(err) {
		return mcp.StructuredErrorResult(mcp.ErrBackendUnreachable, err.Error(),
			"Check network access to the translation backend and call again", opts...)
	}
	return mcp.StructuredErrorResult(mcp.ErrTransport, err.Error(),
		"Do not retry immediately; the backend response could not be used", opts...)
}
