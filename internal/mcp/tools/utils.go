package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

// failCall reports err and turns it into the tool's outcome. Invalid input
// becomes an error result the model can read and correct; everything else
// fails the call.
func failCall(ctx context.Context, r ErrorReporter, tool string, err error) (*mcp.CallToolResult, error) {
	if r != nil {
		r.Report(ctx, tool, err)
	}
	var ve *catalog.ValidationError
	if errors.As(err, &ve) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

func stringArgument(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &catalog.ValidationError{Argument: key, Reason: "must be a string"}
	}
	return s, nil
}
