package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

type Fetcher interface {
	Fetch(ctx context.Context, id string) (catalog.FetchResult, error)
}

type FetchHandler struct {
	Service  Fetcher
	Reporter ErrorReporter
}

func (h *FetchHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := stringArgument(req.GetArguments(), "id")
	if err != nil {
		return failCall(ctx, h.Reporter, "fetch", err)
	}
	result, err := h.Service.Fetch(ctx, id)
	if err != nil {
		return failCall(ctx, h.Reporter, "fetch", err)
	}
	return mcp.NewToolResultJSON(result)
}
