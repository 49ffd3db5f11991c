package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

type Searcher interface {
	Search(ctx context.Context, query string) (catalog.SearchResults, error)
}

type SearchHandler struct {
	Service  Searcher
	Reporter ErrorReporter
}

func (h *SearchHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := stringArgument(req.GetArguments(), "query")
	if err != nil {
		return failCall(ctx, h.Reporter, "search", err)
	}
	results, err := h.Service.Search(ctx, query)
	if err != nil {
		return failCall(ctx, h.Reporter, "search", err)
	}
	return mcp.NewToolResultJSON(results)
}
