package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

type ProductGetter interface {
	GetProduct(ctx context.Context, id, channel string) (catalog.Product, error)
}

type GetProductHandler struct {
	Service  ProductGetter
	Reporter ErrorReporter
}

func (h *GetProductHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := stringArgument(args, "id")
	if err != nil {
		return failCall(ctx, h.Reporter, "get_product", err)
	}
	channel, err := stringArgument(args, "channel")
	if err != nil {
		return failCall(ctx, h.Reporter, "get_product", err)
	}
	product, err := h.Service.GetProduct(ctx, id, channel)
	if err != nil {
		return failCall(ctx, h.Reporter, "get_product", err)
	}
	return mcp.NewToolResultJSON(product)
}
