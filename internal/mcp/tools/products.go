package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

type ProductLister interface {
	ListProducts(ctx context.Context, req catalog.ListRequest) ([]catalog.Product, error)
}

type ProductsHandler struct {
	Service  ProductLister
	Reporter ErrorReporter
}

func (h *ProductsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listReq, err := parseListRequest(req.GetArguments())
	if err != nil {
		return failCall(ctx, h.Reporter, "products", err)
	}
	products, err := h.Service.ListProducts(ctx, listReq)
	if err != nil {
		return failCall(ctx, h.Reporter, "products", err)
	}
	return mcp.NewToolResultJSON(catalog.ProductList{Products: products, Total: len(products)})
}

func parseListRequest(args map[string]any) (catalog.ListRequest, error) {
	channel, err := stringArgument(args, "channel")
	if err != nil {
		return catalog.ListRequest{}, err
	}
	where, err := catalog.ParseArgument[catalog.ProductWhere](args, "where")
	if err != nil {
		return catalog.ListRequest{}, err
	}
	sortBy, err := catalog.ParseArgument[catalog.ProductOrder](args, "sortBy")
	if err != nil {
		return catalog.ListRequest{}, err
	}
	search, err := catalog.ParseArgument[string](args, "searchBy")
	if err != nil {
		return catalog.ListRequest{}, err
	}
	return catalog.ListRequest{Channel: channel, Where: where, SortBy: sortBy, Search: search}, nil
}
