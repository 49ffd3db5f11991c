package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/catalog-mcp/internal/catalog"
	"github.com/roivaz/catalog-mcp/internal/logging"
)

type recordingReporter struct {
	mu      sync.Mutex
	reports []string
}

func (r *recordingReporter) Report(_ context.Context, tool string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, tool+": "+err.Error())
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

// pagedClient serves n pages of size products each and fails the page listed
// in failPage (1-based) when set.
type pagedClient struct {
	mu       sync.Mutex
	pages    int
	size     int
	failPage int
	calls    int
	channels []string
	products map[string]json.RawMessage
}

func (c *pagedClient) ListProducts(_ context.Context, req catalog.PageRequest) (catalog.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.channels = append(c.channels, req.Channel)
	if c.calls == c.failPage {
		return catalog.Page{}, errors.New("connection reset by peer")
	}
	page := catalog.Page{}
	for i := 0; i < c.size; i++ {
		id := fmt.Sprintf("%d-%d", c.calls, i)
		page.Nodes = append(page.Nodes, json.RawMessage(fmt.Sprintf(`{"id":%q,"name":"Product %s","slug":"product-%s"}`, id, id, id)))
	}
	if c.calls < c.pages {
		cursor := fmt.Sprintf("cursor-%d", c.calls)
		page.EndCursor = &cursor
	}
	return page, nil
}

func (c *pagedClient) ProductByID(_ context.Context, id, channel string) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels = append(c.channels, channel)
	return c.products[id], nil
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func newService(c catalog.Client) *catalog.Service {
	return catalog.NewService(c, catalog.WithLogger(logging.Discard()))
}

func TestProductsHandler_ReturnsAllPages(t *testing.T) {
	client := &pagedClient{pages: 2, size: 3}
	reporter := &recordingReporter{}
	h := &ProductsHandler{Service: newService(client), Reporter: reporter}

	result, err := h.ToolAdapter(context.Background(), callRequest("products", map[string]any{
		"channel": "default-channel",
		"where":   map[string]any{"isAvailable": true},
		"sortBy":  map[string]any{"field": "NAME", "direction": "ASC"},
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	list, ok := result.StructuredContent.(catalog.ProductList)
	require.True(t, ok, "structured content should be a ProductList")
	assert.Equal(t, 6, list.Total)
	assert.Len(t, list.Products, 6)
	assert.Equal(t, "1-0", list.Products[0].ID)
	assert.Equal(t, "2-2", list.Products[5].ID)
	assert.Zero(t, reporter.count())
}

func TestProductsHandler_FailureOnSecondPage(t *testing.T) {
	client := &pagedClient{pages: 3, size: 100, failPage: 2}
	reporter := &recordingReporter{}
	h := &ProductsHandler{Service: newService(client), Reporter: reporter}

	result, err := h.ToolAdapter(context.Background(), callRequest("products", map[string]any{"channel": "default-channel"}))
	require.Error(t, err)
	assert.Nil(t, result, "no partial result may be returned")
	var ue *catalog.UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, 1, reporter.count())
}

func TestProductsHandler_InvalidInput(t *testing.T) {
	cases := map[string]map[string]any{
		"missing channel": {},
		"unknown filter":  {"channel": "uk", "where": map[string]any{"colour": "red"}},
		"bad sort":        {"channel": "uk", "sortBy": map[string]any{"direction": "UP"}},
		"bad search":      {"channel": "uk", "searchBy": 42},
		"channel type":    {"channel": 7},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			client := &pagedClient{pages: 1}
			reporter := &recordingReporter{}
			h := &ProductsHandler{Service: newService(client), Reporter: reporter}

			result, err := h.ToolAdapter(context.Background(), callRequest("products", args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Equal(t, 1, reporter.count())
			assert.Zero(t, client.calls, "invalid input must not reach the upstream")
		})
	}
}

func TestGetProductHandler(t *testing.T) {
	client := &pagedClient{products: map[string]json.RawMessage{
		"UHJvZHVjdDox": json.RawMessage(`{"id":"UHJvZHVjdDox","name":"Red Mug","slug":"red-mug"}`),
	}}
	reporter := &recordingReporter{}
	h := &GetProductHandler{Service: newService(client), Reporter: reporter}

	result, err := h.ToolAdapter(context.Background(), callRequest("get_product", map[string]any{
		"id": "UHJvZHVjdDox", "channel": "uk",
	}))
	require.NoError(t, err)
	product, ok := result.StructuredContent.(catalog.Product)
	require.True(t, ok)
	assert.Equal(t, "red-mug", product.Slug)
	assert.Equal(t, []string{"uk"}, client.channels)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"thumbnail":null`)
	assert.Contains(t, text.Text, `"pricing":null`)

	result, err = h.ToolAdapter(context.Background(), callRequest("get_product", map[string]any{
		"id": "missing", "channel": "uk",
	}))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, 1, reporter.count())
}

func TestSearchHandler(t *testing.T) {
	client := &pagedClient{pages: 1, size: 2}
	reporter := &recordingReporter{}
	h := &SearchHandler{Service: newService(client), Reporter: reporter}

	result, err := h.ToolAdapter(context.Background(), callRequest("search", map[string]any{"query": "red mug"}))
	require.NoError(t, err)
	results, ok := result.StructuredContent.(catalog.SearchResults)
	require.True(t, ok)
	require.Len(t, results.Results, 2)
	assert.Equal(t, catalog.DefaultStorefrontURL+"product-1-0", results.Results[0].URL)
	assert.Nil(t, results.Results[0].Image)
	assert.Equal(t, []string{catalog.DefaultChannel}, client.channels)

	result, err = h.ToolAdapter(context.Background(), callRequest("search", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, 1, reporter.count())
}

func TestFetchHandler(t *testing.T) {
	client := &pagedClient{products: map[string]json.RawMessage{
		"1": json.RawMessage(`{"id":"1","name":"Red Mug","slug":"red-mug","description":"Holds tea."}`),
	}}
	reporter := &recordingReporter{}
	h := &FetchHandler{Service: newService(client), Reporter: reporter}

	result, err := h.ToolAdapter(context.Background(), callRequest("fetch", map[string]any{"id": "1"}))
	require.NoError(t, err)
	fetched, ok := result.StructuredContent.(catalog.FetchResult)
	require.True(t, ok)
	assert.Equal(t, "Holds tea.", fetched.Text)
	assert.Equal(t, catalog.DefaultStorefrontURL+"red-mug", fetched.URL)
	assert.Equal(t, "red-mug", fetched.Metadata["slug"])
	for _, key := range []string{"externalReference", "thumbnail", "pricing"} {
		require.Contains(t, fetched.Metadata, key)
		assert.Nil(t, fetched.Metadata[key])
	}
	assert.Equal(t, []string{catalog.DefaultChannel}, client.channels)

	_, err = h.ToolAdapter(context.Background(), callRequest("fetch", map[string]any{"id": "2"}))
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, 1, reporter.count())
}

func TestClientLogReporter_WithoutSession(t *testing.T) {
	r := NewClientLogReporter(logging.Discard())
	assert.NotPanics(t, func() {
		r.Report(context.Background(), "products", errors.New("boom"))
	})
}
