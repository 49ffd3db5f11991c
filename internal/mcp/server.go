package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roivaz/catalog-mcp/internal/catalog"
	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/metrics"
)

const (
	serverName    = "catalog-mcp"
	serverVersion = "1.0.0"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

const channelDescription = `Slug of a channel for which the data should be returned. This field is required.
If the user has not provided it, ask them which channel to use.`

const productDescription = `This tool retrieves product information such as: ID, name, slug, external reference,
product type, category, date of creation, date of last update, and pricing.

Products are channel-aware, meaning that their availability and pricing can vary
based on the specified channel.`

func toolDefinitions() map[string]mcp.Tool {
	return map[string]mcp.Tool{
		"products": mcp.NewTool("products",
			mcp.WithDescription("Fetch list of products from Saleor GraphQL API.\n\n"+productDescription),
			mcp.WithString("channel",
				mcp.Required(),
				mcp.Description(channelDescription),
			),
			mcp.WithObject("where",
				mcp.Description("Filter products by specific criteria"),
				mcp.Properties(productWhereProperties()),
				mcp.AdditionalProperties(false),
			),
			mcp.WithObject("sortBy",
				mcp.Description("Sort products by specific field"),
				mcp.Properties(productOrderProperties),
				mcp.AdditionalProperties(false),
			),
			mcp.WithString("searchBy",
				mcp.Description("Search products with full-text search"),
			),
			mcp.WithOutputSchema[catalog.ProductList](),
			mcp.WithTitleAnnotation("Fetch products"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		"get_product": mcp.NewTool("get_product",
			mcp.WithDescription("Fetch a single product from Saleor by its ID and channel.\n\n"+productDescription),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("ID of a product"),
			),
			mcp.WithString("channel",
				mcp.Required(),
				mcp.Description(channelDescription),
			),
			mcp.WithOutputSchema[catalog.Product](),
			mcp.WithTitleAnnotation("Get product by ID"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		"search": mcp.NewTool("search",
			mcp.WithDescription("Fetch list of products from Saleor from the default channel.\n\nDon't use it if the user requests a specific channel."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Full-text search query"),
			),
			mcp.WithOutputSchema[catalog.SearchResults](),
			mcp.WithTitleAnnotation("Search products"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		"fetch": mcp.NewTool("fetch",
			mcp.WithDescription("Fetch a single product from the Saleor default channel.\n\nDon't use it if the user requests a specific channel."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("ID of a product"),
			),
			mcp.WithOutputSchema[catalog.FetchResult](),
			mcp.WithTitleAnnotation("Get product by ID"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
	}
}

func New(cfg Config) *Server {
	log := cfg.Logger.WithName("mcp")
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(instrument(log, cfg.Metrics)),
	)

	definitions := toolDefinitions()
	for name, adapter := range cfg.ToolAdapters {
		tool, ok := definitions[name]
		if !ok {
			log.Info("skipping tool without definition", "tool", name)
			continue
		}
		mcpServer.AddTool(tool, adapter.ToolAdapter)
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	endpoint := cfg.EndpointPath
	if endpoint == "" {
		endpoint = DefaultEndpointPath
	}
	router := mux.NewRouter()
	router.Use(logRequests(log, "/healthz", "/metrics"))
	router.Handle(endpoint, httpServer)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if cfg.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: router,
	}
}

// instrument logs every tool call under a fresh call id and records its
// outcome and latency.
func instrument(log logging.Logger, m *metrics.Metrics) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tool := req.Params.Name
			callLog := log.WithValues("tool", tool, "call", uuid.NewString())
			callLog.Info("tool call")
			start := time.Now()

			result, err := next(ctx, req)

			elapsed := time.Since(start)
			outcome := metrics.OutcomeSuccess
			switch {
			case err != nil:
				outcome = metrics.OutcomeError
			case result != nil && result.IsError:
				outcome = metrics.OutcomeInvalid
			}
			m.RecordToolCall(tool, outcome, elapsed)
			callLog.Info("tool call finished", "outcome", outcome, "duration", elapsed.String())
			return result, err
		}
	}
}

// logRequests logs every HTTP request except those for the skipped paths.
func logRequests(log logging.Logger, skip ...string) mux.MiddlewareFunc {
	skipped := make(map[string]bool, len(skip))
	for _, p := range skip {
		skipped[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipped[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
		})
	}
}
