package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/roivaz/catalog-mcp/internal/catalog"
	"github.com/roivaz/catalog-mcp/internal/config"
	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/mcp/tools"
	"github.com/roivaz/catalog-mcp/internal/metrics"
	"github.com/roivaz/catalog-mcp/internal/saleor"
)

const DefaultEndpointPath = "/mcp"

// Config holds the server wiring. Gatherer backs the /metrics endpoint; a
// nil Gatherer disables it.
type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	EndpointPath string
	Logger       logging.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
}

// CatalogService is the full set of catalog operations behind the tools.
type CatalogService interface {
	tools.ProductLister
	tools.ProductGetter
	tools.Searcher
	tools.Fetcher
}

// NewCatalogService builds the Saleor-backed catalog service from the loaded
// configuration.
func NewCatalogService(log logging.Logger, m *metrics.Metrics) (*catalog.Service, error) {
	url, err := config.ResolveGraphQLURL()
	if err != nil {
		return nil, err
	}
	client, err := saleor.NewClient(saleor.Config{
		URL:     url,
		Timeout: config.UpstreamTimeout(),
		Debug:   config.GraphQLDebug(),
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		return nil, fmt.Errorf("create graphql client: %w", err)
	}
	log.Info("using catalog api", "url", url, "defaultChannel", config.DefaultChannel())
	return catalog.NewService(client,
		catalog.WithPageSize(config.PageSize()),
		catalog.WithDefaultChannel(config.DefaultChannel()),
		catalog.WithStorefrontURL(config.StorefrontURL()),
		catalog.WithLogger(log),
		catalog.WithMetrics(m),
	), nil
}

// ToolAdapters wires every tool to svc, reporting failures through reporter.
func ToolAdapters(svc CatalogService, reporter tools.ErrorReporter) map[string]ToolAdapter {
	return map[string]ToolAdapter{
		"products":    &tools.ProductsHandler{Service: svc, Reporter: reporter},
		"get_product": &tools.GetProductHandler{Service: svc, Reporter: reporter},
		"search":      &tools.SearchHandler{Service: svc, Reporter: reporter},
		"fetch":       &tools.FetchHandler{Service: svc, Reporter: reporter},
	}
}

// DefaultConfig builds the server configuration from viper settings.
func DefaultConfig(log logging.Logger) (Config, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	svc, err := NewCatalogService(log, m)
	if err != nil {
		return Config{}, err
	}

	endpoint := config.EndpointPath()
	return Config{
		ToolAdapters: ToolAdapters(svc, tools.NewClientLogReporter(log)),
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath(endpoint),
			server.WithStateLess(true),
		},
		EndpointPath: endpoint,
		Logger:       log,
		Metrics:      m,
		Gatherer:     reg,
	}, nil
}
