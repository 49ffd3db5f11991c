package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/metrics"
)

// DefaultChannel is the channel used by Search and Fetch, which take none.
const DefaultChannel = "default-channel"

const opProductByID = "productById"

// ListRequest carries the arguments of a product listing.
type ListRequest struct {
	Channel string
	Where   Field[ProductWhere]
	SortBy  Field[ProductOrder]
	Search  Field[string]
}

// Service implements the catalog operations on top of a Client. It keeps no
// state between calls and is safe for concurrent use.
type Service struct {
	client         Client
	pageSize       int
	defaultChannel string
	projector      Projector
	log            logging.Logger
	metrics        *metrics.Metrics
	walker         *Walker
}

type Option func(*Service)

func WithPageSize(n int) Option {
	return func(s *Service) { s.pageSize = n }
}

func WithDefaultChannel(channel string) Option {
	return func(s *Service) {
		if channel != "" {
			s.defaultChannel = channel
		}
	}
}

func WithStorefrontURL(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.projector.BaseURL = base
		}
	}
}

func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService builds a Service around client.
func NewService(client Client, opts ...Option) *Service {
	s := &Service{
		client:         client,
		pageSize:       DefaultPageSize,
		defaultChannel: DefaultChannel,
		projector:      Projector{BaseURL: DefaultStorefrontURL},
		log:            logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithName("catalog")
	s.walker = NewWalker(client, s.pageSize, s.log, s.metrics)
	return s
}

// DefaultChannel returns the channel Search and Fetch run against.
func (s *Service) DefaultChannel() string {
	return s.defaultChannel
}

// ListProducts returns every product in the channel matching req, in upstream
// order. Either the complete list or an error is returned.
func (s *Service) ListProducts(ctx context.Context, req ListRequest) ([]Product, error) {
	if strings.TrimSpace(req.Channel) == "" {
		return nil, invalid("channel", "must not be empty")
	}
	where, err := TranslateWhere(req.Where)
	if err != nil {
		return nil, err
	}
	sortBy, err := TranslateOrder(req.SortBy)
	if err != nil {
		return nil, err
	}
	var search *string
	if req.Search.IsSet() {
		search = &req.Search.Value
	}
	return s.walker.Collect(ctx, Query{
		Channel: req.Channel,
		Where:   where,
		SortBy:  sortBy,
		Search:  search,
	})
}

// GetProduct returns one product by id. ErrNotFound is returned when the
// channel has no such product.
func (s *Service) GetProduct(ctx context.Context, id, channel string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, invalid("id", "must not be empty")
	}
	if strings.TrimSpace(channel) == "" {
		return Product{}, invalid("channel", "must not be empty")
	}
	raw, err := s.client.ProductByID(ctx, id, channel)
	if err != nil {
		return Product{}, upstream(opProductByID, err)
	}
	if raw == nil {
		return Product{}, fmt.Errorf("product %q in channel %q: %w", id, channel, ErrNotFound)
	}
	p, err := NormalizeProduct(raw)
	if err != nil {
		return Product{}, upstream(opProductByID, err)
	}
	return p, nil
}

// Search runs a free-text search in the default channel.
func (s *Service) Search(ctx context.Context, query string) (SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		return SearchResults{}, invalid("query", "must not be empty")
	}
	products, err := s.ListProducts(ctx, ListRequest{
		Channel: s.defaultChannel,
		Search:  Value(query),
	})
	if err != nil {
		return SearchResults{}, err
	}
	return s.projector.SearchAll(products), nil
}

// Fetch returns one product from the default channel in the fetch envelope.
func (s *Service) Fetch(ctx context.Context, id string) (FetchResult, error) {
	p, err := s.GetProduct(ctx, id, s.defaultChannel)
	if err != nil {
		return FetchResult{}, err
	}
	r, err := s.projector.Fetch(p)
	if err != nil {
		return FetchResult{}, fmt.Errorf("project product %q: %w", id, err)
	}
	return r, nil
}
