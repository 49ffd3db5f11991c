package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/metrics"
)

// DefaultPageSize is the number of products requested per upstream page.
const DefaultPageSize = 100

const opListProducts = "listProducts"

// Client is the upstream catalog API consumed by the walker and the service.
// Implementations must be safe for concurrent use.
type Client interface {
	// ListProducts returns one page of raw product nodes.
	ListProducts(ctx context.Context, req PageRequest) (Page, error)
	// ProductByID returns the raw product node, or nil when the channel has
	// no product with that id.
	ProductByID(ctx context.Context, id, channel string) (json.RawMessage, error)
}

// PageRequest holds the variables of one listing request. Nil members are
// not sent upstream.
type PageRequest struct {
	First   int
	After   *string
	Channel string
	Where   map[string]any
	SortBy  map[string]any
	Search  *string
}

// Page is one upstream listing page. A nil EndCursor marks the last page.
type Page struct {
	Nodes     []json.RawMessage
	EndCursor *string
}

// Query describes one walk over the listing endpoint. Where and SortBy are
// already translated.
type Query struct {
	Channel string
	Where   map[string]any
	SortBy  map[string]any
	Search  *string
}

// Walker drains the cursor-paginated listing endpoint.
type Walker struct {
	client   Client
	pageSize int
	log      logging.Logger
	metrics  *metrics.Metrics
}

// NewWalker returns a Walker requesting pageSize products per page. A
// non-positive pageSize selects DefaultPageSize.
func NewWalker(client Client, pageSize int, log logging.Logger, m *metrics.Metrics) *Walker {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Walker{client: client, pageSize: pageSize, log: log.WithName("walker"), metrics: m}
}

// Walk returns a lazy sequence over every product matching q. Each range over
// the sequence starts a new walk from the first page. Pages are requested one
// after the other; iteration stops only when the upstream returns no end
// cursor, so empty intermediate pages are skipped over. The first error is
// yielded once and ends the sequence.
func (w *Walker) Walk(ctx context.Context, q Query) iter.Seq2[Product, error] {
	return func(yield func(Product, error) bool) {
		var (
			cursor *string
			page   int
		)
		for {
			if err := ctx.Err(); err != nil {
				yield(Product{}, err)
				return
			}
			page++
			resp, err := w.client.ListProducts(ctx, PageRequest{
				First:   w.pageSize,
				After:   cursor,
				Channel: q.Channel,
				Where:   q.Where,
				SortBy:  q.SortBy,
				Search:  q.Search,
			})
			if err != nil {
				yield(Product{}, upstream(opListProducts, err))
				return
			}
			w.metrics.RecordPage(len(resp.Nodes))
			w.log.Debug("fetched page", "channel", q.Channel, "page", page, "products", len(resp.Nodes), "last", resp.EndCursor == nil)

			for _, raw := range resp.Nodes {
				p, err := NormalizeProduct(raw)
				if err != nil {
					yield(Product{}, upstream(opListProducts, err))
					return
				}
				if !yield(p, nil) {
					return
				}
			}

			if resp.EndCursor == nil {
				return
			}
			if cursor != nil && *cursor == *resp.EndCursor {
				yield(Product{}, upstream(opListProducts, fmt.Errorf("cursor %q did not advance", *cursor)))
				return
			}
			cursor = resp.EndCursor
		}
	}
}

// Collect runs a walk to exhaustion. On error nothing gathered so far is
// returned. The result is never nil on success.
func (w *Walker) Collect(ctx context.Context, q Query) ([]Product, error) {
	products := []Product{}
	for p, err := range w.Walk(ctx, q) {
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func upstream(op string, err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
