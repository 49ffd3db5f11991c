package saleor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"github.com/roivaz/catalog-mcp/internal/catalog"
	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/metrics"
)

const (
	opListProducts = "listProducts"
	opProductByID  = "productById"
)

// Config configures a Client. Debug pipes the GraphQL client's
// request/response trace into the logger.
type Config struct {
	URL        string
	Timeout    time.Duration
	Debug      bool
	HTTPClient *http.Client
	Logger     logging.Logger
	Metrics    *metrics.Metrics
}

// Client talks to a Saleor GraphQL endpoint. It is shared by every tool call.
type Client struct {
	gql     *graphql.Client
	to      time.Duration
	log     logging.Logger
	metrics *metrics.Metrics
}

var _ catalog.Client = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("graphql url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	log := cfg.Logger.WithName("saleor")

	gql := graphql.NewClient(url, graphql.WithHTTPClient(httpClient))
	if cfg.Debug {
		gql.Log = func(s string) { log.Info(s) }
	}
	return &Client{gql: gql, to: cfg.Timeout, log: log, metrics: cfg.Metrics}, nil
}

type productsResponse struct {
	Products *struct {
		Edges []struct {
			Node json.RawMessage `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			EndCursor   *string `json:"endCursor"`
			HasNextPage bool    `json:"hasNextPage"`
		} `json:"pageInfo"`
	} `json:"products"`
}

type productResponse struct {
	Product json.RawMessage `json:"product"`
}

// ListProducts fetches one page of products. Optional variables are only sent
// when set so the upstream never sees an unrequested filter.
func (c *Client) ListProducts(ctx context.Context, req catalog.PageRequest) (catalog.Page, error) {
	gr := graphql.NewRequest(listProductsQuery)
	gr.Var("first", req.First)
	gr.Var("channel", req.Channel)
	if req.After != nil {
		gr.Var("after", *req.After)
	}
	if req.Where != nil {
		gr.Var("where", req.Where)
	}
	if req.SortBy != nil {
		gr.Var("sortBy", req.SortBy)
	}
	if req.Search != nil {
		gr.Var("search", *req.Search)
	}

	var resp productsResponse
	if err := c.run(ctx, opListProducts, gr, &resp); err != nil {
		return catalog.Page{}, err
	}
	if resp.Products == nil {
		if req.After != nil {
			return catalog.Page{}, &catalog.UpstreamError{
				Op:  opListProducts,
				Err: fmt.Errorf("products field was null on the page after cursor %q", *req.After),
			}
		}
		c.log.Debug("products field was null", "channel", req.Channel)
		return catalog.Page{}, nil
	}

	page := catalog.Page{
		Nodes:     make([]json.RawMessage, 0, len(resp.Products.Edges)),
		EndCursor: resp.Products.PageInfo.EndCursor,
	}
	for _, edge := range resp.Products.Edges {
		page.Nodes = append(page.Nodes, edge.Node)
	}
	c.log.Debug("listed products", "channel", req.Channel, "count", len(page.Nodes), "hasNextPage", resp.Products.PageInfo.HasNextPage)
	return page, nil
}

// ProductByID fetches one product. A nil node means the channel has no
// product with that id.
func (c *Client) ProductByID(ctx context.Context, id, channel string) (json.RawMessage, error) {
	gr := graphql.NewRequest(productByIDQuery)
	gr.Var("id", id)
	gr.Var("channel", channel)

	var resp productResponse
	if err := c.run(ctx, opProductByID, gr, &resp); err != nil {
		return nil, err
	}
	if len(resp.Product) == 0 || bytes.Equal(resp.Product, []byte("null")) {
		return nil, nil
	}
	return resp.Product, nil
}

func (c *Client) run(ctx context.Context, op string, req *graphql.Request, resp any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	start := time.Now()
	err := c.gql.Run(ctx, req, resp)
	c.metrics.RecordUpstreamRequest(op, err, time.Since(start))
	if err != nil {
		err = c.annotateError(err)
		c.log.Debug("graphql request failed", "operation", op, "duration", time.Since(start).String(), "error", err.Error())
		return &catalog.UpstreamError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && c.to > 0 {
		return fmt.Errorf("request timed out after %s: %w", c.to, err)
	}
	return err
}
