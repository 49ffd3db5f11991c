package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/catalog-mcp/internal/catalog"
	"github.com/roivaz/catalog-mcp/internal/config"
	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/mcp"
)

var output string

func main() {
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Run catalog tool operations from the command line",
		SilenceUsage: true,
	}
	config.AddCatalogFlags(root.PersistentFlags())
	root.PersistentFlags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")

	root.AddCommand(productsCmd(), productCmd(), searchCmd(), fetchCmd())

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("catalogctl: %v", err)
	}
}

func newService() (*catalog.Service, func(), error) {
	base, flush := logging.NewLogger(config.LogLevel())
	svc, err := mcp.NewCatalogService(logging.New(base).WithName("catalogctl"), nil)
	if err != nil {
		flush()
		return nil, nil, err
	}
	return svc, flush, nil
}

func productsCmd() *cobra.Command {
	var channel, where, sortBy, search string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List every product in a channel matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := catalog.ListRequest{Channel: channel}
			var err error
			if req.Where, err = catalog.ParseJSON[catalog.ProductWhere]("where", []byte(where)); err != nil {
				return err
			}
			if req.SortBy, err = catalog.ParseJSON[catalog.ProductOrder]("sortBy", []byte(sortBy)); err != nil {
				return err
			}
			if cmd.Flags().Changed("search") {
				req.Search = catalog.Value(search)
			}

			svc, flush, err := newService()
			if err != nil {
				return err
			}
			defer flush()
			products, err := svc.ListProducts(cmd.Context(), req)
			if err != nil {
				return err
			}
			return write(os.Stdout, catalog.ProductList{Products: products, Total: len(products)})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "Channel slug")
	cmd.Flags().StringVar(&where, "where", "", "Filter as a JSON object")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort order as a JSON object")
	cmd.Flags().StringVar(&search, "search", "", "Full-text search")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}

func productCmd() *cobra.Command {
	var channel string
	cmd := &cobra.Command{
		Use:   "product ID",
		Short: "Get one product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (any, error) {
				return svc.GetProduct(ctx, args[0], channel)
			})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "Channel slug")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the default channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (any, error) {
				return svc.Search(ctx, args[0])
			})
		},
	}
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch ID",
		Short: "Fetch one product from the default channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (any, error) {
				return svc.Fetch(ctx, args[0])
			})
		},
	}
}

func withService(ctx context.Context, fn func(context.Context, *catalog.Service) (any, error)) error {
	svc, flush, err := newService()
	if err != nil {
		return err
	}
	defer flush()
	v, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return write(os.Stdout, v)
}

func write(w io.Writer, v any) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
