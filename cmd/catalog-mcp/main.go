package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roivaz/catalog-mcp/internal/config"
	"github.com/roivaz/catalog-mcp/internal/logging"
	"github.com/roivaz/catalog-mcp/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:          "catalog-mcp",
		Short:        "Product catalog MCP server",
		SilenceUsage: true,
		RunE:         run,
	}

	config.AddCatalogFlags(root.PersistentFlags())
	root.PersistentFlags().String("host", "127.0.0.1", "HTTP host")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().String("endpoint-path", mcp.DefaultEndpointPath, "Path of the MCP endpoint")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	base, flush := logging.NewLogger(config.LogLevel())
	defer flush()
	logger := logging.New(base).WithName("catalog-mcp")

	cfg, err := mcp.DefaultConfig(logger)
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	addr := net.JoinHostPort(config.Host(), strconv.Itoa(config.Port()))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr, "endpoint", cfg.EndpointPath)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
