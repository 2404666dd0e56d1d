package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dataquerylabs/DataQueryMcp/internal/client"
	"github.com/dataquerylabs/DataQueryMcp/internal/datasets"
	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
	"github.com/dataquerylabs/DataQueryMcp/internal/query"
	"github.com/dataquerylabs/DataQueryMcp/internal/tools"
)

const serverName = "data-query-server"

type Config struct {
	Version      string
	DatabasePath string
	DataDir      string
}

// Server owns the process-wide resources: the engine connection, the
// dataset registry and the MCP server built on top of them.
type Server struct {
	mcp       *mcp.Server
	db        *client.DBClient
	registry  *datasets.Registry
	adapter   *query.Adapter
	inspector *query.Inspector
}

// New connects the engine, loads the sample datasets and assembles the MCP
// server with its tools and resources. Failure to obtain even an in-memory
// database is fatal.
func New(ctx context.Context, cfg Config) (*Server, error) {
	db, err := client.NewDBClient(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database ready", "in_memory", db.InMemory(), "path", db.Path())

	registry := datasets.Load(ctx, db, cfg.DataDir, datasets.SampleDefinitions())
	logger.Info("datasets loaded", "count", registry.Len(), "tables", registry.Names())

	impl := &mcp.Implementation{Name: serverName, Version: cfg.Version}
	mcpServer := mcp.NewServer(impl, nil)

	s := &Server{
		mcp:       mcpServer,
		db:        db,
		registry:  registry,
		adapter:   query.NewAdapter(db),
		inspector: query.NewInspector(db),
	}

	if err := tools.RegisterTools(mcpServer, s.adapter, s.inspector, s.registry); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerResources()

	return s, nil
}

func (s *Server) Close() error {
	return s.db.Close()
}

// RunStdioServer runs the server over the stdio transport until the process
// receives an interrupt or termination signal.
func RunStdioServer(cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer s.Close()

	logger.Info("mcp server running on stdio", "version", cfg.Version)

	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTPServer runs the server over the streamable HTTP transport on
// host:port, with a health endpoint and graceful shutdown.
func RunHTTPServer(cfg Config, host string, port int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer s.Close()

	mux := http.NewServeMux()
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})
	mux.Handle("/", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok\n")); err != nil {
			logger.Error("failed to write healthz response", err)
		}
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErrCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
	}()

	logger.Info("mcp server listening on streamable http", "addr", httpServer.Addr, "version", cfg.Version)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		logger.Info("http server shutdown complete")
		return nil
	case err := <-serveErrCh:
		return err
	}
}
