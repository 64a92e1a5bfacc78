package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"observability-mcp/internal/models"

	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// HTTPServer serves the MCP server over streamable HTTP instead of stdio.
type HTTPServer struct {
	server *mcp.Server
	config models.Config
	log    *zap.Logger
}

// NewHTTPServer creates an HTTP transport wrapper around an MCP server.
func NewHTTPServer(server *mcp.Server, config models.Config, logger *zap.Logger) *HTTPServer {
	return &HTTPServer{
		server: server,
		config: config,
		log:    logger,
	}
}

// Start listens on the configured host:port and blocks until the server
// stops, shutting down gracefully on SIGINT or SIGTERM.
func (h *HTTPServer) Start() error {
	addr := h.config.Host + ":" + h.config.Port

	// Stateless handler: every request resolves to the same server, so
	// direct tool calls work without session bookkeeping.
	mcpHandler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return h.server
	}, nil)

	r := mux.NewRouter()
	// Root for standard MCP clients, /mcp for clients that want an explicit path.
	r.Handle("/", mcpHandler)
	r.Handle("/mcp", mcpHandler)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	h.log.Info("MCP server listening", zap.String("addr", addr))

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case sig := <-signalChan:
		h.log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		h.log.Error("server error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		h.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	h.log.Info("HTTP server shutdown complete")
	return nil
}

func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"server":  "observability-mcp",
		"version": Version,
	})
}
