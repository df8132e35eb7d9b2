// Package main provides the entry point for the MCP gateway. It wires
// together tool discovery, schema validation and invocation, and manages
// the HTTP server lifecycle with graceful shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jamesprial/mcp-gateway/internal/config"
	"github.com/jamesprial/mcp-gateway/internal/mcp"
	"github.com/jamesprial/mcp-gateway/internal/transport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadMCPConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("mcp gateway configuration loaded",
		"addr", cfg.Addr,
		"tool_components", cfg.ToolComponents,
		"discovery_suffix", cfg.DiscoverySuffix,
	)

	mcpCfg := &mcp.Config{
		ServerName:        "mcp-gateway",
		ServerVersion:     "1.0.0",
		ToolComponents:    cfg.ToolComponents,
		DiscoverySuffix:   cfg.DiscoverySuffix,
		ValidateArguments: cfg.ValidateArguments,
		ToolCallTimeout:   cfg.ToolCallTimeout,
		DiscoveryTimeout:  cfg.DiscoveryTimeout,
	}

	handler := mcp.NewMCPServices(mcpCfg, logger)

	server, _, err := transport.NewMCPGatewayServices(cfg, handler, logger)
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting mcp gateway", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping mcp gateway gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("mcp gateway stopped successfully")
}
