// Package main provides the entry point for the auth gateway. It verifies
// bearer tokens against a pluggable OAuth provider, serves OAuth discovery
// metadata, and forwards authenticated requests to the downstream MCP
// gateway.
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
	"github.com/jamesprial/mcp-gateway/internal/oauth"
	"github.com/jamesprial/mcp-gateway/internal/transport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("auth gateway configuration loaded",
		"addr", cfg.Addr,
		"enabled", cfg.Enabled,
		"gateway_url", cfg.GatewayURL,
		"provider_type", cfg.ProviderType,
	)

	oauthCfg := &oauth.Config{
		Enabled:                   cfg.Enabled,
		GatewayURL:                cfg.GatewayURL,
		TraceHeader:               cfg.TraceHeader,
		ProviderType:              cfg.ProviderType,
		ProviderIssuer:            cfg.ProviderIssuer,
		ProviderAudience:          cfg.ProviderAudience,
		ProviderJWKSURI:           cfg.ProviderJWKSURI,
		ProviderName:              cfg.ProviderName,
		ProviderAuthorizeEndpoint: cfg.ProviderAuthorizeEndpoint,
		ProviderTokenEndpoint:     cfg.ProviderTokenEndpoint,
		ProviderUserinfoEndpoint:  cfg.ProviderUserinfoEndpoint,
		ProviderAllowedDomains:    cfg.ProviderAllowedDomains,
		JWKSFetchTimeout:          cfg.JWKSFetchTimeout,
	}

	services, err := oauth.NewOAuthServices(oauthCfg)
	if err != nil {
		log.Fatalf("failed to wire oauth services: %v", err)
	}

	server, _, err := transport.NewAuthGatewayServices(cfg, services, logger)
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting auth gateway", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping auth gateway gracefully...")
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

	slog.Info("auth gateway stopped successfully")
}
