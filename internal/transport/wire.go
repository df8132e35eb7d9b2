package transport

import (
	"fmt"
	"log/slog"

	"github.com/jamesprial/mcp-gateway/internal/config"
	"github.com/jamesprial/mcp-gateway/internal/mcp"
	"github.com/jamesprial/mcp-gateway/internal/oauth"
	"github.com/jamesprial/mcp-gateway/internal/transport/internal/handlers"
	transporthttp "github.com/jamesprial/mcp-gateway/internal/transport/internal/http"
	"github.com/jamesprial/mcp-gateway/internal/transport/internal/middleware"
)

// NewServer creates a configured HTTP server.
// The server is configured with timeouts from the config and uses the provided router.
func NewServer(cfg *config.ServerConfig, router Router) Server {
	return transporthttp.NewServer(cfg, router)
}

// NewRouter creates a new HTTP router backed by http.ServeMux.
func NewRouter() Router {
	return transporthttp.NewRouter()
}

// NewErrorResponder creates an error responder implementing RFC 6750 and
// RFC 9728 error response formats.
func NewErrorResponder() ErrorResponder {
	return transporthttp.NewErrorResponder()
}

// NewMCPGatewayServices wires the MCP gateway's router: CORS, logging and
// recovery middleware applied globally, the MCP JSON-RPC endpoint and a
// health check registered on top.
func NewMCPGatewayServices(cfg *config.MCPConfig, handler mcp.Handler, logger *slog.Logger) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if handler == nil {
		return nil, nil, fmt.Errorf("mcp handler cannot be nil")
	}

	responder := NewErrorResponder()
	router := NewRouter()
	router.Use(
		middleware.NewRecoveryMiddleware(responder, logger),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewCORSMiddleware(),
	)

	router.Handle("/mcp", handlers.NewMCPHandler(handler, responder))
	router.Handle("/health", handlers.NewHealthHandler())

	server := NewServer(&cfg.ServerConfig, router)
	return server, router, nil
}

// NewAuthGatewayServices wires the auth gateway's router: CORS, logging and
// recovery middleware applied globally, the two well-known discovery
// endpoints unauthenticated, and bearer-token-authenticated forwarding for
// everything else.
func NewAuthGatewayServices(cfg *config.AuthConfig, services *oauth.Services, logger *slog.Logger) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if services == nil {
		return nil, nil, fmt.Errorf("oauth services cannot be nil")
	}

	responder := NewErrorResponder()
	router := NewRouter()
	router.Use(
		middleware.NewRecoveryMiddleware(responder, logger),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewCORSMiddleware(),
	)

	dispatch := handlers.NewAuthGatewayHandler(services, responder, cfg.TraceHeader, cfg.Enabled)
	router.Handle("/", dispatch)

	server := NewServer(&cfg.ServerConfig, router)
	return server, router, nil
}
