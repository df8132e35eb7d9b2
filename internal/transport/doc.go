// Package transport provides the HTTP transport layer shared by the MCP
// gateway and the auth gateway.
//
// # Architecture
//
// The two binaries wire this package differently. cmd/gateway serves the
// MCP JSON-RPC endpoint directly with no OAuth dependency at all.cmd/authgateway
// sits in front of it, verifying bearer tokens and forwarding authenticated
// requests over HTTP.
//
// Package structure:
//
//	internal/transport/
//	├── transport.go              # Public interfaces
//	├── errors.go                 # Transport domain errors
//	├── context.go                # Context keys and helpers
//	├── wire.go                   # Factory functions for both services
//	├── internal/
//	│   ├── http/
//	│   │   ├── server.go         # HTTP server with graceful shutdown
//	│   │   ├── router.go         # HTTP routing
//	│   │   └── response.go       # Error responder with WWW-Authenticate
//	│   ├── middleware/
//	│   │   ├── auth.go           # Bearer token authentication
//	│   │   ├── cors.go           # CORS preflight handling
//	│   │   ├── logging.go        # Request logging
//	│   │   └── recovery.go       # Panic recovery
//	│   └── handlers/
//	│       ├── metadata.go       # well-known OAuth discovery documents
//	│       ├── mcp.go            # MCP protocol endpoint
//	│       ├── dispatch.go       # auth gateway routing and forwarding
//	│       └── health.go         # Health check endpoint
//
// # Auth Gateway Dispatch Order
//
// The auth gateway's dispatch handler checks requests in this order:
//
//  1. well-known discovery paths - served directly, no authentication
//  2. OPTIONS requests - CORS preflight, handled by the global CORS middleware
//  3. everything else - requires a valid bearer token, unless the gateway's
//     auth is disabled at startup, in which case the request is forwarded
//     unauthenticated
//
// # Error Handling
//
// Error responses follow RFC 6750 (Bearer Token Usage) and RFC 9728:
//
// 401 Unauthorized:
//
//	HTTP/1.1 401 Unauthorized
//	WWW-Authenticate: Bearer error="unauthorized", error_description="token expired", resource_metadata="https://example.com/.well-known/oauth-protected-resource"
//	X-Trace-Id: 2f0b...
//	Content-Type: application/json
//
//	{"error": "unauthorized", "error_description": "token expired"}
//
// 502 Bad Gateway (forwarding to the downstream MCP gateway failed):
//
//	HTTP/1.1 502 Bad Gateway
//	Content-Type: application/json
//
//	{"error": "bad_gateway", "error_description": "gateway error: ..."}
//
// # Context Values
//
// The authentication middleware stores the authenticated user identity in
// the request context for the auth gateway's own logging and dispatch:
//
//	user, ok := transport.UserFromContext(r.Context())
//	if !ok {
//		// request was forwarded unauthenticated (auth disabled)
//	}
package transport
