package middleware

import (
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/transport/transportcore"
)

// NewCORSMiddleware creates middleware that answers CORS preflight requests
// and annotates every response with permissive CORS headers. It is applied
// globally on both the MCP gateway and the auth gateway via Router.Use, so
// that preflight requests never reach the auth dispatch handler.
func NewCORSMiddleware() transportcore.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Protocol-Version")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
