package handlers

import (
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/oauth"
)

// requestHost resolves the host a request arrived on, preferring the
// standard Host header and falling back to the proxy headers a gateway
// sitting in front of this service may set instead.
func requestHost(r *http.Request) string {
	if r.Host != "" {
		return r.Host
	}
	if h := r.Header.Get("X-Forwarded-Host"); h != "" {
		return h
	}
	return r.Header.Get("X-Original-Host")
}

// resolveResourceURL builds the canonical MCP resource URL for r using
// resolver, falling back to an empty string when neither Host nor its
// proxy-header equivalents are present.
func resolveResourceURL(r *http.Request, resolver oauth.ResourceURLResolver) string {
	host := requestHost(r)
	if host == "" || resolver == nil {
		return ""
	}
	return resolver(host, r.Header.Get("X-Forwarded-Proto"))
}
