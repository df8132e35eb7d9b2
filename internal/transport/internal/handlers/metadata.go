// Package handlers provides HTTP handlers for the transport layer.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/oauth"
	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// protectedResourceHandler serves OAuth 2.0 Protected Resource Metadata
// per RFC 9728 at /.well-known/oauth-protected-resource.
type protectedResourceHandler struct {
	service  oauth.MetadataService
	resolver oauth.ResourceURLResolver
}

// NewProtectedResourceHandler creates a handler for the
// /.well-known/oauth-protected-resource endpoint.
func NewProtectedResourceHandler(service oauth.MetadataService, resolver oauth.ResourceURLResolver) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}

	return &protectedResourceHandler{service: service, resolver: resolver}
}

func (h *protectedResourceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resourceURL := resolveResourceURL(r, h.resolver)
	metadata := h.service.ProtectedResource(resourceURL)

	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(metadata); err != nil {
		slog.Error("failed to encode protected resource metadata", "error", err)
	}
}

// authorizationServerHandler serves OAuth 2.0 Authorization Server
// Metadata at /.well-known/oauth-authorization-server.
type authorizationServerHandler struct {
	service  oauth.MetadataService
	resolver oauth.ResourceURLResolver
}

// NewAuthorizationServerHandler creates a handler for the
// /.well-known/oauth-authorization-server endpoint.
func NewAuthorizationServerHandler(service oauth.MetadataService, resolver oauth.ResourceURLResolver) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}

	return &authorizationServerHandler{service: service, resolver: resolver}
}

func (h *authorizationServerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resourceURL := resolveResourceURL(r, h.resolver)
	metadata := h.service.AuthorizationServer(resourceURL)

	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(metadata); err != nil {
		slog.Error("failed to encode authorization server metadata", "error", err)
	}
}
