// Package oauth provides the auth gateway's public services: bearer token
// verification against a pluggable identity provider, OAuth 2.0 discovery
// metadata, and authenticated forwarding to the downstream MCP gateway.
package oauth

import (
	"context"

	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// Authenticator verifies a bearer token and resolves the identity it
// carries. Implementations never leak parser or signature detail in the
// returned error; diagnostics belong in the log.
type Authenticator interface {
	// Authenticate verifies bearerToken against the active provider and
	// returns the user context to inject into the proxied request.
	Authenticate(ctx context.Context, bearerToken string) (*pkgoauth.UserContext, error)
}

// ProtectedResourceMetadata is served at
// /.well-known/oauth-protected-resource.
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	BearerMethodsSupported []string `json:"bearer_methods_supported"`
}

// AuthorizationServerMetadata is served at
// /.well-known/oauth-authorization-server.
type AuthorizationServerMetadata struct {
	Issuer                        string   `json:"issuer"`
	AuthorizationEndpoint         string   `json:"authorization_endpoint"`
	TokenEndpoint                 string   `json:"token_endpoint"`
	JWKSURI                       string   `json:"jwks_uri"`
	UserinfoEndpoint              string   `json:"userinfo_endpoint,omitempty"`
	RevocationEndpoint            string   `json:"revocation_endpoint,omitempty"`
	IntrospectionEndpoint         string   `json:"introspection_endpoint,omitempty"`
	ResponseTypesSupported        []string `json:"response_types_supported"`
	ResponseModesSupported        []string `json:"response_modes_supported"`
	GrantTypesSupported           []string `json:"grant_types_supported"`
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported"`
	TokenEndpointAuthMethods      []string `json:"token_endpoint_auth_methods_supported"`
	ScopesSupported               []string `json:"scopes_supported"`
}

// MetadataService builds the two well-known OAuth discovery documents for
// a request's resolved resource URL.
type MetadataService interface {
	ProtectedResource(resourceURL string) ProtectedResourceMetadata
	AuthorizationServer(resourceURL string) AuthorizationServerMetadata
}

// ProxyResult is the response to relay back to the original client.
type ProxyResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Proxy forwards a verified request to the downstream MCP gateway,
// injecting user context into the initialize handshake.
type Proxy interface {
	Forward(ctx context.Context, method string, body []byte, traceID string, user *pkgoauth.UserContext) (*ProxyResult, error)
}

// ResourceURLResolver builds the canonical "<scheme>://<host>/mcp"
// resource identifier for a request's Host and X-Forwarded-Proto headers.
type ResourceURLResolver func(host, forwardedProto string) string
