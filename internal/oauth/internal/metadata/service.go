// Package metadata serves the OAuth 2.0 protected-resource and
// authorization-server discovery documents.
package metadata

import "strings"

// productionSuffixes are host suffixes treated as https-serving even
// without an explicit port or X-Forwarded-Proto header.
var productionSuffixes = []string{".fermyon.tech", ".fermyon.cloud"}

// ProtectedResourceMetadata is the document served at
// /.well-known/oauth-protected-resource (RFC 9728).
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	BearerMethodsSupported []string `json:"bearer_methods_supported"`
}

// AuthorizationServerMetadata is the document served at
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

// DiscoveryMetadata is the subset of provider.Provider's capability this
// package depends on, kept local to avoid importing the provider package.
type DiscoveryMetadata struct {
	Issuer                string
	AuthorizationEndpoint string
	TokenEndpoint         string
	JWKSURI               string
	UserinfoEndpoint      string
	RevocationEndpoint    string
	IntrospectionEndpoint string
}

// Provider supplies the issuer and discovery document for the active
// identity provider.
type Provider interface {
	Issuer() string
	DiscoveryMetadata(resourceURL string) DiscoveryMetadata
}

// Service builds the two well-known discovery documents for a single
// active provider.
type Service struct {
	provider Provider
}

// NewService builds a metadata service backed by provider.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// ProtectedResource builds the protected-resource document for a request
// whose canonical MCP resource URL is resourceURL.
func (s *Service) ProtectedResource(resourceURL string) ProtectedResourceMetadata {
	return ProtectedResourceMetadata{
		Resource:               resourceURL,
		AuthorizationServers:   []string{s.provider.Issuer()},
		BearerMethodsSupported: []string{"header"},
	}
}

// AuthorizationServer builds the authorization-server discovery document.
func (s *Service) AuthorizationServer(resourceURL string) AuthorizationServerMetadata {
	d := s.provider.DiscoveryMetadata(resourceURL)
	return AuthorizationServerMetadata{
		Issuer:                        d.Issuer,
		AuthorizationEndpoint:         d.AuthorizationEndpoint,
		TokenEndpoint:                 d.TokenEndpoint,
		JWKSURI:                       d.JWKSURI,
		UserinfoEndpoint:              d.UserinfoEndpoint,
		RevocationEndpoint:            d.RevocationEndpoint,
		IntrospectionEndpoint:         d.IntrospectionEndpoint,
		ResponseTypesSupported:        []string{"code"},
		ResponseModesSupported:        []string{"query"},
		GrantTypesSupported:           []string{"authorization_code", "refresh_token"},
		CodeChallengeMethodsSupported: []string{"S256"},
		TokenEndpointAuthMethods:      []string{"none", "client_secret_post", "client_secret_basic"},
		ScopesSupported:               []string{"openid", "profile", "email", "offline_access"},
	}
}

// ResourceURL builds the canonical "<scheme>://<host>/mcp" resource
// identifier for a request, given its Host and X-Forwarded-Proto headers.
func ResourceURL(host, forwardedProto string) string {
	return scheme(host, forwardedProto) + "://" + host + "/mcp"
}

func scheme(host, forwardedProto string) string {
	if forwardedProto != "" {
		return forwardedProto
	}
	if strings.Contains(host, ":443") || hasProductionSuffix(host) {
		return "https"
	}
	if strings.Contains(host, ":80") || strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
		return "http"
	}
	return "https"
}

func hasProductionSuffix(host string) bool {
	for _, suffix := range productionSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
