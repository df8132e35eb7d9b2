package oauth

import (
	"context"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/jamesprial/mcp-gateway/internal/oauth/internal/jwks"
	"github.com/jamesprial/mcp-gateway/internal/oauth/internal/metadata"
	"github.com/jamesprial/mcp-gateway/internal/oauth/internal/provider"
	"github.com/jamesprial/mcp-gateway/internal/oauth/internal/proxy"
	"github.com/jamesprial/mcp-gateway/internal/oauth/internal/token"
	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// Config holds everything needed to wire the auth gateway's services.
// Field names mirror the auth_* environment variables the auth gateway
// binary reads at startup.
type Config struct {
	// Enabled gates whether the gateway enforces authentication at all;
	// when false the dispatcher forwards every request unauthenticated.
	Enabled bool

	// GatewayURL is the downstream MCP gateway's internal URL.
	GatewayURL string

	// TraceHeader is the header name propagated to the downstream
	// gateway and echoed in responses. Defaults to "X-Trace-Id".
	TraceHeader string

	// ProviderType selects the provider implementation: "authkit" or
	// "oidc".
	ProviderType string

	// ProviderIssuer is the token issuer. A bare domain is promoted to
	// https://; an explicit http:// is rejected.
	ProviderIssuer string

	// ProviderAudience is the expected aud claim. Empty disables
	// audience validation.
	ProviderAudience string

	// ProviderJWKSURI overrides the provider's default JWKS endpoint.
	// Required for OIDC; optional for AuthKit (defaults to
	// "<issuer>/oauth2/jwks").
	ProviderJWKSURI string

	// ProviderName is the OIDC provider's display name. Required for
	// OIDC, unused for AuthKit.
	ProviderName string

	// ProviderAuthorizeEndpoint and ProviderTokenEndpoint are required
	// explicit endpoints for an OIDC provider.
	ProviderAuthorizeEndpoint string
	ProviderTokenEndpoint     string

	// ProviderUserinfoEndpoint is an optional OIDC endpoint.
	ProviderUserinfoEndpoint string

	// ProviderAllowedDomains restricts which email domains an OIDC
	// provider's users may belong to.
	ProviderAllowedDomains []string

	// JWKSFetchTimeout bounds each JWKS HTTP fetch. Defaults to 5s.
	JWKSFetchTimeout time.Duration

	// ClockSkew is the leeway allowed when validating exp/nbf. Defaults
	// to zero.
	ClockSkew time.Duration
}

// Services bundles the constructed auth gateway dependencies.
type Services struct {
	Authenticator   Authenticator
	MetadataService MetadataService
	Proxy           Proxy

	// ResourceURL builds the canonical resource identifier for a
	// request's Host and X-Forwarded-Proto headers, for callers that
	// need to compute it ahead of a MetadataService or Unauthorized
	// call.
	ResourceURL ResourceURLResolver
}

// NewOAuthServices builds the active provider from cfg and wires the JWKS
// client, token validator, metadata service and proxy around it. Exactly
// one provider is ever consulted per deployment; a provider.Registry is
// available internally for providers that want to validate against more
// than one issuer, but this wiring only ever populates it with the single
// configured provider.
func NewOAuthServices(cfg *Config) (*Services, error) {
	activeProvider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: jwksFetchTimeout(cfg)}
	jwksClient := jwks.NewClient(httpClient)
	validator := token.NewValidator(jwksClient, cfg.ClockSkew)
	metadataSvc := metadata.NewService(metadataProviderAdapter{activeProvider})
	fwd := proxy.New(http.DefaultClient, cfg.GatewayURL)

	return &Services{
		Authenticator:   &authenticator{validator: validator, provider: activeProvider},
		MetadataService: &metadataServiceAdapter{service: metadataSvc},
		Proxy:           &proxyAdapter{proxy: fwd},
		ResourceURL:     metadata.ResourceURL,
	}, nil
}

func jwksFetchTimeout(cfg *Config) time.Duration {
	if cfg.JWKSFetchTimeout <= 0 {
		return 5 * time.Second
	}
	return cfg.JWKSFetchTimeout
}

func buildProvider(cfg *Config) (provider.Provider, error) {
	issuer, err := ensureHTTPSURL(cfg.ProviderIssuer)
	if err != nil {
		return nil, fmt.Errorf("auth_provider_issuer: %w", err)
	}

	switch cfg.ProviderType {
	case "authkit":
		jwksURI := cfg.ProviderJWKSURI
		if jwksURI != "" {
			jwksURI, err = ensureHTTPSURL(jwksURI)
			if err != nil {
				return nil, fmt.Errorf("auth_provider_jwks_uri: %w", err)
			}
		}
		return provider.NewAuthKitProvider(issuer, jwksURI, cfg.ProviderAudience), nil

	case "oidc":
		if cfg.ProviderName == "" {
			return nil, fmt.Errorf("auth_provider_name is required for OIDC provider")
		}
		if cfg.ProviderJWKSURI == "" {
			return nil, fmt.Errorf("auth_provider_jwks_uri is required for OIDC provider")
		}
		jwksURI, err := ensureHTTPSURL(cfg.ProviderJWKSURI)
		if err != nil {
			return nil, fmt.Errorf("auth_provider_jwks_uri: %w", err)
		}
		if cfg.ProviderAuthorizeEndpoint == "" {
			return nil, fmt.Errorf("auth_provider_authorize_endpoint is required for OIDC provider")
		}
		authorizeEndpoint, err := ensureHTTPSURL(cfg.ProviderAuthorizeEndpoint)
		if err != nil {
			return nil, fmt.Errorf("auth_provider_authorize_endpoint: %w", err)
		}
		if cfg.ProviderTokenEndpoint == "" {
			return nil, fmt.Errorf("auth_provider_token_endpoint is required for OIDC provider")
		}
		tokenEndpoint, err := ensureHTTPSURL(cfg.ProviderTokenEndpoint)
		if err != nil {
			return nil, fmt.Errorf("auth_provider_token_endpoint: %w", err)
		}
		userinfoEndpoint := cfg.ProviderUserinfoEndpoint
		if userinfoEndpoint != "" {
			userinfoEndpoint, err = ensureHTTPSURL(userinfoEndpoint)
			if err != nil {
				return nil, fmt.Errorf("auth_provider_userinfo_endpoint: %w", err)
			}
		}
		return provider.NewOIDCProvider(provider.OIDCConfig{
			Name:              cfg.ProviderName,
			Issuer:            issuer,
			JWKSURI:           jwksURI,
			Audience:          cfg.ProviderAudience,
			AuthorizeEndpoint: authorizeEndpoint,
			TokenEndpoint:     tokenEndpoint,
			UserinfoEndpoint:  userinfoEndpoint,
			AllowedDomains:    cfg.ProviderAllowedDomains,
		}), nil

	default:
		return nil, fmt.Errorf("unknown auth provider type: %q, expected \"authkit\" or \"oidc\"", cfg.ProviderType)
	}
}

// ensureHTTPSURL rejects an explicit http:// scheme and promotes a bare
// host (no scheme) to https://. An already-https:// URL passes through
// unchanged. http:// is allowed only against a loopback host, so tests can
// point a provider at an httptest.Server.
func ensureHTTPSURL(rawURL string) (string, error) {
	switch {
	case strings.HasPrefix(rawURL, "http://"):
		if isLoopbackURL(rawURL) {
			return rawURL, nil
		}
		return "", fmt.Errorf("auth provider URLs must use HTTPS; provide just the domain (e.g. \"example.authkit.app\") or a full https:// URL")
	case strings.HasPrefix(rawURL, "https://"):
		return rawURL, nil
	default:
		return "https://" + rawURL, nil
	}
}

// isLoopbackURL reports whether rawURL's host is localhost or a loopback
// address.
func isLoopbackURL(rawURL string) bool {
	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// authenticator adapts token.Validator and the active provider to the
// Authenticator interface.
type authenticator struct {
	validator *token.Validator
	provider  provider.Provider
}

func (a *authenticator) Authenticate(ctx context.Context, bearerToken string) (*pkgoauth.UserContext, error) {
	claims, err := a.validator.ValidateToken(ctx, bearerToken, a.provider)
	if err != nil {
		return nil, err
	}
	user := a.provider.ExtractUserContext(provider.Claims{Subject: claims.Subject, Email: claims.Email})
	return &user, nil
}

// metadataProviderAdapter narrows provider.Provider to metadata.Provider,
// converting the shared pkg/oauth.DiscoveryMetadata into the metadata
// package's locally-defined type.
type metadataProviderAdapter struct {
	p provider.Provider
}

func (a metadataProviderAdapter) Issuer() string { return a.p.Issuer() }

func (a metadataProviderAdapter) DiscoveryMetadata(resourceURL string) metadata.DiscoveryMetadata {
	d := a.p.DiscoveryMetadata(resourceURL)
	return metadata.DiscoveryMetadata{
		Issuer:                d.Issuer,
		AuthorizationEndpoint: d.AuthorizationEndpoint,
		TokenEndpoint:         d.TokenEndpoint,
		JWKSURI:               d.JWKSURI,
		UserinfoEndpoint:      d.UserinfoEndpoint,
		RevocationEndpoint:    d.RevocationEndpoint,
		IntrospectionEndpoint: d.IntrospectionEndpoint,
	}
}

// metadataServiceAdapter adapts metadata.Service to the MetadataService
// interface.
type metadataServiceAdapter struct {
	service *metadata.Service
}

func (a *metadataServiceAdapter) ProtectedResource(resourceURL string) ProtectedResourceMetadata {
	m := a.service.ProtectedResource(resourceURL)
	return ProtectedResourceMetadata{
		Resource:               m.Resource,
		AuthorizationServers:   m.AuthorizationServers,
		BearerMethodsSupported: m.BearerMethodsSupported,
	}
}

func (a *metadataServiceAdapter) AuthorizationServer(resourceURL string) AuthorizationServerMetadata {
	m := a.service.AuthorizationServer(resourceURL)
	return AuthorizationServerMetadata{
		Issuer:                        m.Issuer,
		AuthorizationEndpoint:         m.AuthorizationEndpoint,
		TokenEndpoint:                 m.TokenEndpoint,
		JWKSURI:                       m.JWKSURI,
		UserinfoEndpoint:              m.UserinfoEndpoint,
		RevocationEndpoint:            m.RevocationEndpoint,
		IntrospectionEndpoint:         m.IntrospectionEndpoint,
		ResponseTypesSupported:        m.ResponseTypesSupported,
		ResponseModesSupported:        m.ResponseModesSupported,
		GrantTypesSupported:           m.GrantTypesSupported,
		CodeChallengeMethodsSupported: m.CodeChallengeMethodsSupported,
		TokenEndpointAuthMethods:      m.TokenEndpointAuthMethods,
		ScopesSupported:               m.ScopesSupported,
	}
}

// proxyAdapter adapts proxy.Proxy to the Proxy interface.
type proxyAdapter struct {
	proxy *proxy.Proxy
}

func (a *proxyAdapter) Forward(ctx context.Context, method string, body []byte, traceID string, user *pkgoauth.UserContext) (*ProxyResult, error) {
	result, err := a.proxy.Forward(ctx, method, body, traceID, user)
	if err != nil {
		return nil, err
	}
	return &ProxyResult{StatusCode: result.StatusCode, Body: result.Body, ContentType: result.ContentType}, nil
}
