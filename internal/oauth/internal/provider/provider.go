// Package provider implements the identity provider abstraction: AuthKit
// (convention-derived endpoints) and generic OIDC (explicit endpoints).
package provider

import (
	"fmt"

	"github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// Claims is the minimal claim set a provider needs to build a UserContext.
// It deliberately excludes fields (aud, exp, iat) the verifier already
// checked before a provider ever sees the token.
type Claims struct {
	Subject string
	Email   string
}

// Provider is the capability set an identity provider exposes to the JWT
// verifier, the metadata surface and the proxy's context injection. AuthKit
// and OIDC share this interface; neither depends on the other.
type Provider interface {
	Name() string
	JWKSURI() string
	Issuer() string
	Audience() string
	AllowedDomains() []string
	DiscoveryMetadata(resourceURL string) oauth.DiscoveryMetadata
	ExtractUserContext(claims Claims) oauth.UserContext
}

// AuthKitProvider derives its OAuth endpoints from the issuer by WorkOS
// AuthKit convention.
type AuthKitProvider struct {
	issuer   string
	jwksURI  string
	audience string
}

// NewAuthKitProvider builds an AuthKit provider. jwksURI defaults to
// "<issuer>/oauth2/jwks" when empty.
func NewAuthKitProvider(issuer, jwksURI, audience string) *AuthKitProvider {
	if jwksURI == "" {
		jwksURI = fmt.Sprintf("%s/oauth2/jwks", issuer)
	}
	return &AuthKitProvider{issuer: issuer, jwksURI: jwksURI, audience: audience}
}

func (p *AuthKitProvider) Name() string     { return "authkit" }
func (p *AuthKitProvider) JWKSURI() string  { return p.jwksURI }
func (p *AuthKitProvider) Issuer() string   { return p.issuer }
func (p *AuthKitProvider) Audience() string { return p.audience }

func (p *AuthKitProvider) AllowedDomains() []string {
	return []string{"*.authkit.app"}
}

func (p *AuthKitProvider) DiscoveryMetadata(_ string) oauth.DiscoveryMetadata {
	return oauth.DiscoveryMetadata{
		Issuer:                p.issuer,
		AuthorizationEndpoint: p.issuer + "/oauth2/authorize",
		TokenEndpoint:         p.issuer + "/oauth2/token",
		JWKSURI:               p.jwksURI,
		UserinfoEndpoint:      p.issuer + "/oauth2/userinfo",
		RevocationEndpoint:    p.issuer + "/oauth2/revoke",
		IntrospectionEndpoint: p.issuer + "/oauth2/introspect",
	}
}

func (p *AuthKitProvider) ExtractUserContext(claims Claims) oauth.UserContext {
	return oauth.UserContext{ID: claims.Subject, Email: claims.Email, Provider: p.Name()}
}

// OIDCConfig holds the explicit endpoint configuration a generic OIDC
// provider requires (no convention to derive them from).
type OIDCConfig struct {
	Name              string
	Issuer            string
	JWKSURI           string
	Audience          string
	AuthorizeEndpoint string
	TokenEndpoint     string
	UserinfoEndpoint  string
	AllowedDomains    []string
}

// OIDCProvider is a generic OpenID Connect provider with explicitly
// configured endpoints, used for identity providers that don't follow the
// AuthKit convention.
type OIDCProvider struct {
	cfg OIDCConfig
}

// NewOIDCProvider builds an OIDC provider from explicit configuration.
func NewOIDCProvider(cfg OIDCConfig) *OIDCProvider {
	return &OIDCProvider{cfg: cfg}
}

func (p *OIDCProvider) Name() string     { return p.cfg.Name }
func (p *OIDCProvider) JWKSURI() string  { return p.cfg.JWKSURI }
func (p *OIDCProvider) Issuer() string   { return p.cfg.Issuer }
func (p *OIDCProvider) Audience() string { return p.cfg.Audience }

func (p *OIDCProvider) AllowedDomains() []string {
	return p.cfg.AllowedDomains
}

func (p *OIDCProvider) DiscoveryMetadata(_ string) oauth.DiscoveryMetadata {
	return oauth.DiscoveryMetadata{
		Issuer:                p.cfg.Issuer,
		AuthorizationEndpoint: p.cfg.AuthorizeEndpoint,
		TokenEndpoint:         p.cfg.TokenEndpoint,
		JWKSURI:               p.cfg.JWKSURI,
		UserinfoEndpoint:      p.cfg.UserinfoEndpoint,
	}
}

func (p *OIDCProvider) ExtractUserContext(claims Claims) oauth.UserContext {
	return oauth.UserContext{ID: claims.Subject, Email: claims.Email, Provider: p.Name()}
}

// Registry holds the configured providers. Deployments are expected to
// register exactly one active provider; the registry itself permits more,
// but only the first/configured provider is ever consulted by the gateway.
type Registry struct {
	providers []Provider
}

// NewRegistry builds an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a provider.
func (r *Registry) Add(p Provider) {
	r.providers = append(r.providers, p)
}

// FindByIssuer returns the first registered provider whose issuer matches,
// or nil if none do.
func (r *Registry) FindByIssuer(issuer string) Provider {
	for _, p := range r.providers {
		if p.Issuer() == issuer {
			return p
		}
	}
	return nil
}

// Providers returns all registered providers.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// AllAllowedDomains returns the union of every registered provider's
// allowed domains.
func (r *Registry) AllAllowedDomains() []string {
	var domains []string
	for _, p := range r.providers {
		domains = append(domains, p.AllowedDomains()...)
	}
	return domains
}
