package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateMCPConfig checks that the MCP gateway configuration is valid and
// complete.
func ValidateMCPConfig(cfg *MCPConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := validateServer(&cfg.ServerConfig, "MCP"); err != nil {
		return err
	}
	if len(cfg.ToolComponents) == 0 {
		return fmt.Errorf("MCP_TOOL_COMPONENTS is required (at least one tool component)")
	}
	if cfg.DiscoverySuffix == "" {
		return fmt.Errorf("MCP_DISCOVERY_SUFFIX cannot be empty")
	}
	if cfg.ToolCallTimeout <= 0 {
		return fmt.Errorf("MCP_TOOL_CALL_TIMEOUT must be positive")
	}
	if cfg.DiscoveryTimeout <= 0 {
		return fmt.Errorf("MCP_DISCOVERY_TIMEOUT must be positive")
	}
	return nil
}

// ValidateAuthConfig checks that the auth gateway configuration is valid
// and complete. When Enabled is false, provider fields are not required
// since the dispatcher never verifies a token.
func ValidateAuthConfig(cfg *AuthConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := validateServer(&cfg.ServerConfig, "AUTH"); err != nil {
		return err
	}
	if cfg.GatewayURL == "" {
		return fmt.Errorf("AUTH_GATEWAY_URL is required")
	}
	if _, err := ensureHTTPURL(cfg.GatewayURL, true); err != nil {
		return fmt.Errorf("invalid AUTH_GATEWAY_URL: %w", err)
	}
	if cfg.TraceHeader == "" {
		return fmt.Errorf("AUTH_TRACE_HEADER cannot be empty")
	}
	if cfg.JWKSFetchTimeout <= 0 {
		return fmt.Errorf("AUTH_JWKS_FETCH_TIMEOUT must be positive")
	}

	if !cfg.Enabled {
		return nil
	}

	switch cfg.ProviderType {
	case "authkit":
		if cfg.ProviderIssuer == "" {
			return fmt.Errorf("AUTH_PROVIDER_ISSUER is required")
		}
	case "oidc":
		if cfg.ProviderIssuer == "" {
			return fmt.Errorf("AUTH_PROVIDER_ISSUER is required")
		}
		if cfg.ProviderName == "" {
			return fmt.Errorf("AUTH_PROVIDER_NAME is required for OIDC provider")
		}
		if cfg.ProviderJWKSURI == "" {
			return fmt.Errorf("AUTH_PROVIDER_JWKS_URI is required for OIDC provider")
		}
		if cfg.ProviderAuthorizeEndpoint == "" {
			return fmt.Errorf("AUTH_PROVIDER_AUTHORIZE_ENDPOINT is required for OIDC provider")
		}
		if cfg.ProviderTokenEndpoint == "" {
			return fmt.Errorf("AUTH_PROVIDER_TOKEN_ENDPOINT is required for OIDC provider")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER_TYPE must be \"authkit\" or \"oidc\", got %q", cfg.ProviderType)
	}

	return nil
}

// validateServer validates the fields shared by both gateways' server
// configuration. prefix names the offending env var group in error
// messages ("MCP" or "AUTH").
func validateServer(cfg *ServerConfig, prefix string) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%s_SERVER_ADDR is required", prefix)
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("%s_SERVER_READ_TIMEOUT must be positive", prefix)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("%s_SERVER_WRITE_TIMEOUT must be positive", prefix)
	}
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("%s_SERVER_IDLE_TIMEOUT must be non-negative", prefix)
	}
	return nil
}

// isLocalhost returns true if the host is localhost or a loopback address.
// It handles bare hostnames and host:port combinations.
func isLocalhost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" {
		return true
	}
	return strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:")
}

// ensureHTTPURL parses rawURL and requires it to be absolute with an http
// or https scheme; http is rejected for non-localhost hosts unless
// allowHTTPLocalhost permits it.
func ensureHTTPURL(rawURL string, allowHTTPLocalhost bool) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("must use http or https scheme")
	}
	if parsed.Scheme == "http" && !(allowHTTPLocalhost && isLocalhost(parsed.Host)) {
		return nil, fmt.Errorf("must use https scheme for non-localhost hosts")
	}
	return parsed, nil
}
