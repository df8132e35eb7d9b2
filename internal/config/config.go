// Package config provides configuration management for the MCP gateway and
// auth gateway. Each binary loads its own flat Config struct from
// environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ServerConfig holds the HTTP server settings shared by both gateways.
type ServerConfig struct {
	// Addr is the address to bind the HTTP server (e.g., ":8080").
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
}

// MCPConfig holds the MCP gateway's configuration (cmd/gateway).
type MCPConfig struct {
	ServerConfig

	// ToolComponents names the tool backends to discover and dispatch to,
	// addressed as "<kebab-case-name>.<DiscoverySuffix>".
	ToolComponents []string

	// DiscoverySuffix is appended to each tool component name to build its
	// backend base URL.
	DiscoverySuffix string

	// ValidateArguments gates JSON Schema validation of tools/call
	// arguments before dispatch.
	ValidateArguments bool

	// ToolCallTimeout bounds a single tools/call backend request.
	ToolCallTimeout time.Duration

	// DiscoveryTimeout bounds a single tool-discovery backend request.
	DiscoveryTimeout time.Duration
}

// AuthConfig holds the auth gateway's configuration (cmd/authgateway).
type AuthConfig struct {
	ServerConfig

	// Enabled gates whether the gateway enforces authentication at all.
	Enabled bool

	// GatewayURL is the downstream MCP gateway's internal URL.
	GatewayURL string

	// TraceHeader is the header name used to propagate and echo a trace id.
	TraceHeader string

	// ProviderType selects the provider implementation: "authkit" or "oidc".
	ProviderType string

	// ProviderIssuer is the token issuer. A bare domain is promoted to
	// https://; an explicit http:// is rejected.
	ProviderIssuer string

	// ProviderAudience is the expected aud claim. Empty disables audience
	// validation.
	ProviderAudience string

	// ProviderJWKSURI overrides the provider's default JWKS endpoint.
	ProviderJWKSURI string

	// ProviderName is the OIDC provider's display name.
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

	// JWKSFetchTimeout bounds each JWKS HTTP fetch.
	JWKSFetchTimeout time.Duration
}

// LoadMCPConfig reads the MCP gateway's configuration from environment
// variables, applies defaults, and validates it.
func LoadMCPConfig() (*MCPConfig, error) {
	readTimeout, err := parseDurationWithDefault("MCP_SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid MCP_SERVER_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := parseDurationWithDefault("MCP_SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid MCP_SERVER_WRITE_TIMEOUT: %w", err)
	}
	idleTimeout, err := parseDurationWithDefault("MCP_SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid MCP_SERVER_IDLE_TIMEOUT: %w", err)
	}
	toolCallTimeout, err := parseDurationWithDefault("MCP_TOOL_CALL_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid MCP_TOOL_CALL_TIMEOUT: %w", err)
	}
	discoveryTimeout, err := parseDurationWithDefault("MCP_DISCOVERY_TIMEOUT", "3s")
	if err != nil {
		return nil, fmt.Errorf("invalid MCP_DISCOVERY_TIMEOUT: %w", err)
	}

	cfg := &MCPConfig{
		ServerConfig: ServerConfig{
			Addr:         getEnvWithDefault("MCP_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		ToolComponents:    parseCommaSeparated("MCP_TOOL_COMPONENTS"),
		DiscoverySuffix:   getEnvWithDefault("MCP_DISCOVERY_SUFFIX", "spin.internal"),
		ValidateArguments: getBoolWithDefault("MCP_VALIDATE_ARGUMENTS", true),
		ToolCallTimeout:   toolCallTimeout,
		DiscoveryTimeout:  discoveryTimeout,
	}

	if err := ValidateMCPConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAuthConfig reads the auth gateway's configuration from environment
// variables, applies defaults, and validates it.
func LoadAuthConfig() (*AuthConfig, error) {
	readTimeout, err := parseDurationWithDefault("AUTH_SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_SERVER_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := parseDurationWithDefault("AUTH_SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_SERVER_WRITE_TIMEOUT: %w", err)
	}
	idleTimeout, err := parseDurationWithDefault("AUTH_SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_SERVER_IDLE_TIMEOUT: %w", err)
	}
	jwksFetchTimeout, err := parseDurationWithDefault("AUTH_JWKS_FETCH_TIMEOUT", "5s")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_JWKS_FETCH_TIMEOUT: %w", err)
	}

	cfg := &AuthConfig{
		ServerConfig: ServerConfig{
			Addr:         getEnvWithDefault("AUTH_SERVER_ADDR", ":8081"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		Enabled:                   getBoolWithDefault("AUTH_ENABLED", true),
		GatewayURL:                os.Getenv("AUTH_GATEWAY_URL"),
		TraceHeader:               getEnvWithDefault("AUTH_TRACE_HEADER", "X-Trace-Id"),
		ProviderType:              getEnvWithDefault("AUTH_PROVIDER_TYPE", "authkit"),
		ProviderIssuer:            os.Getenv("AUTH_PROVIDER_ISSUER"),
		ProviderAudience:          os.Getenv("AUTH_PROVIDER_AUDIENCE"),
		ProviderJWKSURI:           os.Getenv("AUTH_PROVIDER_JWKS_URI"),
		ProviderName:              os.Getenv("AUTH_PROVIDER_NAME"),
		ProviderAuthorizeEndpoint: os.Getenv("AUTH_PROVIDER_AUTHORIZE_ENDPOINT"),
		ProviderTokenEndpoint:     os.Getenv("AUTH_PROVIDER_TOKEN_ENDPOINT"),
		ProviderUserinfoEndpoint:  os.Getenv("AUTH_PROVIDER_USERINFO_ENDPOINT"),
		ProviderAllowedDomains:    parseCommaSeparated("AUTH_PROVIDER_ALLOWED_DOMAINS"),
		JWKSFetchTimeout:          jwksFetchTimeout,
	}

	if err := ValidateAuthConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnvWithDefault returns the environment variable value or the default if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolWithDefault parses a "true"/"false" environment variable, falling
// back to defaultValue when unset or unparseable.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

// parseCommaSeparated parses a comma-separated environment variable into a string slice.
// Empty values are filtered out. Returns nil if the environment variable is not set.
func parseCommaSeparated(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// parseDurationWithDefault parses a duration from an environment variable.
// If the variable is not set, it uses the default value.
// Returns an error if the value is set but cannot be parsed.
func parseDurationWithDefault(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		duration, err := time.ParseDuration(defaultValue)
		if err != nil {
			return 0, fmt.Errorf("invalid default duration %q: %w", defaultValue, err)
		}
		return duration, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", value, err)
	}

	return duration, nil
}

// String returns a string representation of the MCP gateway configuration
// (for debugging). There is no secret material in this config.
func (c *MCPConfig) String() string {
	return fmt.Sprintf("MCPConfig{Addr: %s, ToolComponents: %v, DiscoverySuffix: %s, ValidateArguments: %v, ToolCallTimeout: %v, DiscoveryTimeout: %v}",
		c.Addr, c.ToolComponents, c.DiscoverySuffix, c.ValidateArguments, c.ToolCallTimeout, c.DiscoveryTimeout)
}

// String returns a string representation of the auth gateway configuration
// (for debugging). Provider endpoints are not secret, but are still the
// only fields surfaced; nothing resembling a credential lives in this
// config, since tokens are verified against JWKS, not bound to a shared
// secret held here.
func (c *AuthConfig) String() string {
	return fmt.Sprintf("AuthConfig{Addr: %s, Enabled: %v, GatewayURL: %s, TraceHeader: %s, ProviderType: %s, ProviderIssuer: %s, ProviderAudience: %s}",
		c.Addr, c.Enabled, c.GatewayURL, c.TraceHeader, c.ProviderType, c.ProviderIssuer, c.ProviderAudience)
}
