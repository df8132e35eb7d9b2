package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	internalerrors "github.com/jamesprial/mcp-gateway/internal/errors"
	"github.com/jamesprial/mcp-gateway/internal/mcp/internal/discovery"
	"github.com/jamesprial/mcp-gateway/internal/mcp/internal/schema"
	"github.com/jamesprial/mcp-gateway/internal/mcp/internal/toolclient"
)

// Config holds configuration for MCP gateway services.
type Config struct {
	// ServerName is the name this gateway presents in initialize responses.
	ServerName string

	// ServerVersion is the version this gateway presents in initialize responses.
	ServerVersion string

	// ToolComponents lists the tool names this gateway exposes. Each name is
	// resolved to a backend base URL by the discovery/invocation layer.
	ToolComponents []string

	// DiscoverySuffix is the domain suffix appended to a tool's kebab-cased
	// name to form its backend base URL (e.g. "spin.internal").
	DiscoverySuffix string

	// ValidateArguments enables schema validation of tools/call arguments
	// before a backend is invoked.
	ValidateArguments bool

	// ToolCallTimeout bounds a single tools/call backend request.
	ToolCallTimeout time.Duration

	// DiscoveryTimeout bounds a single tool metadata fetch within a
	// tools/list fan-out.
	DiscoveryTimeout time.Duration
}

// NewHandler builds the MCP dispatcher from its collaborators.
func NewHandler(cfg *Config, discoverer Discoverer, validator Validator, invoker Invoker) Handler {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if discoverer == nil {
		panic("discoverer cannot be nil")
	}
	if invoker == nil {
		panic("invoker cannot be nil")
	}
	info := ServerInfo{Name: cfg.ServerName, Version: cfg.ServerVersion}
	return newHandler(cfg.ToolComponents, discoverer, validator, invoker, cfg.ValidateArguments, info)
}

// NewMCPServices wires the discovery, schema, and tool-client packages into
// the Handler interfaces, and returns the assembled dispatcher.
func NewMCPServices(cfg *Config, log *slog.Logger) Handler {
	client := &http.Client{Timeout: cfg.ToolCallTimeout}
	disc := discovery.New(client, cfg.DiscoverySuffix, log)
	validator := schema.New()
	invoker := toolclient.New(client, cfg.DiscoverySuffix)

	return NewHandler(cfg,
		&discoveryAdapter{disc: disc, names: cfg.ToolComponents, timeout: cfg.DiscoveryTimeout},
		&schemaAdapter{disc: disc, validator: validator},
		&toolClientAdapter{invoker: invoker},
	)
}

// discoveryAdapter bridges the discovery package's fan-out to Discoverer.
type discoveryAdapter struct {
	disc    *discovery.Discoverer
	names   []string
	timeout time.Duration
}

func (a *discoveryAdapter) ListTools(ctx context.Context) []ToolMetadata {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	raw := a.disc.FetchAll(ctx, a.names)
	out := make([]ToolMetadata, 0, len(raw))
	for _, m := range raw {
		out = append(out, toToolMetadata(m))
	}
	return out
}

// schemaAdapter bridges per-tool metadata fetch and schema validation to
// Validator. It fetches the tool's current inputSchema rather than caching
// it, matching the per-invocation compilation spec.md describes.
type schemaAdapter struct {
	disc      *discovery.Discoverer
	validator *schema.Validator
}

func (a *schemaAdapter) Validate(ctx context.Context, toolName string, arguments map[string]any) ([]string, bool, error) {
	meta, err := a.disc.FetchOne(ctx, toolName)
	if err != nil {
		return nil, false, nil
	}
	inputSchema, _ := meta["inputSchema"].(map[string]any)
	if inputSchema == nil {
		return nil, false, nil
	}

	violations, err := a.validator.Validate(inputSchema, arguments)
	if err != nil {
		return nil, false, nil
	}
	return violations, true, nil
}

// toolClientAdapter bridges the toolclient package to Invoker.
type toolClientAdapter struct {
	invoker *toolclient.Client
}

func (a *toolClientAdapter) Call(ctx context.Context, toolName string, arguments map[string]any) (*ToolResponse, error) {
	resp, err := a.invoker.Call(ctx, toolName, arguments)
	if err != nil {
		return nil, internalerrors.New("mcp", "Call", internalerrors.ErrInternal, err)
	}
	return &ToolResponse{
		Content:           toContent(resp.Content),
		StructuredContent: resp.StructuredContent,
		IsError:           resp.IsError,
	}, nil
}

func toToolMetadata(raw map[string]any) ToolMetadata {
	m := ToolMetadata{}
	if v, ok := raw["name"].(string); ok {
		m.Name = v
	}
	if v, ok := raw["title"].(string); ok {
		m.Title = v
	}
	if v, ok := raw["description"].(string); ok {
		m.Description = v
	}
	if v, ok := raw["inputSchema"].(map[string]any); ok {
		m.InputSchema = v
	}
	if v, ok := raw["outputSchema"].(map[string]any); ok {
		m.OutputSchema = v
	}
	if v, ok := raw["annotations"].(map[string]any); ok {
		m.Annotations = v
	}
	if v, ok := raw["_meta"].(map[string]any); ok {
		m.Meta = v
	}
	return m
}

func toContent(items []toolclient.Content) []Content {
	out := make([]Content, len(items))
	for i, c := range items {
		out[i] = Content{
			Type:        c.Type,
			Text:        c.Text,
			Data:        c.Data,
			MimeType:    c.MimeType,
			Resource:    c.Resource,
			Annotations: c.Annotations,
		}
	}
	return out
}
