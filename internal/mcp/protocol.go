package mcp

// InitializeParams contains parameters for the initialize method.
type InitializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	ClientInfo      ClientInfo     `json:"clientInfo"`
	Capabilities    map[string]any `json:"capabilities,omitempty"`
}

// ClientInfo identifies the connecting MCP client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the result of a successful initialize handshake.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfoResult   `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
}

// ServerCapabilities declares what the gateway can do, not what any
// individual tool backend supports.
type ServerCapabilities struct {
	Tools     map[string]any `json:"tools"`
	Resources map[string]any `json:"resources"`
	Prompts   map[string]any `json:"prompts"`
}

// ServerInfoResult identifies this gateway in the initialize response.
type ServerInfoResult struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolMetadata is the discovery document a tool backend publishes on GET.
type ToolMetadata struct {
	Name         string         `json:"name"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	InputSchema  map[string]any `json:"inputSchema"`
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
	Annotations  map[string]any `json:"annotations,omitempty"`
	Meta         map[string]any `json:"_meta,omitempty"`
}

// ToolsListResult is the result of the tools/list method.
type ToolsListResult struct {
	Tools []ToolMetadata `json:"tools"`
}

// ToolsCallParams contains parameters for the tools/call method.
type ToolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolResponse is the content envelope a tool backend returns on POST, and
// the shape of a successful tools/call result.
type ToolResponse struct {
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError,omitempty"`
}

// Content is one item of a tool response's content list.
type Content struct {
	Type        string         `json:"type"`
	Text        string         `json:"text,omitempty"`
	Data        string         `json:"data,omitempty"`
	MimeType    string         `json:"mimeType,omitempty"`
	Resource    map[string]any `json:"resource,omitempty"`
	Annotations map[string]any `json:"annotations,omitempty"`
}

// TextContent builds a single text content item, the shape used for
// synthesized tool-error responses (§4.5) and other gateway-generated text.
func TextContent(text string) []Content {
	return []Content{{Type: "text", Text: text}}
}
