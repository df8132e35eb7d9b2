package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jamesprial/mcp-gateway/internal/jsonrpc"
)

// Discoverer lists the tools backing this gateway by fanning out to each
// configured tool component.
type Discoverer interface {
	ListTools(ctx context.Context) []ToolMetadata
}

// Validator checks tool call arguments against a tool's input schema.
// It returns JSON-pointer paths of any violations. ok is false when the
// tool's metadata could not be obtained and validation had to be skipped.
type Validator interface {
	Validate(ctx context.Context, toolName string, arguments map[string]any) (violations []string, ok bool, err error)
}

// Invoker calls a tool backend with the given arguments.
type Invoker interface {
	Call(ctx context.Context, toolName string, arguments map[string]any) (*ToolResponse, error)
}

// handler implements Handler. It owns no state beyond the set of
// configured tool names and its collaborators; identical to the teacher's
// single-struct dispatcher shape but stateless across requests since
// discovery and validation happen fresh each call.
type handler struct {
	toolNames  map[string]bool
	discoverer Discoverer
	validator  Validator
	invoker    Invoker
	validate   bool
	info       ServerInfo
}

// newHandler builds the MCP dispatcher.
func newHandler(toolNames []string, discoverer Discoverer, validator Validator, invoker Invoker, validateArgs bool, info ServerInfo) Handler {
	names := make(map[string]bool, len(toolNames))
	for _, n := range toolNames {
		names[n] = true
	}
	return &handler{
		toolNames:  names,
		discoverer: discoverer,
		validator:  validator,
		invoker:    invoker,
		validate:   validateArgs,
		info:       info,
	}
}

// HandleRequest implements Handler.
func (h *handler) HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	if req == nil || !req.Valid() {
		return jsonrpc.ErrorResponse(nil, jsonrpc.CodeInvalidRequest, "invalid request", nil)
	}

	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "initialized":
		return nil
	case "ping":
		return jsonrpc.ResultResponse(req.ID, map[string]any{})
	case "tools/list":
		return h.handleToolsList(ctx, req)
	case "tools/call":
		return h.handleToolsCall(ctx, req)
	default:
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method), nil)
	}
}

func (h *handler) handleInitialize(req *jsonrpc.Request) *jsonrpc.Response {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInvalidParams, "invalid initialize params", err.Error())
		}
	}

	if params.ProtocolVersion != "" && !SupportedProtocolVersions[params.ProtocolVersion] {
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeUnsupportedProtocolVersion,
			fmt.Sprintf("unsupported protocol version: %s", params.ProtocolVersion), nil)
	}

	result := InitializeResult{
		ProtocolVersion: params.ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools: map[string]any{},
		},
		ServerInfo: ServerInfoResult{
			Name:    h.info.Name,
			Version: h.info.Version,
		},
	}
	if result.ProtocolVersion == "" {
		result.ProtocolVersion = DefaultProtocolVersion()
	}

	return jsonrpc.ResultResponse(req.ID, result)
}

func (h *handler) handleToolsList(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	tools := h.discoverer.ListTools(ctx)
	return jsonrpc.ResultResponse(req.ID, ToolsListResult{Tools: tools})
}

func (h *handler) handleToolsCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	if len(req.Params) == 0 {
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInvalidParams, "params required", nil)
	}

	var params ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInvalidParams, "invalid tools/call params", err.Error())
	}
	if params.Name == "" {
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInvalidParams, "tool name is required", nil)
	}

	if !h.toolNames[params.Name] {
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeToolNotFound, fmt.Sprintf("tool not found: %s", params.Name), nil)
	}

	if h.validate {
		violations, ok, err := h.validator.Validate(ctx, params.Name, params.Arguments)
		if err != nil {
			return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInternalError, "failed to validate arguments", err.Error())
		}
		if ok && len(violations) > 0 {
			return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInvalidParams,
				fmt.Sprintf("invalid tool arguments: %s", strings.Join(violations, ", ")), violations)
		}
	}

	resp, err := h.invoker.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInternalError,
			fmt.Sprintf("Failed to call tool '%s': %v", params.Name, err), nil)
	}

	return jsonrpc.ResultResponse(req.ID, resp)
}
