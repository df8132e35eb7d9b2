package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/jsonrpc"
	"github.com/jamesprial/mcp-gateway/internal/mcp"
	"github.com/jamesprial/mcp-gateway/internal/transport/transportcore"
	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// mcpProtocolVersionHeader is the response header the MCP gateway echoes
// the negotiated protocol version on, so proxies and clients can read it
// without parsing the JSON-RPC body.
const mcpProtocolVersionHeader = "Mcp-Protocol-Version"

// mcpHandler handles MCP protocol requests over HTTP.
type mcpHandler struct {
	handler   mcp.Handler
	responder transportcore.ErrorResponder
}

// NewMCPHandler creates a handler for MCP JSON-RPC requests.
// It parses JSON-RPC requests, delegates to the MCP handler, and returns JSON-RPC responses.
func NewMCPHandler(handler mcp.Handler, responder transportcore.ErrorResponder) http.Handler {
	if handler == nil {
		panic("handler cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &mcpHandler{
		handler:   handler,
		responder: responder,
	}
}

// ServeHTTP handles POST requests for MCP protocol.
// Only POST method is allowed for JSON-RPC requests.
func (h *mcpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get(pkgoauth.HeaderContentType)
	if contentType != pkgoauth.ContentTypeJSON && contentType != "" {
		slog.Warn("unexpected content type", "content_type", contentType)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read request body", "error", err)
		h.responder.BadRequest(w, err)
		return
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			slog.Warn("failed to close request body", "error", closeErr)
		}
	}()

	req, err := jsonrpc.Decode(body)
	if err != nil {
		slog.Error("failed to parse JSON-RPC request", "error", err)
		h.sendJSONRPCResponse(w, r, jsonrpc.ErrorResponse(jsonrpc.Null, jsonrpc.CodeParseError, "parse error", err.Error()))
		return
	}
	if !req.Valid() {
		slog.Error("invalid JSON-RPC request", "method", req.Method)
		h.sendJSONRPCResponse(w, r, jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeInvalidRequest, "invalid request", nil))
		return
	}

	resp := h.handler.HandleRequest(r.Context(), req)
	if resp == nil {
		// Notification: no body to write.
		w.Header().Set(mcpProtocolVersionHeader, negotiatedProtocolVersion(r, nil))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.sendJSONRPCResponse(w, r, resp)
}

// sendJSONRPCResponse writes a JSON-RPC response, always HTTP 200 per the
// JSON-RPC-over-HTTP convention this gateway follows: transport errors get
// real HTTP status codes, protocol errors stay inside the envelope.
func (h *mcpHandler) sendJSONRPCResponse(w http.ResponseWriter, r *http.Request, resp *jsonrpc.Response) {
	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.Header().Set(mcpProtocolVersionHeader, negotiatedProtocolVersion(r, resp))
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode JSON-RPC response", "error", err)
	}
}

// negotiatedProtocolVersion determines the value to echo on the
// Mcp-Protocol-Version response header: the version an initialize result
// just settled on, else the version the client already negotiated and is
// resending on this request, else the gateway's default.
func negotiatedProtocolVersion(r *http.Request, resp *jsonrpc.Response) string {
	if resp != nil && resp.Result != nil {
		if raw, err := json.Marshal(resp.Result); err == nil {
			var result mcp.InitializeResult
			if json.Unmarshal(raw, &result) == nil && result.ProtocolVersion != "" {
				return result.ProtocolVersion
			}
		}
	}
	if v := r.Header.Get(mcpProtocolVersionHeader); v != "" && mcp.SupportedProtocolVersions[v] {
		return v
	}
	return mcp.DefaultProtocolVersion()
}
