// Package handlers provides HTTP handlers for the MCP server.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jamesprial/mcp-gateway/internal/jsonrpc"
	"github.com/jamesprial/mcp-gateway/internal/mcp"
	"github.com/jamesprial/mcp-gateway/internal/transport/internal/mocks"
)

func TestMCPHandler_ValidRequest(t *testing.T) {
	t.Parallel()

	expectedResult := map[string]any{"success": true}

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ResultResponse(req.ID, expectedResult)
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("MCPHandler valid request status = %v, want 200", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		t.Errorf("MCPHandler Content-Type = %v, want application/json", contentType)
	}

	if v := resp.Header.Get("Mcp-Protocol-Version"); v == "" {
		t.Error("Mcp-Protocol-Version header should be set")
	}

	var jsonRPCResp jsonrpc.Response
	if err := json.NewDecoder(resp.Body).Decode(&jsonRPCResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if jsonRPCResp.JSONRPC != jsonrpc.Version {
		t.Errorf("JSONRPC version = %v, want %v", jsonRPCResp.JSONRPC, jsonrpc.Version)
	}

	if jsonRPCResp.Error != nil {
		t.Errorf("Unexpected error in response: %v", jsonRPCResp.Error)
	}
}

func TestMCPHandler_EchoesNegotiatedProtocolVersion(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ResultResponse(req.ID, mcp.InitializeResult{ProtocolVersion: "2025-06-18"})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if got := w.Header().Get("Mcp-Protocol-Version"); got != "2025-06-18" {
		t.Errorf("Mcp-Protocol-Version = %v, want 2025-06-18", got)
	}
}

func TestMCPHandler_EchoesRequestProtocolVersionHeader(t *testing.T) {
	t.Parallel()

	version := mcp.DefaultProtocolVersion()

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ResultResponse(req.ID, map[string]any{})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Mcp-Protocol-Version", version)
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if got := w.Header().Get("Mcp-Protocol-Version"); got != version {
		t.Errorf("Mcp-Protocol-Version = %v, want %v", got, version)
	}
}

func TestMCPHandler_GET(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{}
	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("MCPHandler GET status = %v, want 405", w.Code)
	}
}

func TestMCPHandler_OtherMethods(t *testing.T) {
	t.Parallel()

	methods := []string{
		http.MethodPut,
		http.MethodDelete,
		http.MethodPatch,
	}

	handler := &mocks.MCPHandler{}
	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(method, "/mcp", nil)
			w := httptest.NewRecorder()

			mcpHandler.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("MCPHandler %s status = %v, want 405", method, w.Code)
			}
		})
	}
}

func TestMCPHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{}
	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("not valid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MCPHandler invalid JSON status = %v, want 200", w.Code)
	}

	var resp jsonrpc.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == nil {
		t.Error("Expected error in JSON-RPC response")
	}
	if resp.Error != nil && resp.Error.Code != jsonrpc.CodeParseError {
		t.Errorf("Error code = %v, want %v (parse error)", resp.Error.Code, jsonrpc.CodeParseError)
	}
}

func TestMCPHandler_EmptyBody(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{}
	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MCPHandler empty body status = %v, want 200", w.Code)
	}

	var resp jsonrpc.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == nil {
		t.Error("Expected error in JSON-RPC response for empty body")
	}
}

func TestMCPHandler_InvalidRequestEnvelope(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{}
	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	// Missing method makes the envelope invalid.
	reqBody := `{"jsonrpc":"2.0","id":1}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MCPHandler invalid envelope status = %v, want 200", w.Code)
	}

	var resp jsonrpc.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != jsonrpc.CodeInvalidRequest {
		t.Errorf("Error = %+v, want CodeInvalidRequest", resp.Error)
	}
}

func TestMCPHandler_JSONRPCError(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ErrorResponse(req.ID, jsonrpc.CodeMethodNotFound, "method not found", nil)
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":1,"method":"unknown"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MCPHandler JSON-RPC error status = %v, want 200", w.Code)
	}

	var jsonRPCResp jsonrpc.Response
	if err := json.NewDecoder(w.Body).Decode(&jsonRPCResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if jsonRPCResp.Error == nil {
		t.Fatal("Expected error in JSON-RPC response")
	}

	if jsonRPCResp.Error.Code != jsonrpc.CodeMethodNotFound {
		t.Errorf("Error code = %v, want %v", jsonRPCResp.Error.Code, jsonrpc.CodeMethodNotFound)
	}
}

func TestMCPHandler_Notification(t *testing.T) {
	t.Parallel()

	var called bool
	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			called = true
			return nil
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","method":"initialized"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if !called {
		t.Error("handler was not invoked for notification")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("MCPHandler notification status = %v, want 204", w.Code)
	}
	if v := w.Header().Get("Mcp-Protocol-Version"); v == "" {
		t.Error("Mcp-Protocol-Version header should be set on notification response")
	}
}

func TestMCPHandler_ContextPassed(t *testing.T) {
	t.Parallel()

	var receivedCtx context.Context

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			receivedCtx = ctx
			return jsonrpc.ResultResponse(req.ID, map[string]any{})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":1,"method":"test"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if receivedCtx == nil {
		t.Error("Context was not passed to handler")
	}
}

func TestMCPHandler_RequestParsing(t *testing.T) {
	t.Parallel()

	var receivedReq *jsonrpc.Request

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			receivedReq = req
			return jsonrpc.ResultResponse(req.ID, map[string]any{})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":"test-id-123","method":"tools/list","params":{"cursor":"abc"}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if receivedReq == nil {
		t.Fatal("Request was not passed to handler")
	}

	if receivedReq.JSONRPC != jsonrpc.Version {
		t.Errorf("JSONRPC = %v, want %v", receivedReq.JSONRPC, jsonrpc.Version)
	}

	if receivedReq.Method != "tools/list" {
		t.Errorf("Method = %v, want tools/list", receivedReq.Method)
	}

	if string(receivedReq.ID) != `"test-id-123"` {
		t.Errorf("ID = %v, want \"test-id-123\"", string(receivedReq.ID))
	}
}

func TestMCPHandler_NumericID(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ResultResponse(req.ID, map[string]any{})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":42,"method":"test"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MCPHandler numeric ID status = %v, want 200", w.Code)
	}

	var jsonRPCResp jsonrpc.Response
	if err := json.NewDecoder(w.Body).Decode(&jsonRPCResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(jsonRPCResp.ID) == 0 {
		t.Error("Response ID should not be empty")
	}
}

func TestMCPHandler_NullID(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ResultResponse(req.ID, map[string]any{})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	reqBody := `{"jsonrpc":"2.0","id":null,"method":"test"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MCPHandler null ID status = %v, want 200", w.Code)
	}
}

func TestMCPHandler_LargeRequest(t *testing.T) {
	t.Parallel()

	handler := &mocks.MCPHandler{
		HandleFunc: func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			return jsonrpc.ResultResponse(req.ID, map[string]any{"received": true})
		},
	}

	responder := &mocks.ErrorResponder{}
	mcpHandler := NewMCPHandler(handler, responder)

	largeParams := make(map[string]string)
	for i := 0; i < 100; i++ {
		largeParams[string(rune('a'+i%26))+string(rune('0'+i%10))] = strings.Repeat("x", 1000)
	}
	paramsJSON, _ := json.Marshal(largeParams)

	reqBody := bytes.Buffer{}
	reqBody.WriteString(`{"jsonrpc":"2.0","id":1,"method":"test","params":`)
	reqBody.Write(paramsJSON)
	reqBody.WriteString(`}`)

	req := httptest.NewRequest(http.MethodPost, "/mcp", &reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mcpHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK && w.Code != http.StatusRequestEntityTooLarge && w.Code != http.StatusBadRequest {
		t.Errorf("MCPHandler large request status = %v", w.Code)
	}
}
