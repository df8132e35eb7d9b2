// Package mocks provides mock implementations for testing the transport layer.
package mocks

import (
	"context"
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/jsonrpc"
	"github.com/jamesprial/mcp-gateway/internal/mcp"
	"github.com/jamesprial/mcp-gateway/internal/oauth"
	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// Authenticator is a mock implementation of oauth.Authenticator.
type Authenticator struct {
	AuthenticateFunc func(ctx context.Context, bearerToken string) (*pkgoauth.UserContext, error)
}

// Authenticate calls the mock AuthenticateFunc.
func (m *Authenticator) Authenticate(ctx context.Context, bearerToken string) (*pkgoauth.UserContext, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, bearerToken)
	}
	return &pkgoauth.UserContext{ID: "mock-user"}, nil
}

// MetadataService is a mock implementation of oauth.MetadataService.
type MetadataService struct {
	ProtectedResourceFunc   func(resourceURL string) oauth.ProtectedResourceMetadata
	AuthorizationServerFunc func(resourceURL string) oauth.AuthorizationServerMetadata
}

// ProtectedResource calls the mock ProtectedResourceFunc.
func (m *MetadataService) ProtectedResource(resourceURL string) oauth.ProtectedResourceMetadata {
	if m.ProtectedResourceFunc != nil {
		return m.ProtectedResourceFunc(resourceURL)
	}
	return oauth.ProtectedResourceMetadata{Resource: resourceURL}
}

// AuthorizationServer calls the mock AuthorizationServerFunc.
func (m *MetadataService) AuthorizationServer(resourceURL string) oauth.AuthorizationServerMetadata {
	if m.AuthorizationServerFunc != nil {
		return m.AuthorizationServerFunc(resourceURL)
	}
	return oauth.AuthorizationServerMetadata{}
}

// Proxy is a mock implementation of oauth.Proxy.
type Proxy struct {
	ForwardFunc func(ctx context.Context, method string, body []byte, traceID string, user *pkgoauth.UserContext) (*oauth.ProxyResult, error)
}

// Forward calls the mock ForwardFunc.
func (m *Proxy) Forward(ctx context.Context, method string, body []byte, traceID string, user *pkgoauth.UserContext) (*oauth.ProxyResult, error) {
	if m.ForwardFunc != nil {
		return m.ForwardFunc(ctx, method, body, traceID, user)
	}
	return &oauth.ProxyResult{StatusCode: http.StatusOK, ContentType: pkgoauth.ContentTypeJSON}, nil
}

// MCPHandler is a mock implementation of mcp.Handler.
type MCPHandler struct {
	HandleFunc func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response
}

// HandleRequest calls the mock HandleFunc.
func (m *MCPHandler) HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	if m.HandleFunc != nil {
		return m.HandleFunc(ctx, req)
	}
	return jsonrpc.ResultResponse(req.ID, map[string]any{})
}

// Keep a reference to mcp so the import stays meaningful for packages that
// embed this mock alongside mcp.Handler-typed fields.
var _ mcp.Handler = (*MCPHandler)(nil)

// ErrorResponder is a mock implementation of transportcore.ErrorResponder.
type ErrorResponder struct {
	UnauthorizedCalled bool
	UnauthorizedDesc   string
	UnauthorizedMeta   string
	UnauthorizedTrace  string
	BadGatewayCalled   bool
	BadGatewayErr      error
	InternalCalled     bool
	InternalErr        error
	BadRequestCalled   bool
	BadRequestErr      error
}

// Unauthorized records the call and writes a 401 response.
func (m *ErrorResponder) Unauthorized(w http.ResponseWriter, description, resourceMetadataURL, traceID string) {
	m.UnauthorizedCalled = true
	m.UnauthorizedDesc = description
	m.UnauthorizedMeta = resourceMetadataURL
	m.UnauthorizedTrace = traceID
	w.Header().Set("WWW-Authenticate", `Bearer error="unauthorized", error_description="`+description+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

// BadGateway records the call and writes a 502 response.
func (m *ErrorResponder) BadGateway(w http.ResponseWriter, err error) {
	m.BadGatewayCalled = true
	m.BadGatewayErr = err
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte(`{"error":"bad_gateway"}`))
}

// InternalError records the call and writes a 500 response.
func (m *ErrorResponder) InternalError(w http.ResponseWriter, err error) {
	m.InternalCalled = true
	m.InternalErr = err
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"internal_error"}`))
}

// BadRequest records the call and writes a 400 response.
func (m *ErrorResponder) BadRequest(w http.ResponseWriter, err error) {
	m.BadRequestCalled = true
	m.BadRequestErr = err
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"error":"bad_request"}`))
}

// Reset clears all recorded state.
func (m *ErrorResponder) Reset() {
	*m = ErrorResponder{}
}
