package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	domainerrors "github.com/jamesprial/mcp-gateway/internal/errors"
	"github.com/jamesprial/mcp-gateway/internal/transport/transportcore"
	"github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// errorResponse represents a JSON error response body.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// errorResponder implements transportcore.ErrorResponder.
type errorResponder struct{}

// NewErrorResponder creates a new error responder.
func NewErrorResponder() transportcore.ErrorResponder {
	return &errorResponder{}
}

// Unauthorized sends a 401 Unauthorized response with a WWW-Authenticate
// header per RFC 6750 Section 3, carrying the resource_metadata parameter
// from RFC 9728 when resourceMetadataURL is known.
//
// Format: WWW-Authenticate: Bearer error="unauthorized", error_description="<description>", resource_metadata="<url>"
func (e *errorResponder) Unauthorized(w http.ResponseWriter, description, resourceMetadataURL, traceID string) {
	oauthErr := domainerrors.NewOAuthError("unauthorized", description)
	if resourceMetadataURL != "" {
		oauthErr = oauthErr.WithResourceMetadata(resourceMetadataURL)
	}

	w.Header().Set(oauth.HeaderWWWAuthenticate, oauthErr.WWWAuthenticate())
	w.Header().Set(oauth.HeaderContentType, oauth.ContentTypeJSON)
	if traceID != "" {
		w.Header().Set("X-Trace-Id", traceID)
	}
	w.WriteHeader(http.StatusUnauthorized)

	slog.Warn("unauthorized request", "description", description, "trace_id", traceID)

	resp := errorResponse{
		Error:            "unauthorized",
		ErrorDescription: description,
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// BadGateway sends a 502 Bad Gateway response when forwarding a verified
// request to the downstream MCP gateway fails.
func (e *errorResponder) BadGateway(w http.ResponseWriter, err error) {
	w.Header().Set(oauth.HeaderContentType, oauth.ContentTypeJSON)
	w.WriteHeader(http.StatusBadGateway)

	slog.Error("gateway forward failed", "error", err)

	message := "gateway error"
	if err != nil {
		message = fmt.Sprintf("gateway error: %s", err.Error())
	}

	resp := errorResponse{
		Error:            "bad_gateway",
		ErrorDescription: message,
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// InternalError sends a 500 Internal Server Error response.
// The response body contains a JSON error message.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	w.Header().Set(oauth.HeaderContentType, oauth.ContentTypeJSON)
	w.WriteHeader(http.StatusInternalServerError)

	slog.Error("internal server error", "error", err)

	resp := errorResponse{
		Error:            "internal_error",
		ErrorDescription: "an internal server error occurred",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// BadRequest sends a 400 Bad Request response.
// The response body contains a JSON error message.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set(oauth.HeaderContentType, oauth.ContentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)

	slog.Warn("bad request", "error", err)

	message := "invalid request"
	if err != nil {
		message = err.Error()
	}

	resp := errorResponse{
		Error:            "bad_request",
		ErrorDescription: message,
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
