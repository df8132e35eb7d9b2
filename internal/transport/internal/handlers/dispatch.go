package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jamesprial/mcp-gateway/internal/oauth"
	"github.com/jamesprial/mcp-gateway/internal/transport/internal/middleware"
	"github.com/jamesprial/mcp-gateway/internal/transport/transportcore"
	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

const defaultTraceHeader = "X-Trace-Id"

// NewAuthGatewayHandler builds the auth gateway's top-level request
// handler. The two well-known discovery endpoints are always served
// unauthenticated; every other path requires a valid bearer token unless
// enabled is false, in which case the dispatcher forwards every request to
// the downstream MCP gateway unauthenticated. CORS preflight is handled by
// the global CORS middleware applied around this handler, not here.
func NewAuthGatewayHandler(services *oauth.Services, responder transportcore.ErrorResponder, traceHeader string, enabled bool) http.Handler {
	if services == nil {
		panic("services cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}
	if traceHeader == "" {
		traceHeader = defaultTraceHeader
	}

	mux := http.NewServeMux()
	mux.Handle("/.well-known/oauth-protected-resource", NewProtectedResourceHandler(services.MetadataService, services.ResourceURL))
	mux.Handle("/.well-known/oauth-authorization-server", NewAuthorizationServerHandler(services.MetadataService, services.ResourceURL))

	forward := &forwardHandler{proxy: services.Proxy, responder: responder, traceHeader: traceHeader}

	resourceURLFunc := func(r *http.Request) string { return resolveResourceURL(r, services.ResourceURL) }
	traceIDFunc := func(r *http.Request) string { return traceID(r, traceHeader) }

	var fallback http.Handler = forward
	if enabled {
		authMw := middleware.NewAuthMiddleware(services.Authenticator, responder, resourceURLFunc, traceIDFunc)
		fallback = authMw(forward)
	}
	mux.Handle("/", fallback)

	return mux
}

// traceID returns the inbound trace id header value, generating a fresh
// UUID when the request carries none.
func traceID(r *http.Request, traceHeader string) string {
	if id := r.Header.Get(traceHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// forwardHandler relays requests to the downstream MCP gateway via
// oauth.Proxy, passing on the user identity that the auth middleware (when
// enabled) attached to the request; it does no authentication itself.
type forwardHandler struct {
	proxy       oauth.Proxy
	responder   transportcore.ErrorResponder
	traceHeader string
}

func (h *forwardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	trace := traceID(r, h.traceHeader)
	w.Header().Set(h.traceHeader, trace)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read request body", "error", err, "trace_id", trace)
		h.responder.BadRequest(w, err)
		return
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			slog.Warn("failed to close request body", "error", closeErr)
		}
	}()

	user, _ := transportcore.UserFromContext(r.Context())

	result, err := h.proxy.Forward(r.Context(), r.Method, body, trace, user)
	if err != nil {
		slog.Error("forward to downstream gateway failed", "error", err, "trace_id", trace)
		h.responder.BadGateway(w, err)
		return
	}

	if result.ContentType != "" {
		w.Header().Set(pkgoauth.HeaderContentType, result.ContentType)
	}
	if result.StatusCode == 0 {
		result.StatusCode = http.StatusOK
	}
	w.WriteHeader(result.StatusCode)
	if len(result.Body) > 0 {
		if _, writeErr := w.Write(result.Body); writeErr != nil {
			slog.Error("failed to write forwarded response", "error", writeErr)
		}
	}
}
