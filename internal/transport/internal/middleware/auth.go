// Package middleware provides HTTP middleware for the transport layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/jamesprial/mcp-gateway/internal/oauth"
	"github.com/jamesprial/mcp-gateway/internal/transport/transportcore"
	pkgoauth "github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// NewAuthMiddleware builds middleware that authenticates a Bearer token
// against authenticator and attaches the resulting user identity to the
// request context. resourceURLFunc and traceIDFunc compute the per-request
// values the 401 response needs; either may return an empty string.
//
// This is wired selectively by the auth gateway's dispatch handler rather
// than applied globally via Router.Use, so that well-known and CORS
// preflight routes stay unauthenticated per the gateway's routing order.
func NewAuthMiddleware(
	authenticator oauth.Authenticator,
	responder transportcore.ErrorResponder,
	resourceURLFunc func(*http.Request) string,
	traceIDFunc func(*http.Request) string,
) transportcore.Middleware {
	if authenticator == nil {
		panic("authenticator cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := traceIDFromFunc(traceIDFunc, r)

			token, err := extractBearerToken(r)
			if err != nil {
				responder.Unauthorized(w, err.Error(), resourceURLFromFunc(resourceURLFunc, r), traceID)
				return
			}

			user, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				responder.Unauthorized(w, err.Error(), resourceURLFromFunc(resourceURLFunc, r), traceID)
				return
			}

			ctx := transportcore.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resourceURLFromFunc(f func(*http.Request) string, r *http.Request) string {
	if f == nil {
		return ""
	}
	return f(r)
}

func traceIDFromFunc(f func(*http.Request) string, r *http.Request) string {
	if f == nil {
		return ""
	}
	return f(r)
}

// extractBearerToken extracts the Bearer token from the Authorization header.
// Returns an error if the header is missing or not in the correct format.
//
// Format: Authorization: Bearer <token>
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(pkgoauth.HeaderAuthorization)
	if authHeader == "" {
		return "", transportcore.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", transportcore.ErrInvalidToken
	}

	if !strings.EqualFold(parts[0], pkgoauth.BearerToken) {
		return "", transportcore.ErrInvalidToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", transportcore.ErrMissingToken
	}

	return token, nil
}
