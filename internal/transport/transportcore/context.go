package transportcore

import (
	"context"

	"github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user identity.
	UserContextKey contextKey = "oauth_user"
)

// UserFromContext extracts the authenticated user identity from the request
// context. Returns nil and false if no user was attached, which is the
// normal case for requests handled while auth is disabled.
func UserFromContext(ctx context.Context) (*oauth.UserContext, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(UserContextKey).(*oauth.UserContext)
	return user, ok
}

// ContextWithUser attaches the authenticated user identity to ctx, for
// handlers and logging middleware further down the chain to read.
func ContextWithUser(ctx context.Context, user *oauth.UserContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, UserContextKey, user)
}
