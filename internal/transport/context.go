package transport

import (
	"context"

	"github.com/jamesprial/mcp-gateway/internal/transport/transportcore"
	"github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// Re-export the context key and helpers from transportcore so that external
// packages can attach and read the authenticated user without importing
// transportcore directly.

// UserContextKey is the context key for the authenticated user identity.
const UserContextKey = transportcore.UserContextKey

// UserFromContext extracts the authenticated user identity from the request
// context. Returns nil and false if no user was attached.
func UserFromContext(ctx context.Context) (*oauth.UserContext, bool) {
	return transportcore.UserFromContext(ctx)
}

// ContextWithUser attaches the authenticated user identity to ctx.
func ContextWithUser(ctx context.Context, user *oauth.UserContext) context.Context {
	return transportcore.ContextWithUser(ctx, user)
}
