package auth

import (
	"context"

	"portfolio-api/internal/domain"
)

type identityContextKey struct{}

// ContextWithIdentity attaches the authenticated identity to the context.
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, &identity)
}

// IdentityFromContext extracts the authenticated identity from the context.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	if ctx == nil {
		return domain.Identity{}, false
	}
	v, ok := ctx.Value(identityContextKey{}).(*domain.Identity)
	if !ok || v == nil {
		return domain.Identity{}, false
	}
	return *v, true
}
