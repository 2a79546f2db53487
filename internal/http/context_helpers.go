package httpx

import (
	"context"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across
// packages. Centralized here so all handlers/middleware use the same key.
type principalKey struct{}

// SetPrincipalInContext returns a child context carrying the authenticated
// principal.
func SetPrincipalInContext(ctx context.Context, p domainauth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipalFromContext returns the authenticated principal and a boolean
// indicating presence. Handlers behind RequireAuth can rely on presence.
func GetPrincipalFromContext(ctx context.Context) (domainauth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domainauth.Principal)
	return p, ok
}
