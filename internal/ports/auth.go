package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
)

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue signs a token for the principal with the role's secret.
	// Expiry is fixed at issue time.
	Issue(principalID string, role domainauth.Role) (string, error)

	// Verify checks the token against the given role's secret and returns
	// its claims. Failures map to domainauth.ErrTokenExpired or
	// domainauth.ErrInvalidToken.
	Verify(token string, role domainauth.Role) (domainauth.Claims, error)

	// VerifyAny checks the token against each role's secret in a fixed
	// priority order (user first, then admin). If every candidate fails the
	// error is the generic domainauth.ErrInvalidToken; it never reports
	// which secret came closest.
	VerifyAny(token string) (domainauth.Claims, error)

	// DecodeUnchecked extracts claims without verifying the signature.
	// Used only to read the expiry when recording a revocation; revoking a
	// forged token is harmless since it never matches anything.
	DecodeUnchecked(token string) (domainauth.Claims, bool)
}

// RevocationStore records blacklisted tokens until their natural expiry.
type RevocationStore interface {
	// Record blacklists the token. Recording an already-revoked token is
	// treated as success.
	Record(ctx context.Context, token string, expiresAt time.Time) error

	// IsRevoked reports whether the token has been blacklisted.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// PasswordHasher hashes and verifies passwords. One-way; the hash is the
// only thing ever persisted.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
