package auth

// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"time"
)

// Role represents an application's authorization role.
// Each role has its own signing secret; a token issued for one role never
// verifies against the other role's secret.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid returns true if the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated identity resolved from a verified token.
// It is not persisted; it exists per-request only.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin returns true if the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Claims is the decoded payload of a session token.
type Claims struct {
	PrincipalID string
	Role        Role
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Typed authentication failures. The gate and token service return exactly
// one of these for every failure path so callers can map deterministically
// to a response without a catch-all.
var (
	// ErrMissingToken is returned when no bearer token is present.
	ErrMissingToken = errors.New("no token provided")

	// ErrLoggedOut is returned when the token has been explicitly revoked.
	// Checked before signature verification.
	ErrLoggedOut = errors.New("token has been logged out")

	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidToken is returned for malformed tokens, tampered signatures,
	// and signature mismatches. Deliberately generic: it never reveals which
	// secret (if any) almost matched.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedToken is returned when the token cannot be decoded at all,
	// e.g. at logout when the expiry claim cannot be read.
	ErrMalformedToken = errors.New("malformed token")

	// ErrForbidden is returned when a token verifies but its role does not
	// satisfy what the endpoint requires. Distinct from ErrInvalidToken.
	ErrForbidden = errors.New("insufficient permissions")
)
