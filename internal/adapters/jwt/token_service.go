package jwt

// Package jwt provides the golang-jwt backed token service. Tokens are
// HS256-signed with one of two role-specific secrets; a token signed with the
// admin secret is never valid against the user secret and vice versa.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/ports"
)

// DefaultTTL is the fixed lifetime of an issued token.
const DefaultTTL = time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenServiceOptions groups dependencies for TokenService.
type TokenServiceOptions struct {
	UserSecret  []byte
	AdminSecret []byte
	// TTL defaults to DefaultTTL when zero.
	TTL time.Duration
	// Now defaults to time.Now. Injectable for expiry tests.
	Now func() time.Time
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	userSecret  []byte
	adminSecret []byte
	ttl         time.Duration
	now         func() time.Time
}

var _ ports.TokenService = (*TokenService)(nil)

// NewTokenService constructs a TokenService.
func NewTokenService(opts TokenServiceOptions) (*TokenService, error) {
	if len(opts.UserSecret) == 0 {
		return nil, errors.New("user secret is required")
	}
	if len(opts.AdminSecret) == 0 {
		return nil, errors.New("admin secret is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		userSecret:  opts.UserSecret,
		adminSecret: opts.AdminSecret,
		ttl:         ttl,
		now:         now,
	}, nil
}

func (s *TokenService) secretOf(role domainauth.Role) ([]byte, error) {
	switch role {
	case domainauth.RoleUser:
		return s.userSecret, nil
	case domainauth.RoleAdmin:
		return s.adminSecret, nil
	default:
		return nil, fmt.Errorf("no secret for role %q", role)
	}
}

// Issue signs a token carrying the principal id and role, expiring after the
// configured TTL.
func (s *TokenService) Issue(principalID string, role domainauth.Role) (string, error) {
	secret, err := s.secretOf(role)
	if err != nil {
		return "", err
	}
	if principalID == "" {
		return "", errors.New("principal id is required")
	}

	issuedAt := s.now()
	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token against the given role's secret.
func (s *TokenService) Verify(token string, role domainauth.Role) (domainauth.Claims, error) {
	secret, err := s.secretOf(role)
	if err != nil {
		return domainauth.Claims{}, err
	}
	return s.verifyWithSecret(token, secret)
}

// VerifyAny tries the user secret first, then the admin secret. The ordering
// is a deliberate, fixed tie-break. When every candidate fails the error is
// the generic domainauth.ErrInvalidToken unless a candidate proved the token
// genuinely expired (signature valid, expiry passed).
func (s *TokenService) VerifyAny(token string) (domainauth.Claims, error) {
	candidates := [][]byte{s.userSecret, s.adminSecret}

	sawExpired := false
	for _, secret := range candidates {
		claims, err := s.verifyWithSecret(token, secret)
		if err == nil {
			return claims, nil
		}
		if errors.Is(err, domainauth.ErrTokenExpired) {
			sawExpired = true
		}
	}
	if sawExpired {
		return domainauth.Claims{}, domainauth.ErrTokenExpired
	}
	return domainauth.Claims{}, domainauth.ErrInvalidToken
}

func (s *TokenService) verifyWithSecret(token string, secret []byte) (domainauth.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		// An expiry failure only counts when the signature itself held up;
		// a forged token must never learn how close its claims were.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return domainauth.Claims{}, domainauth.ErrTokenExpired
		}
		return domainauth.Claims{}, domainauth.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return domainauth.Claims{}, domainauth.ErrInvalidToken
	}
	return claims.toDomain(), nil
}

// DecodeUnchecked extracts claims without verifying the signature. The
// second return is false when the token cannot be decoded or carries no
// expiry.
func (s *TokenService) DecodeUnchecked(token string) (domainauth.Claims, bool) {
	parser := jwt.NewParser()
	var claims tokenClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return domainauth.Claims{}, false
	}
	if claims.ExpiresAt == nil {
		return domainauth.Claims{}, false
	}
	return claims.toDomain(), true
}

func (c *tokenClaims) toDomain() domainauth.Claims {
	out := domainauth.Claims{
		PrincipalID: c.Subject,
		Role:        domainauth.Role(c.Role),
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
