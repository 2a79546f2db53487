package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sb-patel/notification-system-backend/internal/core"
	"github.com/sb-patel/notification-system-backend/internal/data"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/ports"
)

// ErrInvalidCredentials is returned by SignIn for both an unknown email and
// a wrong password, so the response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Principals core.PrincipalRepository
	Tokens     ports.TokenService
	Revocation ports.RevocationStore
	Hasher     ports.PasswordHasher
}

// AuthService orchestrates account sign-up/sign-in, token issuance, the
// request authentication gate, and logout revocation.
type AuthService struct {
	principals core.PrincipalRepository
	tokens     ports.TokenService
	revocation ports.RevocationStore
	hasher     ports.PasswordHasher
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		principals: opts.Principals,
		tokens:     opts.Tokens,
		revocation: opts.Revocation,
		hasher:     opts.Hasher,
	}
}

// SignUp creates a new account in the given role's namespace. The same email
// may exist as both a user and an admin; within one role it conflicts with
// data.ErrEmailExists.
func (s *AuthService) SignUp(ctx context.Context, role domainauth.Role, req *model.SignUpRequest) (*model.Principal, error) {
	if req == nil {
		return nil, errors.New("sign-up request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.principals.Create(ctx, data.CreatePrincipalParams{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SignInResult contains the authenticated principal and its fresh token.
type SignInResult struct {
	Principal *model.Principal
	Token     string
}

// SignIn checks credentials against the role's namespace and issues a token
// signed with that role's secret.
func (s *AuthService) SignIn(ctx context.Context, role domainauth.Role, req *model.SignInRequest) (*SignInResult, error) {
	if req == nil {
		return nil, errors.New("sign-in request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	p, err := s.principals.GetByEmail(ctx, req.Email, role)
	if err != nil {
		if errors.Is(err, data.ErrPrincipalNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if !s.hasher.Verify(req.Password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(p.ID, role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &SignInResult{Principal: p, Token: token}, nil
}

// Authenticate is the gate every protected request passes through. It checks
// the revocation list before any cryptography, verifies the token against the
// allowed roles' secrets, and finally enforces role membership. Failures are
// always one of the domainauth sentinels; anything else is an infrastructure
// error the caller should treat as internal.
func (s *AuthService) Authenticate(ctx context.Context, token string, allowed ...domainauth.Role) (domainauth.Principal, error) {
	if token == "" {
		return domainauth.Principal{}, domainauth.ErrMissingToken
	}

	revoked, err := s.revocation.IsRevoked(ctx, token)
	if err != nil {
		return domainauth.Principal{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return domainauth.Principal{}, domainauth.ErrLoggedOut
	}

	var claims domainauth.Claims
	switch len(allowed) {
	case 0:
		claims, err = s.tokens.VerifyAny(token)
	case 1:
		claims, err = s.tokens.Verify(token, allowed[0])
	default:
		// More than one allowed role: accept a token from any of them and
		// sort out membership below.
		claims, err = s.tokens.VerifyAny(token)
	}
	if err != nil {
		return domainauth.Principal{}, err
	}

	if len(allowed) > 0 && !roleAllowed(claims.Role, allowed) {
		return domainauth.Principal{}, domainauth.ErrForbidden
	}

	return domainauth.Principal{ID: claims.PrincipalID, Role: claims.Role}, nil
}

// Logout blacklists the presented token until its natural expiry. The expiry
// is read without signature verification: revoking a forged token is harmless
// because it will never verify anyway. A token whose expiry cannot be decoded
// yields domainauth.ErrMalformedToken.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domainauth.ErrMissingToken
	}

	claims, ok := s.tokens.DecodeUnchecked(token)
	if !ok {
		return domainauth.ErrMalformedToken
	}

	// An already-expired token needs no blacklist entry; redis would refuse
	// the non-positive TTL anyway.
	if !claims.ExpiresAt.After(time.Now()) {
		return nil
	}

	if err := s.revocation.Record(ctx, token, claims.ExpiresAt); err != nil {
		return fmt.Errorf("record revocation: %w", err)
	}
	return nil
}

func roleAllowed(role domainauth.Role, allowed []domainauth.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
