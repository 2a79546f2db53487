package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.RevocationStore = (*MemoryRevocationStore)(nil)
	_ ports.RevocationStore = (*FailingRevocationStore)(nil)
	_ ports.TokenService    = (*StubTokenService)(nil)
)

// MemoryRevocationStore is an in-memory token blacklist for unit tests.
// Entries past their expiry behave as absent, mirroring redis TTL eviction.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	// Now can be overridden for expiry tests; defaults to time.Now.
	Now func() time.Time
}

// NewMemoryRevocationStore creates a new in-memory revocation store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]time.Time)}
}

func (m *MemoryRevocationStore) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MemoryRevocationStore) Record(_ context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if !expiresAt.After(m.now()) {
		return errors.New("token is already expired")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revoked[token]; !ok {
		m.revoked[token] = expiresAt
	}
	return nil
}

func (m *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[token]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.revoked, token)
		return false, nil
	}
	return true, nil
}

// FailingRevocationStore returns Err from every call. Used to exercise
// storage-outage paths.
type FailingRevocationStore struct {
	Err error
}

func (f *FailingRevocationStore) error() error {
	if f.Err != nil {
		return f.Err
	}
	return errors.New("revocation store unavailable")
}

func (f *FailingRevocationStore) Record(context.Context, string, time.Time) error {
	return f.error()
}

func (f *FailingRevocationStore) IsRevoked(context.Context, string) (bool, error) {
	return false, f.error()
}

// StubTokenService lets each method be scripted per test via func fields.
// Unset fields fail loudly so tests never silently pass through a stub.
type StubTokenService struct {
	IssueFunc           func(principalID string, role domainauth.Role) (string, error)
	VerifyFunc          func(token string, role domainauth.Role) (domainauth.Claims, error)
	VerifyAnyFunc       func(token string) (domainauth.Claims, error)
	DecodeUncheckedFunc func(token string) (domainauth.Claims, bool)
}

func (s *StubTokenService) Issue(principalID string, role domainauth.Role) (string, error) {
	if s.IssueFunc == nil {
		return "", errors.New("StubTokenService.Issue not scripted")
	}
	return s.IssueFunc(principalID, role)
}

func (s *StubTokenService) Verify(token string, role domainauth.Role) (domainauth.Claims, error) {
	if s.VerifyFunc == nil {
		return domainauth.Claims{}, errors.New("StubTokenService.Verify not scripted")
	}
	return s.VerifyFunc(token, role)
}

func (s *StubTokenService) VerifyAny(token string) (domainauth.Claims, error) {
	if s.VerifyAnyFunc == nil {
		return domainauth.Claims{}, errors.New("StubTokenService.VerifyAny not scripted")
	}
	return s.VerifyAnyFunc(token)
}

func (s *StubTokenService) DecodeUnchecked(token string) (domainauth.Claims, bool) {
	if s.DecodeUncheckedFunc == nil {
		return domainauth.Claims{}, false
	}
	return s.DecodeUncheckedFunc(token)
}
