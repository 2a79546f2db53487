// Package mocks provides hand-written in-memory repository doubles used by
// service and HTTP handler tests that do not need a real database.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sb-patel/notification-system-backend/internal/core"
	"github.com/sb-patel/notification-system-backend/internal/data"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
)

// Ensure compile-time conformance to core interfaces.
var (
	_ core.PrincipalRepository    = (*MemoryPrincipalRepo)(nil)
	_ core.NotificationRepository = (*MemoryNotificationRepo)(nil)
)

// MemoryPrincipalRepo is an in-memory PrincipalRepository.
type MemoryPrincipalRepo struct {
	mu         sync.Mutex
	principals map[string]model.Principal

	// Err, when set, is returned by every method to simulate outages.
	Err error
}

// NewMemoryPrincipalRepo creates an empty in-memory principal repository.
func NewMemoryPrincipalRepo() *MemoryPrincipalRepo {
	return &MemoryPrincipalRepo{principals: make(map[string]model.Principal)}
}

func (m *MemoryPrincipalRepo) Create(_ context.Context, params data.CreatePrincipalParams) (*model.Principal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(params.Email))
	for _, p := range m.principals {
		if p.Email == email && p.Role == params.Role {
			return nil, data.ErrEmailExists
		}
	}
	p := model.Principal{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         params.Role,
		CreatedAt:    time.Now().UTC(),
	}
	m.principals[p.ID] = p
	return &p, nil
}

func (m *MemoryPrincipalRepo) GetByEmail(_ context.Context, email string, role domainauth.Role) (*model.Principal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range m.principals {
		if p.Email == email && p.Role == role {
			out := p
			return &out, nil
		}
	}
	return nil, data.ErrPrincipalNotFound
}

func (m *MemoryPrincipalRepo) GetByID(_ context.Context, id string) (*model.Principal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.principals[id]
	if !ok {
		return nil, data.ErrPrincipalNotFound
	}
	out := p
	return &out, nil
}

// MemoryNotificationRepo is an in-memory NotificationRepository.
type MemoryNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]model.Notification
	clock         time.Time

	// Err, when set, is returned by every method to simulate outages.
	Err error
}

// NewMemoryNotificationRepo creates an empty in-memory notification repository.
func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{
		notifications: make(map[string]model.Notification),
		clock:         time.Now().UTC(),
	}
}

// tick returns strictly increasing timestamps so created_at ordering is
// deterministic within a test.
func (m *MemoryNotificationRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *MemoryNotificationRepo) Create(_ context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if req == nil {
		return nil, data.ErrNotificationNotFound
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var target *string
	if req.Type == model.NotificationTypeIndividual {
		t := req.TargetUserID
		target = &t
	}
	now := m.tick()
	n := model.Notification{
		ID:           uuid.NewString(),
		Message:      req.Message,
		Type:         req.Type,
		TargetUserID: target,
		Read:         false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.notifications[n.ID] = n
	out := n
	return &out, nil
}

func (m *MemoryNotificationRepo) ListForUser(_ context.Context, opts model.NotificationListOptions) ([]*model.Notification, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []*model.Notification
	for _, n := range m.notifications {
		if !visibleTo(n, opts.UserID) {
			continue
		}
		switch opts.Status {
		case model.ReadStatusRead:
			if !n.Read {
				continue
			}
		case model.ReadStatusUnread:
			if n.Read {
				continue
			}
		}
		out := n
		res = append(res, &out)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (m *MemoryNotificationRepo) MarkRead(_ context.Context, id, userID string) (*model.Notification, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[id]
	if !ok || !visibleTo(n, userID) {
		return nil, data.ErrNotificationNotFound
	}
	n.Read = true
	n.UpdatedAt = m.tick()
	m.notifications[id] = n
	out := n
	return &out, nil
}

func visibleTo(n model.Notification, userID string) bool {
	if n.Type == model.NotificationTypeBroadcast {
		return true
	}
	return n.TargetUserID != nil && *n.TargetUserID == userID
}
