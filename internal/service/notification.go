package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sb-patel/notification-system-backend/internal/core"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/ports"
)

// NotificationServiceOptions groups dependencies for NotificationService.
type NotificationServiceOptions struct {
	Notifications core.NotificationRepository

	// Dispatcher is optional; without one, notifications are persisted but
	// never pushed to live connections.
	Dispatcher ports.NotificationDispatcher
}

// NotificationService persists notifications and hands them to the realtime
// dispatcher. Persistence is the source of truth; the push is best-effort.
type NotificationService struct {
	notifications core.NotificationRepository
	dispatcher    ports.NotificationDispatcher
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(opts NotificationServiceOptions) *NotificationService {
	return &NotificationService{
		notifications: opts.Notifications,
		dispatcher:    opts.Dispatcher,
	}
}

// Create validates and persists a notification, then dispatches it to live
// connections. A dispatch miss does not fail the call: the record is already
// stored and will surface in the recipient's listing.
func (s *NotificationService) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if req == nil {
		return nil, errors.New("create notification request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.notifications.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(n)
	}
	return n, nil
}

// ListForUser returns the user's own individual notifications plus all
// broadcasts, newest first, optionally filtered by read state.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, status model.ReadStatus) ([]*model.Notification, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status filter %q", status)
	}

	list, err := s.notifications.ListForUser(ctx, model.NotificationListOptions{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

// MarkRead flips the read flag for a notification the user can see. The
// operation is idempotent; repeating it returns the record unchanged.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	if id == "" {
		return nil, errors.New("notification id is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	return s.notifications.MarkRead(ctx, id, userID)
}
