package core

import (
	"context"

	"github.com/sb-patel/notification-system-backend/internal/data"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// PrincipalRepository defines the interface for account data operations.
// Users and admins share one store; email uniqueness is scoped per role.
type PrincipalRepository interface {
	Create(ctx context.Context, params data.CreatePrincipalParams) (*model.Principal, error)
	GetByEmail(ctx context.Context, email string, role domainauth.Role) (*model.Principal, error)
	GetByID(ctx context.Context, id string) (*model.Principal, error)
}

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	ListForUser(ctx context.Context, opts model.NotificationListOptions) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*model.Notification, error)
}
