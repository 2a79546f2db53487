// Package devseed creates a known admin and user account plus a few sample
// notifications for local development. It only runs in dev mode and is
// idempotent: existing accounts are left alone.
package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sb-patel/notification-system-backend/internal/data"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/service"
)

const (
	adminEmail = "admin@notify.local"
	userEmail  = "user@notify.local"

	// Dev-only credential, never used outside local environments.
	devPassword = "notify-dev"
)

// Deps holds the services the seeder drives.
type Deps struct {
	Auth          *service.AuthService
	Notifications *service.NotificationService
	Logger        *slog.Logger
}

// Run seeds the dev accounts and, on first run, a few notifications for the
// dev user. Safe to call on every startup.
func Run(ctx context.Context, deps Deps) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "devseed")

	if _, err := seedAccount(ctx, deps.Auth, domainauth.RoleAdmin, adminEmail, "Dev", "Admin"); err != nil {
		return err
	}

	user, created, err := seedUserAccount(ctx, deps.Auth)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "dev accounts ready",
		"admin", adminEmail, "user", userEmail, "password", devPassword)

	// Only seed notifications alongside a fresh user account, otherwise
	// every restart would pile on duplicates.
	if !created {
		return nil
	}

	samples := []model.CreateNotificationRequest{
		{Message: "Welcome to the notification service.", Type: model.NotificationTypeIndividual, TargetUserID: user.ID},
		{Message: "Your account was provisioned by the dev seeder.", Type: model.NotificationTypeIndividual, TargetUserID: user.ID},
		{Message: "Scheduled maintenance window this weekend.", Type: model.NotificationTypeBroadcast},
	}
	for i := range samples {
		if _, err := deps.Notifications.Create(ctx, &samples[i]); err != nil {
			return fmt.Errorf("seed notification: %w", err)
		}
	}
	logger.InfoContext(ctx, "seeded sample notifications", "count", len(samples))
	return nil
}

func seedUserAccount(ctx context.Context, auth *service.AuthService) (*model.Principal, bool, error) {
	p, err := seedAccount(ctx, auth, domainauth.RoleUser, userEmail, "Dev", "User")
	if err != nil {
		return nil, false, err
	}
	if p != nil {
		return p, true, nil
	}

	// Account already existed; sign in to recover its ID.
	res, err := auth.SignIn(ctx, domainauth.RoleUser, &model.SignInRequest{
		Email:    userEmail,
		Password: devPassword,
	})
	if err != nil {
		return nil, false, fmt.Errorf("sign in existing dev user: %w", err)
	}
	return res.Principal, false, nil
}

// seedAccount creates the account if missing. Returns nil without error when
// it already exists.
func seedAccount(ctx context.Context, auth *service.AuthService, role domainauth.Role, email, first, last string) (*model.Principal, error) {
	p, err := auth.SignUp(ctx, role, &model.SignUpRequest{
		Email:     email,
		Password:  devPassword,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		if errors.Is(err, data.ErrEmailExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("seed %s account: %w", role, err)
	}
	return p, nil
}
