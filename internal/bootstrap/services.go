package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/sb-patel/notification-system-backend/config"
	jwtadapter "github.com/sb-patel/notification-system-backend/internal/adapters/jwt"
	redisadapter "github.com/sb-patel/notification-system-backend/internal/adapters/redis"
	"github.com/sb-patel/notification-system-backend/internal/data"
	"github.com/sb-patel/notification-system-backend/internal/data/cryptoutil"
	"github.com/sb-patel/notification-system-backend/internal/realtime"
	"github.com/sb-patel/notification-system-backend/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Notifications *service.NotificationService
	Registry      *realtime.Registry
	Dispatcher    *realtime.Dispatcher
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, adapters, and services together.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service dependencies are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens, err := jwtadapter.NewTokenService(jwtadapter.TokenServiceOptions{
		UserSecret:  []byte(deps.Config.Auth.UserTokenSecret),
		AdminSecret: []byte(deps.Config.Auth.AdminTokenSecret),
		TTL:         deps.Config.Auth.TokenTTL,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token service: %w", err)
	}

	revocation := redisadapter.NewRevocationStoreWithPrefix(
		deps.RedisClient, deps.Config.Auth.RevocationKeyPrefix)

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Principals: data.NewPrincipalRepo(deps.DB),
		Tokens:     tokens,
		Revocation: revocation,
		Hasher:     cryptoutil.NewBcryptHasher(),
	})

	registry := realtime.NewRegistry(logger)
	dispatcher := realtime.NewDispatcher(realtime.DispatcherOptions{
		Registry: registry,
		Logger:   logger,
	})

	notifSvc := service.NewNotificationService(service.NotificationServiceOptions{
		Notifications: data.NewNotificationRepo(deps.DB),
		Dispatcher:    dispatcher,
	})

	return ServiceContainer{
		Auth:          authSvc,
		Notifications: notifSvc,
		Registry:      registry,
		Dispatcher:    dispatcher,
	}, nil
}
