package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          *service.AuthService
	Notifications *service.NotificationService

	// WS is the WebSocket admission handler, mounted at GET /ws. Optional;
	// without it the API runs with persistence-only delivery.
	WS http.Handler

	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: logger}
	notifHandlers := &NotificationHandlers{Svc: services.Notifications, Logger: logger}

	requireUser := RequireAuth(services.Auth, domainauth.RoleUser)
	requireAdmin := RequireAuth(services.Auth, domainauth.RoleAdmin)

	// account endpoints; the role is fixed by the route
	mux.Handle("POST /api/users/signup", authHandlers.SignUp(domainauth.RoleUser))
	mux.Handle("POST /api/users/signin", authHandlers.SignIn(domainauth.RoleUser))
	mux.Handle("POST /api/admins/signup", authHandlers.SignUp(domainauth.RoleAdmin))
	mux.Handle("POST /api/admins/signin", authHandlers.SignIn(domainauth.RoleAdmin))

	// logout is deliberately not behind RequireAuth: revoking an
	// already-revoked token must stay idempotent, and the expiry is read
	// without signature verification anyway
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandlers.Logout))

	// notification endpoints
	mux.Handle("GET /api/users/notifications", requireUser(http.HandlerFunc(notifHandlers.ListMine)))
	mux.Handle("PUT /api/users/notifications/{id}/read", requireUser(http.HandlerFunc(notifHandlers.MarkRead)))
	mux.Handle("POST /api/admins/notifications", requireAdmin(http.HandlerFunc(notifHandlers.Create)))

	// live delivery
	if services.WS != nil {
		mux.Handle("GET /ws", services.WS)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
