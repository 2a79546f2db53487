package realtime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
)

// Authenticator is the slice of the auth service the handler needs for
// connection admission.
type Authenticator interface {
	Authenticate(ctx context.Context, token string, allowed ...domainauth.Role) (domainauth.Principal, error)
}

// HandlerOptions groups dependencies for Handler.
type HandlerOptions struct {
	Auth     Authenticator
	Registry *Registry
	Logger   *slog.Logger

	// CheckOrigin overrides the upgrader's origin policy; defaults to
	// same-origin (the gorilla default).
	CheckOrigin func(r *http.Request) bool
}

// Handler admits WebSocket connections at GET /ws. The token travels in the
// ?token= query parameter because browser WebSocket clients cannot set an
// Authorization header. Only user tokens are admitted: admins push
// notifications but hold no live channel.
type Handler struct {
	auth     Authenticator
	registry *Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a Handler.
func NewHandler(opts HandlerOptions) *Handler {
	return &Handler{
		auth:     opts.Auth,
		registry: opts.Registry,
		logger:   opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     opts.CheckOrigin,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	principal, err := h.auth.Authenticate(r.Context(), token, domainauth.RoleUser)
	if err != nil {
		// rejected before the upgrade; the connection is never registered
		h.logger.Debug("websocket admission rejected", "error", err)
		status := http.StatusUnauthorized
		if errors.Is(err, domainauth.ErrForbidden) {
			status = http.StatusForbidden
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its error response
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(principal.ID, conn)
	h.registry.Admit(principal.ID, client)
	h.logger.Info("websocket connected", "principal_id", principal.ID)

	go client.writePump()
	go func() {
		client.readPump()
		h.registry.Remove(principal.ID, client)
		h.logger.Info("websocket disconnected", "principal_id", principal.ID)
	}()
}
