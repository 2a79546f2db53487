package realtime

import (
	"encoding/json"
	"log/slog"

	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/ports"
)

// Ensure Dispatcher satisfies the service-facing port.
var _ ports.NotificationDispatcher = (*Dispatcher)(nil)

// DispatcherOptions groups dependencies for Dispatcher.
type DispatcherOptions struct {
	Registry *Registry
	Logger   *slog.Logger
}

// Dispatcher routes persisted notifications to live connections. Delivery is
// at-most-once: an offline recipient or a full client buffer means the frame
// is dropped, and the record still reaches the user through the listing API.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{registry: opts.Registry, logger: logger}
}

// Dispatch pushes the notification to its audience. Individual notifications
// go to the target's live connection if present; broadcasts go to every
// connection. A failed push to one client never aborts the rest.
func (d *Dispatcher) Dispatch(n *model.Notification) {
	if n == nil {
		return
	}
	frame, err := json.Marshal(n)
	if err != nil {
		d.logger.Error("marshal notification for dispatch", "error", err, "notification_id", n.ID)
		return
	}

	switch n.Type {
	case model.NotificationTypeIndividual:
		if n.TargetUserID == nil {
			return
		}
		c, ok := d.registry.Lookup(*n.TargetUserID)
		if !ok {
			return
		}
		if !c.TrySend(frame) {
			d.logger.Debug("dropped frame for slow or closed client",
				"principal_id", *n.TargetUserID, "notification_id", n.ID)
		}
	case model.NotificationTypeBroadcast:
		d.registry.ForEach(func(principalID string, c *Client) {
			if !c.TrySend(frame) {
				d.logger.Debug("dropped broadcast frame for slow or closed client",
					"principal_id", principalID, "notification_id", n.ID)
			}
		})
	}
}
