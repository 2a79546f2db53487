package ports

import "github.com/sb-patel/notification-system-backend/internal/domain/model"

// NotificationDispatcher pushes a persisted notification to whichever live
// connections should see it. Delivery is best-effort and at-most-once: no
// error is returned and a miss (recipient offline, slow client) is silent.
type NotificationDispatcher interface {
	Dispatch(n *model.Notification)
}
