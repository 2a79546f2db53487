package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Principal repository sentinels.
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrEmailExists       = errors.New("email already exists")

	// Notification repository sentinels.
	ErrNotificationNotFound = errors.New("notification not found")
)
