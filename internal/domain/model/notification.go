//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Notification represents a persisted notification record.
// TargetUserID is set only for individual notifications; broadcast
// notifications are visible to every user.
type Notification struct {
	ID           string           `json:"id"                       db:"id"`
	Message      string           `json:"message"                  db:"message"`
	Type         NotificationType `json:"type"                     db:"type"`
	TargetUserID *string          `json:"target_user_id,omitempty" db:"target_user_id"`
	Read         bool             `json:"read"                     db:"read"`
	CreatedAt    time.Time        `json:"created_at"               db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"               db:"updated_at"`
}

// NotificationType distinguishes individually-targeted from broadcast records.
type NotificationType string

const (
	NotificationTypeIndividual NotificationType = "individual"
	NotificationTypeBroadcast  NotificationType = "broadcast"
)

// Valid returns true if the notification type is one of the supported values.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeIndividual, NotificationTypeBroadcast:
		return true
	default:
		return false
	}
}

// String returns the string representation of the notification type.
func (t NotificationType) String() string {
	return string(t)
}

// ReadStatus filters notification listings by read state.
type ReadStatus string

const (
	ReadStatusAny    ReadStatus = ""
	ReadStatusRead   ReadStatus = "read"
	ReadStatusUnread ReadStatus = "unread"
)

// Valid returns true when the status is empty or one of the known filters.
func (s ReadStatus) Valid() bool {
	switch s {
	case ReadStatusAny, ReadStatusRead, ReadStatusUnread:
		return true
	default:
		return false
	}
}

// CreateNotificationRequest represents a request to create a notification.
type CreateNotificationRequest struct {
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
	TargetUserID string           `json:"target_user_id,omitempty"`
}

// Normalize trims surrounding whitespace from the request fields.
func (r *CreateNotificationRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
	r.Type = NotificationType(strings.TrimSpace(string(r.Type)))
	r.TargetUserID = strings.TrimSpace(r.TargetUserID)
}

// Validate validates the CreateNotificationRequest fields.
func (r *CreateNotificationRequest) Validate() error {
	if r.Message == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(r.Message) > 2048 {
		return errors.New("message cannot exceed 2048 characters")
	}
	if !r.Type.Valid() {
		return errors.New("invalid type")
	}
	if r.Type == NotificationTypeIndividual && r.TargetUserID == "" {
		return errors.New("target_user_id is required for individual notifications")
	}
	return nil
}

// NotificationListOptions represents options for listing a user's notifications.
type NotificationListOptions struct {
	UserID string     // recipient; listing covers own individual records plus broadcasts
	Status ReadStatus // optional read-state filter
}
