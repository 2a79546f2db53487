package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sb-patel/notification-system-backend/internal/data/pgxutil"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
)

// NotificationRepo provides database operations for notifications.
type NotificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNotificationRepo creates a new NotificationRepo with real time provider.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNotificationRepoWithTimeProvider creates a new NotificationRepo with a custom time provider (useful for tests).
func NewNotificationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: tp}
}

// Create inserts a new notification. TargetUserID is persisted only for
// individual notifications; broadcast rows always carry NULL.
func (r *NotificationRepo) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if req == nil {
		return nil, errors.New("create notification request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var target *string
	if req.Type == model.NotificationTypeIndividual {
		t := req.TargetUserID
		target = &t
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Notification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO notifications (id, message, type, target_user_id, read, created_at, updated_at)
			VALUES ($1, $2, $3, $4, false, $5, $5)
			RETURNING id, message, type, target_user_id, read, created_at, updated_at
		`,
			uuid.NewString(),
			req.Message,
			req.Type.String(),
			target,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &out, nil
}

// ListForUser retrieves the user's own individual notifications plus all
// broadcasts, newest first, optionally filtered by read state.
func (r *NotificationRepo) ListForUser(ctx context.Context, opts model.NotificationListOptions) ([]*model.Notification, error) {
	if opts.UserID == "" {
		return nil, errors.New("user id is required")
	}
	if !opts.Status.Valid() {
		return nil, fmt.Errorf("invalid status filter %q", opts.Status)
	}

	query := `
		SELECT id, message, type, target_user_id, read, created_at, updated_at
		FROM notifications
		WHERE (target_user_id = $1 OR type = 'broadcast')
	`
	args := []any{opts.UserID}
	switch opts.Status {
	case model.ReadStatusRead:
		query += ` AND read = true`
	case model.ReadStatusUnread:
		query += ` AND read = false`
	case model.ReadStatusAny:
	}
	query += ` ORDER BY created_at DESC`

	var rowsOut []model.Notification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Notification])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	res := make([]*model.Notification, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead transitions a notification's read flag to true for the given
// recipient. The ownership filter matches the listing visibility rule: the
// user's own individual records plus broadcasts. Marking an already-read
// notification is a no-op that still returns the record, so the operation
// stays idempotent. A record outside the user's visibility yields
// ErrNotificationNotFound.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	if id == "" {
		return nil, errors.New("notification id is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	updatedAt := r.timeProvider.Now().UTC()
	var out model.Notification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE notifications
			SET read = true, updated_at = $3
			WHERE id = $1 AND (target_user_id = $2 OR type = 'broadcast')
			RETURNING id, message, type, target_user_id, read, created_at, updated_at
		`, id, userID, updatedAt)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return &out, nil
}
