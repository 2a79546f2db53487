package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	email := fmt.Sprintf("recipient-%d@example.com", time.Now().UnixNano())
	return createTestPrincipal(t, db, email, domainauth.RoleUser)
}

func TestNotificationRepo_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	repo := NewNotificationRepo(db)
	userID := createTestUser(t, db)

	ind, err := repo.Create(ctx, &model.CreateNotificationRequest{
		Message:      "your report is ready",
		Type:         model.NotificationTypeIndividual,
		TargetUserID: userID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, ind.ID)
	assert.Equal(t, model.NotificationTypeIndividual, ind.Type)
	require.NotNil(t, ind.TargetUserID)
	assert.Equal(t, userID, *ind.TargetUserID)
	assert.False(t, ind.Read)
	assert.Equal(t, ind.CreatedAt, ind.UpdatedAt)

	bc, err := repo.Create(ctx, &model.CreateNotificationRequest{
		Message: "maintenance window tonight",
		Type:    model.NotificationTypeBroadcast,
	})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationTypeBroadcast, bc.Type)
	assert.Nil(t, bc.TargetUserID)
}

func TestNotificationRepo_Create_ValidationErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	repo := NewNotificationRepo(db)

	_, err := repo.Create(ctx, nil)
	require.Error(t, err)

	_, err = repo.Create(ctx, &model.CreateNotificationRequest{
		Type: model.NotificationTypeBroadcast,
	})
	require.Error(t, err) // empty message

	_, err = repo.Create(ctx, &model.CreateNotificationRequest{
		Message: "hello", Type: model.NotificationTypeIndividual,
	})
	require.Error(t, err) // individual without target

	_, err = repo.Create(ctx, &model.CreateNotificationRequest{
		Message: "hello", Type: "urgent",
	})
	require.Error(t, err) // unknown type
}

func TestNotificationRepo_ListForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	userA := createTestUser(t, db)
	userB := createTestUser(t, db)

	// distinct created_at per row so ordering is deterministic
	tp := NewFixedTimeProvider(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := NewNotificationRepoWithTimeProvider(db, tp)

	mkInd := func(target, msg string) *model.Notification {
		n, err := repo.Create(ctx, &model.CreateNotificationRequest{
			Message: msg, Type: model.NotificationTypeIndividual, TargetUserID: target,
		})
		require.NoError(t, err)
		tp.AddTime(time.Second)
		return n
	}

	forA := mkInd(userA, "for A")
	mkInd(userB, "for B")
	bc, err := repo.Create(ctx, &model.CreateNotificationRequest{
		Message: "for everyone", Type: model.NotificationTypeBroadcast,
	})
	require.NoError(t, err)
	tp.AddTime(time.Second)

	// A sees own individual plus the broadcast, newest first
	got, err := repo.ListForUser(ctx, model.NotificationListOptions{UserID: userA})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, bc.ID, got[0].ID)
	assert.Equal(t, forA.ID, got[1].ID)

	// read-state filter
	_, err = repo.MarkRead(ctx, forA.ID, userA)
	require.NoError(t, err)

	unread, err := repo.ListForUser(ctx, model.NotificationListOptions{
		UserID: userA, Status: model.ReadStatusUnread,
	})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, bc.ID, unread[0].ID)

	read, err := repo.ListForUser(ctx, model.NotificationListOptions{
		UserID: userA, Status: model.ReadStatusRead,
	})
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, forA.ID, read[0].ID)

	// no match is an empty list, not an error
	stranger := createTestUser(t, db)
	_, err = repo.MarkRead(ctx, bc.ID, stranger)
	require.NoError(t, err)
}

func TestNotificationRepo_ListForUser_ValidationErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewNotificationRepo(db)
	ctx := context.Background()

	_, err := repo.ListForUser(ctx, model.NotificationListOptions{})
	require.Error(t, err)

	_, err = repo.ListForUser(ctx, model.NotificationListOptions{UserID: "u", Status: "archived"})
	require.Error(t, err)
}

func TestNotificationRepo_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	repo := NewNotificationRepo(db)
	userA := createTestUser(t, db)
	userB := createTestUser(t, db)

	n, err := repo.Create(ctx, &model.CreateNotificationRequest{
		Message: "hi", Type: model.NotificationTypeIndividual, TargetUserID: userA,
	})
	require.NoError(t, err)

	marked, err := repo.MarkRead(ctx, n.ID, userA)
	require.NoError(t, err)
	assert.True(t, marked.Read)
	assert.True(t, marked.UpdatedAt.After(marked.CreatedAt) || marked.UpdatedAt.Equal(marked.CreatedAt))

	// idempotent: marking again succeeds and still reports read
	again, err := repo.MarkRead(ctx, n.ID, userA)
	require.NoError(t, err)
	assert.True(t, again.Read)

	// another user's individual record is invisible
	_, err = repo.MarkRead(ctx, n.ID, userB)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	// unknown id
	_, err = repo.MarkRead(ctx, "00000000-0000-0000-0000-000000000000", userA)
	require.ErrorIs(t, err, ErrNotificationNotFound)
}
