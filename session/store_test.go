package session

import (
	"context"
	"notes-manager/database"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*database.DB, int64) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "notes-session-test-*")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(tmpDir)
	})

	user, err := database.NewRepository(db).CreateUser(context.Background(), "alice", "hash")
	require.NoError(t, err)

	return db, user.ID
}

func TestSessionLifecycle(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewStore(db.DB, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, userID, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.ExpiresAt.After(created.CreatedAt))

	found, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, "alice", found.Username)
	assert.True(t, created.ExpiresAt.Equal(found.ExpiresAt))

	require.NoError(t, store.Touch(ctx, created.ID))

	require.NoError(t, store.Delete(ctx, created.ID))
	found, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetUnknownSession(t *testing.T) {
	db, _ := setupTestDB(t)
	store := NewStore(db.DB, time.Hour)

	found, err := store.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestExpiredSessions(t *testing.T) {
	db, userID := setupTestDB(t)
	ctx := context.Background()

	expired := NewStore(db.DB, -time.Hour)
	live := NewStore(db.DB, time.Hour)

	old, err := expired.Create(ctx, userID, "alice")
	require.NoError(t, err)
	current, err := live.Create(ctx, userID, "alice")
	require.NoError(t, err)

	found, err := live.Get(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "expired session must not resolve")

	removed, err := live.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	found, err = live.Get(ctx, current.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestCleanupRoutineStopsWithContext(t *testing.T) {
	db, userID := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())

	expired := NewStore(db.DB, -time.Hour)
	_, err := expired.Create(context.Background(), userID, "alice")
	require.NoError(t, err)

	expired.StartCleanupRoutine(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
		return err == nil && count == 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
}
