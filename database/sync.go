package database

import (
	"context"
	"database/sql"
	"notes-manager/utils"
	"time"
)

// ==================== SYNC OPERATIONS ====================

// InsertSyncedNote inserts a note that originated in an offline client.
// A note of the same user with identical title, content and created_at is
// treated as already synced: nothing is written and false is returned.
// Synced notes never carry a category, pin or reminder.
//
// Deduplication relies on the idx_notes_sync_identity unique index, so two
// concurrent syncs of the same entry still produce a single row.
func (r *Repository) InsertSyncedNote(ctx context.Context, tx *sql.Tx, userID int64, title, content string, createdAt time.Time) (bool, error) {
	var q queryer = r.db
	if tx != nil {
		q = tx
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO notes (user_id, title, content, category_id, pinned, reminder, created_at, updated_at)
		VALUES (?, ?, ?, NULL, 0, NULL, ?, ?)
		ON CONFLICT(user_id, title, content, created_at) DO NOTHING
	`, userID, title, content, utils.FormatTimestamp(createdAt), now())
	if err != nil {
		return false, err
	}

	return affected(res)
}
