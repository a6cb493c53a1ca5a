package session

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"notes-manager/models"
	"time"

	"github.com/google/uuid"
)

// Store keeps login sessions in the sessions table so they survive restarts.
// Times are stored in UTC at second precision so the driver's text encoding
// compares in chronological order.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

func NewStore(db *sql.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (s *Store) Create(ctx context.Context, userID int64, username string) (*models.Session, error) {
	ts := now()
	session := &models.Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		Username:   username,
		ExpiresAt:  ts.Add(s.ttl),
		CreatedAt:  ts,
		LastUsedAt: ts,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, expires_at, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?)
	`, session.ID, session.UserID, session.ExpiresAt, session.CreatedAt, session.LastUsedAt)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Get returns the session, or nil when it does not exist, has expired or
// belongs to a user that no longer exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.user_id, u.username, s.expires_at, s.created_at, s.last_used_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?
	`, sessionID).Scan(
		&session.ID, &session.UserID, &session.Username,
		&session.ExpiresAt, &session.CreatedAt, &session.LastUsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if now().After(session.ExpiresAt) {
		return nil, nil
	}

	return &session, nil
}

// Touch records that the session was just used
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET last_used_at = ? WHERE id = ?
	`, now(), sessionID)
	return err
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

// CleanupExpired removes expired sessions and returns how many were removed
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupRoutine purges expired sessions every interval until ctx is done
func (s *Store) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.CleanupExpired(ctx)
				if err != nil {
					slog.Error("Failed to clean up expired sessions", "error", err)
					continue
				}
				if removed > 0 {
					slog.Debug("Expired sessions removed", "count", removed)
				}
			}
		}
	}()
}
