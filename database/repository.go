package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notes-manager/utils"
	"time"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateNote means another note of the user already has the same
	// title, content and created_at (the sync identity).
	ErrDuplicateNote = errors.New("duplicate note")
)

// queryer is satisfied by both *sql.DB and *sql.Tx so that the same
// statements can run standalone or inside a unit of work.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on every other exit path.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func now() string {
	return utils.FormatTimestamp(utils.NowUTC())
}

func parseTime(value string) time.Time {
	t, err := utils.ParseTimestamp(value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
