package database

import (
	"context"
	"database/sql"
	"errors"
	"notes-manager/models"

	"github.com/mattn/go-sqlite3"
)

// ==================== USER OPERATIONS ====================

// GetUserByID retrieves a user by primary key
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users WHERE id = ?
	`, id))
}

// GetUserByUsername retrieves a user by their unique username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users WHERE username = ?
	`, username))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateUser registers a new user with an already hashed password
func (r *Repository) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)
	`, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
