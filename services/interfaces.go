package services

import (
	"context"
	"notes-manager/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	CreateCategory(ctx context.Context, userID int64, name string) (*models.Category, error)
	GetCategories(ctx context.Context, userID int64) ([]models.Category, error)
	CategoryExists(ctx context.Context, id, userID int64) (bool, error)
	RenameCategory(ctx context.Context, id, userID int64, name string) (bool, error)
	DeleteCategory(ctx context.Context, id, userID int64) (bool, error)
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	CreateNote(ctx context.Context, note *models.Note) error
	GetNotesByUser(ctx context.Context, userID int64) ([]models.Note, error)
	GetNote(ctx context.Context, id, userID int64) (*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) (bool, error)
	DeleteNote(ctx context.Context, id, userID int64) (bool, error)
	SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error)
	TogglePin(ctx context.Context, id, userID int64) (*models.Note, error)
}

// SyncReconciler merges notes cached by an offline client
type SyncReconciler interface {
	Merge(ctx context.Context, userID int64, batch any) error
}

// SessionStore defines the interface for session management
type SessionStore interface {
	Create(ctx context.Context, userID int64, username string) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Touch(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

// PasswordHasher hashes and checks user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// TokenIssuer issues and validates bearer tokens
type TokenIssuer interface {
	Generate(userID int64, username string) (string, error)
	Validate(token string) (int64, string, error)
}
