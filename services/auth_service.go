package services

import (
	"context"
	"errors"
	"log/slog"
	"notes-manager/auth"
	"notes-manager/database"
	"notes-manager/models"
	"strings"
)

// AuthService handles registration, login and identity resolution
type AuthService struct {
	users        UserRepository
	sessionStore SessionStore
	hasher       PasswordHasher
	tokens       TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, sessionStore SessionStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:        users,
		sessionStore: sessionStore,
		hasher:       hasher,
		tokens:       tokens,
	}
}

// LoginResponse contains the new session and a bearer token for API clients
type LoginResponse struct {
	Session *models.Session
	Token   string
	User    *models.User
}

// Register creates a new user account
func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	existing, err := as.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := as.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := as.users.CreateUser(ctx, username, hash)
	if errors.Is(err, database.ErrDuplicateUsername) {
		// lost a race with a concurrent registration
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies the credentials and opens a session.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (as *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := as.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := as.hasher.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	sess, err := as.sessionStore.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	token, err := as.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Session: sess, Token: token, User: user}, nil
}

// Logout handles user logout
func (as *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return as.sessionStore.Delete(ctx, sessionID)
}

// ResolveSession returns the actor owning a live session
func (as *AuthService) ResolveSession(ctx context.Context, sessionID string) (*models.Actor, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	sess, err := as.sessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	if err := as.sessionStore.Touch(ctx, sessionID); err != nil {
		slog.Warn("Failed to update session last use", "error", err)
	}

	return &models.Actor{UserID: sess.UserID, Username: sess.Username}, nil
}

// ResolveToken returns the actor a bearer token was issued to. The user must
// still exist.
func (as *AuthService) ResolveToken(ctx context.Context, token string) (*models.Actor, error) {
	userID, _, err := as.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := as.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return &models.Actor{UserID: user.ID, Username: user.Username}, nil
}
