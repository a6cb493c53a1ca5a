package app

import (
	"log/slog"
	"notes-manager/auth"
	"notes-manager/database"
	"notes-manager/services"
	"notes-manager/session"
	"notes-manager/sync"
	"notes-manager/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo            *database.Repository
	SessionStore    *session.Store
	AuthService     *services.AuthService
	CategoryService *services.CategoryService
	NoteService     *services.NoteService
	Validator       *validator.Validator
	Logger          *slog.Logger
	SecureCookies   bool
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, sessionStore *session.Store, hasher *auth.PasswordHasher, tokens *auth.TokenService, logger *slog.Logger) *App {
	reconciler := sync.NewReconciler(repo)

	return &App{
		Repo:            repo,
		SessionStore:    sessionStore,
		AuthService:     services.NewAuthService(repo, sessionStore, hasher, tokens),
		CategoryService: services.NewCategoryService(repo),
		NoteService:     services.NewNoteService(repo, repo, reconciler),
		Validator:       validator.New(),
		Logger:          logger,
	}
}
