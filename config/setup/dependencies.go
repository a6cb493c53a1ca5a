package setup

import (
	"context"
	"log/slog"
	"notes-manager/app"
	"notes-manager/auth"
	"notes-manager/config"
	"notes-manager/database"
	"notes-manager/session"
	"time"
)

const sessionCleanupInterval = time.Hour

// InitDatabase opens the SQLite database and runs migrations
func InitDatabase(ctx context.Context, dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp initializes the application with all dependencies. The session
// cleanup routine runs until ctx is cancelled.
func InitApp(ctx context.Context, db *database.DB, cfg *config.Config, logger *slog.Logger) (*app.App, error) {
	repo := database.NewRepository(db)

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	sessionStore := session.NewStore(db.DB, cfg.SessionTTL)
	sessionStore.StartCleanupRoutine(ctx, sessionCleanupInterval)
	logger.Info("session cleanup routine started", "interval", sessionCleanupInterval)

	application := app.New(repo, sessionStore, auth.NewPasswordHasher(), tokens, logger)
	application.SecureCookies = cfg.IsProduction()
	logger.Info("application initialized with dependency injection")

	return application, nil
}

// Shutdown performs graceful shutdown of all services
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
