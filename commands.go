package main

import (
	"context"
	"log/slog"
	"notes-manager/config"
	"notes-manager/config/setup"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var dbPath string

// rootCmd runs the server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "notes-manager",
	Short: "Personal notes manager with offline sync",
	Long: `Notes manager serves a JSON API for per-user notes and categories.

Commands:
  serve    - Run the HTTP server (default)
  init-db  - Create the database schema and exit`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database schema",
	Long: `Create the users, categories, notes and sessions tables if they do not exist.
Running it against an initialized database changes nothing.`,
	RunE: runInitDB,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	rootCmd.AddCommand(serveCmd, initDBCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}
	if dbPath != "" {
		config.AppConfig.DBPath = dbPath
	}

	slog.SetDefault(setupLogger(config.AppConfig))
	return nil
}

func runInitDB(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	db, err := setup.InitDatabase(cmd.Context(), config.AppConfig.DBPath, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return err
	}
	defer db.Close()

	logger.Info("Initialized the database.")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setup.InitDatabase(ctx, cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return err
	}
	defer setup.Shutdown(db, logger)

	application, err := setup.InitApp(ctx, db, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}

	app := setup.NewFiberApp(cfg, logger)
	setup.ApplyMiddleware(app, cfg, logger)
	setup.RegisterRoutes(app, application)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development",
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
