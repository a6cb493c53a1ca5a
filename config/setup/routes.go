package setup

import (
	"notes-manager/app"
	"notes-manager/handlers"
	"notes-manager/middleware"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	requireAuth := middleware.AuthRequired(application.AuthService)

	// Public routes
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	fiberApp.Get("/api/time", handlers.ServerTime)

	// Auth routes
	fiberApp.Post("/api/auth/register", handlers.Register(application))
	fiberApp.Post("/api/auth/login", handlers.Login(application))
	fiberApp.Post("/api/auth/logout", handlers.Logout(application))
	fiberApp.Get("/api/auth/me", requireAuth, handlers.Me(application))

	// Protected API routes
	api := fiberApp.Group("/api", requireAuth, limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID := middleware.GetUserID(c); userID != 0 {
				return "user:" + strconv.FormatInt(userID, 10)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded for your account",
			})
		},
	}))

	api.Get("/categories", handlers.GetCategories(application))
	api.Post("/categories", handlers.CreateCategory(application))
	api.Put("/categories/:id", handlers.RenameCategory(application))
	api.Delete("/categories/:id", handlers.DeleteCategory(application))

	api.Get("/notes", handlers.GetNotes(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Post("/notes/sync", handlers.SyncNotes(application))
	api.Get("/notes/:id", handlers.GetNote(application))
	api.Put("/notes/:id", handlers.UpdateNote(application))
	api.Delete("/notes/:id", handlers.DeleteNote(application))
	api.Post("/notes/:id/pin", handlers.TogglePin(application))
	api.Get("/notes/:id/download", handlers.DownloadNote(application))
}
