package setup

import (
	"log/slog"
	"notes-manager/config"
	"notes-manager/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ApplyMiddleware applies all global middleware to the Fiber app
func ApplyMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	app.Use(
		recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}),
		middleware.StructuredLogger(logger),
		middleware.Security(cfg.IsProduction()),
		cors.New(corsConfig(cfg.CORSOrigins)),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health"
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)
}

// corsConfig allows credentials (the session cookie) only for an explicit
// origin list; fiber refuses credentials with a wildcard origin.
func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization," + middleware.RequestIDHeader,
		ExposeHeaders:    middleware.RequestIDHeader + ",Content-Disposition",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}
}
