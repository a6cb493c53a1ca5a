package setup

import (
	"errors"
	"log/slog"
	"notes-manager/config"
	"time"

	"github.com/gofiber/fiber/v2"
)

// maxBodySize bounds request bodies; offline sync batches are the largest payloads.
const maxBodySize = 4 * 1024 * 1024

// NewFiberApp creates and configures a new Fiber application
func NewFiberApp(cfg *config.Config, logger *slog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "notes-manager",
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		BodyLimit:             maxBodySize,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          JSONErrorHandler(logger),
		ReadBufferSize:        8192,
	})
}

// JSONErrorHandler reports errors that escape handlers as {"error": ..., "request_id": ...}.
// Client errors are logged at warn, everything else at error.
func JSONErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		level := slog.LevelError
		if code < fiber.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.UserContext(), level, "request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
