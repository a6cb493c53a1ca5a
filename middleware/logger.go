package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// StructuredLogger tags each request with an id and logs one line when it completes.
// A well-formed X-Request-ID from the client is reused so offline sync retries can be traced.
func StructuredLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := requestIDFrom(c)

		c.Locals("requestID", requestID)
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.IP()),
		}
		if userID := GetUserID(c); userID != 0 {
			attrs = append(attrs, slog.Int64("user_id", userID))
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		level, msg := requestLevel(c.Path(), status, err)
		logger.LogAttrs(c.UserContext(), level, msg, attrs...)

		return err
	}
}

func requestIDFrom(c *fiber.Ctx) string {
	if id, err := uuid.Parse(c.Get(RequestIDHeader)); err == nil {
		return id.String()
	}
	return uuid.New().String()
}

func requestLevel(path string, status int, err error) (slog.Level, string) {
	switch {
	case err != nil:
		return slog.LevelError, "request error"
	case status >= 500:
		return slog.LevelError, "server error"
	case status >= 400:
		return slog.LevelWarn, "client error"
	case path == "/health":
		return slog.LevelDebug, "health check"
	default:
		return slog.LevelInfo, "request completed"
	}
}
