package middleware

import (
	"context"
	"errors"
	"log/slog"
	"notes-manager/models"
	"notes-manager/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const SessionCookie = "session_id"

// IdentityResolver turns a session id or a bearer token into an actor
type IdentityResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*models.Actor, error)
	ResolveToken(ctx context.Context, token string) (*models.Actor, error)
}

// AuthRequired creates an authentication middleware that requires a valid session or Bearer token
func AuthRequired(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		sessionID := c.Cookies(SessionCookie)
		if sessionID != "" {
			actor, err := resolver.ResolveSession(ctx, sessionID)
			if err == nil {
				setActor(c, actor)
				return c.Next()
			}
			if !errors.Is(err, services.ErrSessionNotFound) {
				slog.Error("Failed to resolve session", "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to resolve session",
				})
			}
			c.ClearCookie(SessionCookie)
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		actor, err := resolver.ResolveToken(ctx, parts[1])
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				slog.Error("Failed to resolve token", "error", err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		setActor(c, actor)
		return c.Next()
	}
}

func setActor(c *fiber.Ctx, actor *models.Actor) {
	c.Locals("actor", actor)
	c.Locals("userID", actor.UserID)
}

// GetActor returns the authenticated actor, or nil outside AuthRequired
func GetActor(c *fiber.Ctx) *models.Actor {
	actor, ok := c.Locals("actor").(*models.Actor)
	if !ok {
		return nil
	}
	return actor
}

func GetUserID(c *fiber.Ctx) int64 {
	userID, ok := c.Locals("userID").(int64)
	if !ok {
		return 0
	}
	return userID
}
