package handlers

import (
	"notes-manager/app"
	"notes-manager/middleware"
	"notes-manager/models"

	"github.com/gofiber/fiber/v2"
)

// Register creates a new account. The client logs in afterwards.
func Register(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		user, err := a.AuthService.Register(c.UserContext(), req)
		if err != nil {
			return serviceError(c, err, "Failed to register user")
		}

		return created(c, fiber.Map{"success": true, "user": user})
	}
}

// Login handles username/password authentication
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		loginResponse, err := a.AuthService.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return serviceError(c, err, "Failed to log in")
		}

		// Set session cookie
		c.Cookie(&fiber.Cookie{
			Name:     middleware.SessionCookie,
			Value:    loginResponse.Session.ID,
			Expires:  loginResponse.Session.ExpiresAt,
			HTTPOnly: true,
			Secure:   a.SecureCookies,
			SameSite: "Lax",
			Path:     "/",
		})

		a.Logger.Info("Login successful", "user_id", loginResponse.User.ID)

		return success(c, fiber.Map{
			"success": true,
			"token":   loginResponse.Token,
			"user":    loginResponse.User,
		})
	}
}

// Logout handles user logout
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.AuthService.Logout(c.UserContext(), c.Cookies(middleware.SessionCookie)); err != nil {
			return serverErrorWithDetails(c, "Failed to log out", err)
		}

		c.ClearCookie(middleware.SessionCookie)

		return success(c, fiber.Map{"success": true})
	}
}

// Me returns the authenticated user
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.GetActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"authenticated": false,
			})
		}

		return success(c, fiber.Map{
			"authenticated": true,
			"user": fiber.Map{
				"id":       actor.UserID,
				"username": actor.Username,
			},
		})
	}
}
