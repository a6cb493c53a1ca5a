package handlers

import (
	"errors"
	"log/slog"
	"notes-manager/auth"
	"notes-manager/services"
	"notes-manager/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": validationErrs,
		})
	}
	return badRequest(c, err.Error())
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// serviceError maps service sentinel errors to HTTP responses. Anything it
// does not recognize is logged and reported as a 500 with message.
func serviceError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrAuthRequired),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrSessionNotFound):
		return unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNoteNotFound):
		return notFound(c, "Note not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		return notFound(c, "Category not found")
	case errors.Is(err, services.ErrUsernameTaken):
		return conflict(c, "Username already exists. Choose another.")
	case errors.Is(err, services.ErrDuplicateNote):
		return conflict(c, "Another note already has this title and content")
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrEmptyNote),
		errors.Is(err, services.ErrCategoryNameRequired),
		errors.Is(err, services.ErrInvalidReminder),
		errors.Is(err, auth.ErrPasswordTooLong):
		return badRequest(c, err.Error())
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

// paramID reads a positive integer route parameter
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
