package handlers

import (
	"notes-manager/app"
	"notes-manager/middleware"
	"notes-manager/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists the user's categories sorted by name
func GetCategories(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := a.CategoryService.List(c.UserContext(), middleware.GetActor(c))
		if err != nil {
			return serviceError(c, err, "Failed to fetch categories")
		}

		return success(c, fiber.Map{"categories": categories})
	}
}

// CreateCategory creates a new category for the user
func CreateCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		category, err := a.CategoryService.Create(c.UserContext(), middleware.GetActor(c), req.Name)
		if err != nil {
			return serviceError(c, err, "Failed to create category")
		}

		return created(c, fiber.Map{"category": category})
	}
}

// RenameCategory renames a category of the user
func RenameCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid category ID")
		}

		var req models.RenameCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		category, err := a.CategoryService.Rename(c.UserContext(), middleware.GetActor(c), id, req.Name)
		if err != nil {
			return serviceError(c, err, "Failed to rename category")
		}

		return success(c, fiber.Map{"category": category})
	}
}

// DeleteCategory deletes a category of the user. Its notes are kept.
func DeleteCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid category ID")
		}

		if err := a.CategoryService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
			return serviceError(c, err, "Failed to delete category")
		}

		return success(c, fiber.Map{"message": "Category deleted successfully"})
	}
}
