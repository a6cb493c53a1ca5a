package handlers

import (
	"errors"
	"notes-manager/app"
	"notes-manager/middleware"
	"notes-manager/models"
	"notes-manager/services"
	"notes-manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetNotes lists the user's notes, pinned first. ?q= filters by title or content.
func GetNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")

		notes, err := a.NoteService.List(c.UserContext(), middleware.GetActor(c), query)
		if err != nil {
			return serviceError(c, err, "Failed to fetch notes")
		}

		return success(c, fiber.Map{"notes": notes, "query": query})
	}
}

// GetNote retrieves a single note
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		note, err := a.NoteService.Get(c.UserContext(), middleware.GetActor(c), id)
		if err != nil {
			return serviceError(c, err, "Failed to fetch note")
		}

		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote creates a new note
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.NoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteService.Create(c.UserContext(), middleware.GetActor(c), req)
		if err != nil {
			return noteWriteError(c, err, "Failed to create note")
		}

		return created(c, fiber.Map{"note": note})
	}
}

// UpdateNote replaces a note's title, content, category, pin and reminder
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		var req models.NoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteService.Update(c.UserContext(), middleware.GetActor(c), id, req)
		if err != nil {
			return noteWriteError(c, err, "Failed to update note")
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote permanently deletes a note
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		if err := a.NoteService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
			return serviceError(c, err, "Failed to delete note")
		}

		return success(c, fiber.Map{"message": "Note deleted successfully"})
	}
}

// TogglePin pins an unpinned note and unpins a pinned one
func TogglePin(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		note, err := a.NoteService.TogglePin(c.UserContext(), middleware.GetActor(c), id)
		if err != nil {
			return serviceError(c, err, "Failed to toggle pin")
		}

		return success(c, fiber.Map{"status": "success", "pinned": note.Pinned, "note": note})
	}
}

// DownloadNote sends a note as a plain text attachment
func DownloadNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		note, err := a.NoteService.Get(c.UserContext(), middleware.GetActor(c), id)
		if err != nil {
			return serviceError(c, err, "Failed to fetch note")
		}

		title := note.Title
		if title == "" {
			title = "Untitled"
		}

		c.Attachment(utils.NoteFilename(title))
		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		return c.SendString(title + "\n\n" + note.Content)
	}
}

// SyncNotes merges notes cached by an offline client. Invalid or already
// synced entries are skipped, so the response does not report per-entry results.
func SyncNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SyncRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "Invalid request body")
			}
		}

		if err := a.NoteService.Sync(c.UserContext(), middleware.GetActor(c), req.Notes); err != nil {
			return serviceError(c, err, "Failed to sync notes")
		}

		return success(c, fiber.Map{"status": "success"})
	}
}

// noteWriteError reports an unknown category as a bad request rather than a
// missing resource: the note itself exists or is being created.
func noteWriteError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, services.ErrCategoryNotFound) {
		return badRequest(c, "Unknown category")
	}
	return serviceError(c, err, message)
}
