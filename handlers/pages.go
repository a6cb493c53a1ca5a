package handlers

import (
	"notes-manager/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ServerTime lets offline clients stamp notes with the server clock
func ServerTime(c *fiber.Ctx) error {
	timezone := c.Query("timezone", "UTC")

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		timezone = "UTC"
	}

	now := utils.NowUTC().In(loc)

	return c.JSON(fiber.Map{
		"timestamp": now.Unix(),
		"timezone":  timezone,
		"iso":       utils.FormatTimestamp(now),
	})
}
