package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Uniform error envelope: {"error": "..."} dengan status 4xx/5xx.
func errJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func getAuth(c *fiber.Ctx) (uuid.UUID, bool) {
	rawID, ok := c.Locals("userId").(string)
	if !ok || rawID == "" {
		return uuid.Nil, false
	}
	uID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, false
	}
	return uID, true
}
