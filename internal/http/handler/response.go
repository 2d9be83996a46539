package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// respond writes the success body {"message", "success": true, key: payload}.
func respond(c *fiber.Ctx, status int, message, key string, payload any) error {
	body := fiber.Map{
		"message": message,
		"success": true,
	}
	if key != "" {
		body[key] = payload
	}
	return c.Status(status).JSON(body)
}

// paramID parses the positive integer path parameter "id".
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}
