package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
		return handler.respondError(c, fiber.StatusNotFound, "error.not_found")
	}

	if user := handler.optionalSessionUser(c); user != nil {
		c.Locals(contextUserKey, user)
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title": handler.localize(c, "notfound.title"),
	})
}
