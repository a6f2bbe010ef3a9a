package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}
	credentials.RememberMe = credentials.RememberMe || parseBoolValue(c.FormValue("remember_me"))
	return credentials, nil
}

func parseBoolValue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// parseJSONBody decodes a JSON request body regardless of the declared
// content type, as the browser scripts and API clients both send JSON.
func parseJSONBody(c *fiber.Ctx, target any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return fiber.ErrUnprocessableEntity
	}
	return c.App().Config().JSONDecoder(body, target)
}

// parseOptionalJSONBody treats an empty body as an empty payload.
func parseOptionalJSONBody(c *fiber.Ctx, target any) error {
	if len(strings.TrimSpace(string(c.Body()))) == 0 {
		return nil
	}
	return parseJSONBody(c, target)
}
