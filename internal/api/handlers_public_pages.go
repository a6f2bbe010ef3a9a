package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.rememberLanguage(c, language)
	return c.Redirect(sanitizeRedirectPath(c.Query("next"), "/"), fiber.StatusSeeOther)
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if handler.optionalSessionUser(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return handler.render(c, "login", fiber.Map{
		"Title":      handler.localize(c, "auth.login.title"),
		"Registered": c.Query("registered") == "1",
	})
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	if handler.optionalSessionUser(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return handler.render(c, "register", fiber.Map{
		"Title": handler.localize(c, "auth.register.title"),
	})
}

func (handler *Handler) RedirectHome(c *fiber.Ctx) error {
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
