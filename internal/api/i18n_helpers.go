package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

// localize resolves key for the request language, falling back to the default
// catalog when the language middleware did not run.
func (handler *Handler) localize(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(handler.requestLanguage(c), key)
}

func (handler *Handler) requestLanguage(c *fiber.Ctx) string {
	if language := currentLanguage(c); language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	language := handler.requestLanguage(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = handler.i18n.Messages(language)
	}
	if _, ok := data["Lang"]; !ok {
		data["Lang"] = language
	}
	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}
	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}
	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}
	if _, ok := data["CurrentUser"]; !ok {
		if user, ok := currentUser(c); ok {
			data["CurrentUser"] = user
		}
	}
	return data
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := c.Path()
	if query := string(c.Request().URI().QueryString()); query != "" {
		return path + "?" + query
	}
	return path
}

func (handler *Handler) monthTitle(c *fiber.Ctx, month time.Time) string {
	name := handler.localize(c, "month."+strconv.Itoa(int(month.Month())))
	return handler.i18n.Translatef(handler.requestLanguage(c), "calendar.title", name, month.Year())
}

func (handler *Handler) weekdayNames(c *fiber.Ctx) []string {
	names := make([]string, 0, 7)
	for day := 0; day < 7; day++ {
		names = append(names, handler.localize(c, "calendar.weekday."+strconv.Itoa(day)))
	}
	return names
}
