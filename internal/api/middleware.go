package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/models"
)

const (
	sessionCookieName  = "courtlog_session"
	languageCookieName = "courtlog_lang"

	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
)

func isSessionMissing(err error) bool {
	return errors.Is(err, errNoSession) || errors.Is(err, errInvalidSession)
}

// SkipCSRF reports unsafe requests that carry no session cookie. Those go to
// the handlers unchecked so AuthRequired can answer 401.
func SkipCSRF(c *fiber.Ctx) bool {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions, fiber.MethodTrace:
		return false
	}
	return strings.TrimSpace(c.Cookies(sessionCookieName)) == ""
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// AuthRequired loads the session user or stops the request: API callers get
// 401, pages are sent to /login.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.sessionUser(c)
	if err != nil && !isSessionMissing(err) {
		return handler.respondServiceError(c, "load session", err)
	}
	if err != nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// LanguageMiddleware picks the language cookie when it names a supported
// language, else Accept-Language, and pins the choice in the cookie.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	requested := c.Cookies(languageCookieName)

	var language string
	if requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	} else {
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}
	if requested != language {
		handler.rememberLanguage(c, language)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) rememberLanguage(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
