package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/courtlog/internal/models"
	"github.com/terraincognita07/courtlog/internal/services"
)

const (
	sessionPurpose = "session"
	sessionIssuer  = "courtlog"

	sessionTTL         = 7 * 24 * time.Hour
	rememberSessionTTL = 30 * 24 * time.Hour
)

var (
	errNoSession      = errors.New("no session cookie")
	errInvalidSession = errors.New("invalid session")
)

// issueSession signs a token for user, seals it and stores it in the session
// cookie. Without remember the cookie lives for the browser session only.
func (handler *Handler) issueSession(c *fiber.Ctx, user models.User, remember bool) error {
	ttl := sessionTTL
	if remember {
		ttl = rememberSessionTTL
	}

	now := time.Now()
	token, err := handler.signSessionToken(user.ID, now, ttl)
	if err != nil {
		return err
	}
	sealed, err := handler.cookieCodec.seal(sessionPurpose, []byte(token))
	if err != nil {
		return err
	}

	var expires time.Time
	if remember {
		expires = now.Add(ttl)
	}
	c.Cookie(handler.sessionCookie(sealed, expires))
	return nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie("", time.Unix(0, 0)))
}

func (handler *Handler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func (handler *Handler) signSessionToken(userID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

// parseSessionToken returns the user id carried by a valid, unexpired token.
func (handler *Handler) parseSessionToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return handler.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errInvalidSession
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errInvalidSession
	}
	return claims.Subject, nil
}

// sessionUser opens the session cookie and loads its user. Any error other
// than errNoSession or errInvalidSession is a lookup failure.
func (handler *Handler) sessionUser(c *fiber.Ctx) (*models.User, error) {
	raw := strings.TrimSpace(c.Cookies(sessionCookieName))
	if raw == "" {
		return nil, errNoSession
	}
	token, err := handler.cookieCodec.open(sessionPurpose, raw)
	if err != nil {
		return nil, errInvalidSession
	}
	userID, err := handler.parseSessionToken(string(token))
	if err != nil {
		return nil, err
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindByID(userID)
	if errors.Is(err, services.ErrAuthUserNotFound) {
		return nil, errInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (handler *Handler) optionalSessionUser(c *fiber.Ctx) *models.User {
	user, err := handler.sessionUser(c)
	if err != nil {
		return nil
	}
	return user
}
