package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/models"
	"github.com/terraincognita07/courtlog/internal/services"
)

type sessionUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newSessionUserResponse(user *models.User) sessionUserResponse {
	return sessionUserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(services.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		return handler.respondServiceError(c, "register", err)
	}

	if !wantsJSON(c) {
		return c.Redirect("/login?registered=1", fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": handler.localize(c, "message.registered"),
		"userId":  user.ID,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		return handler.respondServiceError(c, "login", err)
	}

	if err := handler.issueSession(c, user, credentials.RememberMe); err != nil {
		return handler.respondServiceError(c, "login session", err)
	}

	return redirectOrJSON(c, "/dashboard", fiber.Map{
		"ok":   true,
		"user": newSessionUserResponse(&user),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return redirectOrJSON(c, "/login", fiber.Map{"ok": true})
}

func (handler *Handler) Session(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	return c.JSON(fiber.Map{"user": newSessionUserResponse(user)})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	if err := handler.authService.ChangePassword(*user, input.CurrentPassword, input.NewPassword); err != nil {
		return handler.respondServiceError(c, "change password", err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.localize(c, "message.password_changed"),
	})
}
