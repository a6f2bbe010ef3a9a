package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/services"
)

func (handler *Handler) ListActions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	actions, err := handler.actionService.List(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "list actions", err)
	}
	return c.JSON(newActionListResponse(actions))
}

func (handler *Handler) GetAction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	action, err := handler.actionService.Get(user.ID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, "get action", err)
	}
	return c.JSON(newActionResponse(action))
}

func (handler *Handler) CreateAction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	payload := actionPayload{}
	if err := parseJSONBody(c, &payload); err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	action, err := handler.actionService.Create(user.ID, payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, "create action", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newActionResponse(action))
}

// UpdateAction replaces the media lists wholesale; a list missing from the
// body leaves the action without media of that kind.
func (handler *Handler) UpdateAction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	payload := actionPayload{}
	if err := parseOptionalJSONBody(c, &payload); err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	action, err := handler.actionService.Update(user.ID, c.Params("id"), payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, "update action", err)
	}
	return c.JSON(newActionResponse(action))
}

func (handler *Handler) DeleteAction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	if err := handler.actionService.Delete(user.ID, c.Params("id")); err != nil {
		return handler.respondServiceError(c, "delete action", err)
	}
	return c.JSON(fiber.Map{"message": handler.localize(c, "message.deleted")})
}

func (payload actionPayload) toInput() services.ActionInput {
	return services.ActionInput{
		Name:        payload.Name,
		Description: payload.Description,
		Images:      payload.Images,
		Videos:      payload.Videos,
	}
}
