package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/services"
)

func (handler *Handler) ListDiaryEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	entries, err := handler.diaryService.List(user.ID, c.Query("month"))
	if err != nil {
		return handler.respondServiceError(c, "list diary entries", err)
	}
	return c.JSON(newDiaryListResponse(entries))
}

func (handler *Handler) GetDiaryEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	entry, err := handler.diaryService.Get(user.ID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, "get diary entry", err)
	}
	return c.JSON(newDiaryEntryResponse(entry))
}

func (handler *Handler) CreateDiaryEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.DiaryEntryInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	entry, err := handler.diaryService.Create(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, "create diary entry", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newDiaryEntryResponse(entry))
}

// UpdateDiaryEntry applies a partial update: fields absent from the body keep
// their stored values.
func (handler *Handler) UpdateDiaryEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.DiaryEntryInput{}
	if err := parseOptionalJSONBody(c, &input); err != nil {
		return handler.respondError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	handler.ensureDependencies()
	entry, err := handler.diaryService.Update(user.ID, c.Params("id"), input)
	if err != nil {
		return handler.respondServiceError(c, "update diary entry", err)
	}
	return c.JSON(newDiaryEntryResponse(entry))
}

func (handler *Handler) DeleteDiaryEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	if err := handler.diaryService.Delete(user.ID, c.Params("id")); err != nil {
		return handler.respondServiceError(c, "delete diary entry", err)
	}
	return c.JSON(fiber.Map{"message": handler.localize(c, "message.deleted")})
}

func (handler *Handler) DiaryCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.respondError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	handler.ensureDependencies()
	calendar, err := handler.diaryService.Calendar(user.ID, c.Query("month"))
	if err != nil {
		return handler.respondServiceError(c, "diary calendar", err)
	}
	return c.JSON(handler.newCalendarResponse(c, calendar))
}
