package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/models"
	"github.com/terraincognita07/courtlog/internal/services"
)

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	greeting := user.Name
	if greeting == "" {
		greeting = user.Email
	}

	handler.ensureDependencies()
	actions, err := handler.actionService.List(user.ID)
	if err != nil {
		return handler.renderPageFailure(c, "dashboard actions", err)
	}
	start, end := services.MonthRange(time.Now(), handler.location)
	entries, err := handler.diaryService.ListRange(user.ID, start, end)
	if err != nil {
		return handler.renderPageFailure(c, "dashboard diary", err)
	}

	return handler.render(c, "dashboard", fiber.Map{
		"Title":             handler.localize(c, "nav.dashboard"),
		"Greeting":          greeting,
		"ActionCount":       len(actions),
		"MonthEntryCount":   len(entries),
		"CurrentMonthTitle": handler.monthTitle(c, start),
	})
}

func (handler *Handler) ShowActions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	actions, err := handler.actionService.List(user.ID)
	if err != nil {
		return handler.renderPageFailure(c, "actions page", err)
	}
	return handler.render(c, "actions", fiber.Map{
		"Title":   handler.localize(c, "actions.title"),
		"Actions": newActionListResponse(actions),
	})
}

func (handler *Handler) ShowNewAction(c *fiber.Ctx) error {
	return handler.render(c, "action_form", fiber.Map{
		"Title":  handler.localize(c, "actions.new"),
		"IsEdit": false,
		"Action": newActionResponse(models.TrainingAction{}),
	})
}

func (handler *Handler) ShowAction(c *fiber.Ctx) error {
	return handler.withOwnedAction(c, func(action models.TrainingAction) error {
		return handler.render(c, "action_detail", fiber.Map{
			"Title":  action.Name,
			"Action": newActionResponse(action),
		})
	})
}

func (handler *Handler) ShowEditAction(c *fiber.Ctx) error {
	return handler.withOwnedAction(c, func(action models.TrainingAction) error {
		return handler.render(c, "action_form", fiber.Map{
			"Title":  handler.localize(c, "actions.edit"),
			"IsEdit": true,
			"Action": newActionResponse(action),
		})
	})
}

// withOwnedAction renders the not-found page for missing or foreign actions.
func (handler *Handler) withOwnedAction(c *fiber.Ctx, show func(models.TrainingAction) error) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	action, err := handler.actionService.Get(user.ID, c.Params("id"))
	if errors.Is(err, services.ErrActionNotFound) {
		return handler.NotFound(c)
	}
	if err != nil {
		return handler.renderPageFailure(c, "action page", err)
	}
	return show(action)
}

func (handler *Handler) ShowDiary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	calendar, err := handler.diaryService.Calendar(user.ID, c.Query("month"))
	if errors.Is(err, services.ErrDiaryInvalidMonth) {
		return c.Redirect("/dashboard/diary", fiber.StatusSeeOther)
	}
	if err != nil {
		return handler.renderPageFailure(c, "diary calendar page", err)
	}

	entries, err := handler.diaryService.List(user.ID, calendar.Month)
	if err != nil {
		return handler.renderPageFailure(c, "diary list page", err)
	}

	return handler.render(c, "diary", fiber.Map{
		"Title":    handler.localize(c, "diary.title"),
		"Calendar": handler.newCalendarResponse(c, calendar),
		"Entries":  newDiaryListResponse(entries),
	})
}

func (handler *Handler) ShowNewDiaryEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	actions, err := handler.actionService.List(user.ID)
	if err != nil {
		return handler.renderPageFailure(c, "diary form page", err)
	}

	date := time.Now().In(handler.location).Format("2006-01-02")
	if requested := c.Query("date"); requested != "" {
		if _, err := services.ParseDiaryDate(requested, handler.location); err == nil && len(requested) == len(date) {
			date = requested
		}
	}

	return handler.render(c, "diary_form", fiber.Map{
		"Title":       handler.localize(c, "diary.new"),
		"Actions":     newActionListResponse(actions),
		"DefaultDate": date,
	})
}
