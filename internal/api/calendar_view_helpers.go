package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/services"
)

type calendarResponse struct {
	Month    string                  `json:"month"`
	Prev     string                  `json:"prev"`
	Next     string                  `json:"next"`
	Title    string                  `json:"title"`
	Weekdays []string                `json:"weekdays"`
	Cells    []services.CalendarCell `json:"cells"`
}

func (handler *Handler) newCalendarResponse(c *fiber.Ctx, calendar services.CalendarMonth) calendarResponse {
	cells := calendar.Cells
	if cells == nil {
		cells = []services.CalendarCell{}
	}
	return calendarResponse{
		Month:    calendar.Month,
		Prev:     calendar.Prev,
		Next:     calendar.Next,
		Title:    handler.monthTitle(c, calendar.Start),
		Weekdays: handler.weekdayNames(c),
		Cells:    cells,
	}
}
