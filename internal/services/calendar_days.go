package services

import (
	"time"

	"github.com/terraincognita07/courtlog/internal/models"
)

// CalendarCell is one square of the month grid. Blank cells pad the first
// week so that day 1 lands on its weekday column (Sunday first).
type CalendarCell struct {
	Blank      bool   `json:"blank"`
	Day        int    `json:"day,omitempty"`
	Date       string `json:"date,omitempty"`
	Count      int    `json:"count"`
	HasEntries bool   `json:"has_entries"`
	IsToday    bool   `json:"is_today"`
}

type CalendarMonth struct {
	Month string         `json:"month"`
	Prev  string         `json:"prev"`
	Next  string         `json:"next"`
	Start time.Time      `json:"-"`
	Cells []CalendarCell `json:"cells"`
}

func BuildCalendarMonth(monthStart time.Time, entries []models.DiaryEntry, now time.Time, location *time.Location) CalendarMonth {
	if location == nil {
		location = time.UTC
	}
	monthStart = DateAtLocation(monthStart, location)
	monthStart = monthStart.AddDate(0, 0, 1-monthStart.Day())
	nextMonth := monthStart.AddDate(0, 1, 0)

	counts := make(map[string]int, len(entries))
	for _, entry := range entries {
		counts[DateAtLocation(entry.Date, location).Format("2006-01-02")]++
	}
	todayKey := DateAtLocation(now, location).Format("2006-01-02")

	leading := int(monthStart.Weekday())
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()
	cells := make([]CalendarCell, 0, leading+daysInMonth)
	for index := 0; index < leading; index++ {
		cells = append(cells, CalendarCell{Blank: true})
	}
	for day := monthStart; day.Before(nextMonth); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		cells = append(cells, CalendarCell{
			Day:        day.Day(),
			Date:       key,
			Count:      counts[key],
			HasEntries: counts[key] > 0,
			IsToday:    key == todayKey,
		})
	}

	return CalendarMonth{
		Month: monthStart.Format("2006-01"),
		Prev:  monthStart.AddDate(0, -1, 0).Format("2006-01"),
		Next:  nextMonth.Format("2006-01"),
		Start: monthStart,
		Cells: cells,
	}
}
