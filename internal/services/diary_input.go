package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const MaxDiaryNotesLength = 4000

var (
	ErrDiaryInvalidInput = errors.New("date and action are required")
	ErrDiaryInvalidDate  = errors.New("invalid date")
	ErrDiaryInvalidMonth = errors.New("invalid month")
)

var (
	leadingIntegerPattern = regexp.MustCompile(`^[+-]?\d+`)
	monthPattern          = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

// LooseInt is an optional diary number that may arrive as a JSON number or
// string. Set records whether the field was present in the payload; Value is
// nil for null, empty, zero or unparsable input.
type LooseInt struct {
	Set   bool
	Value *int
}

func (value *LooseInt) UnmarshalJSON(data []byte) error {
	value.Set = true
	value.Value = nil

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
		value.Value = ParseLooseInt(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var number float64
		if err := json.Unmarshal(data, &number); err != nil {
			return nil
		}
		value.Value = intFromFloat(number)
	}
	return nil
}

// ParseLooseInt reads the leading integer of raw after surrounding spaces, so
// "12 reps" yields 12. Zero and text without a leading integer yield nil.
func ParseLooseInt(raw string) *int {
	match := leadingIntegerPattern.FindString(strings.TrimSpace(raw))
	if match == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return nil
	}
	return intFromFloat(float64(parsed))
}

func intFromFloat(number float64) *int {
	truncated := math.Trunc(number)
	if truncated == 0 || math.IsNaN(truncated) || truncated > math.MaxInt32 || truncated < math.MinInt32 {
		return nil
	}
	result := int(truncated)
	return &result
}

// ParseDiaryDate accepts YYYY-MM-DD, read as midnight in location, or an
// RFC 3339 timestamp. The result is in UTC.
func ParseDiaryDate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrDiaryInvalidDate
	}
	if day, err := time.ParseInLocation("2006-01-02", raw, location); err == nil {
		return day.UTC(), nil
	}
	if instant, err := time.Parse(time.RFC3339, raw); err == nil {
		return instant.UTC(), nil
	}
	return time.Time{}, ErrDiaryInvalidDate
}

// ParseMonth parses YYYY-MM (single-digit months allowed) into the first
// instant of that month in location.
func ParseMonth(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	match := monthPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDiaryInvalidMonth, raw)
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDiaryInvalidMonth, raw)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, location), nil
}

// MonthRange returns [start of month, start of next month) for the month
// containing value in location.
func MonthRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.UTC
	}
	local := value.In(location)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, location)
	return start, start.AddDate(0, 1, 0)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func TrimDiaryNotes(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxDiaryNotesLength {
		return value
	}
	return string(runes[:MaxDiaryNotesLength])
}
