package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseLooseInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		null bool
	}{
		{raw: "12", want: 12},
		{raw: " 8 reps", want: 8},
		{raw: "-3", want: -3},
		{raw: "3.9", want: 3},
		{raw: "0", null: true},
		{raw: "", null: true},
		{raw: "abc", null: true},
		{raw: "x12", null: true},
	}

	for _, testCase := range tests {
		got := ParseLooseInt(testCase.raw)
		if testCase.null {
			if got != nil {
				t.Fatalf("ParseLooseInt(%q) = %d, want nil", testCase.raw, *got)
			}
			continue
		}
		if got == nil || *got != testCase.want {
			t.Fatalf("ParseLooseInt(%q) = %v, want %d", testCase.raw, got, testCase.want)
		}
	}
}

func TestLooseIntUnmarshalJSON(t *testing.T) {
	var payload struct {
		Reps     LooseInt `json:"reps"`
		Sets     LooseInt `json:"sets"`
		Duration LooseInt `json:"duration"`
		Rating   LooseInt `json:"rating"`
	}
	if err := json.Unmarshal([]byte(`{"reps": 10, "sets": "3", "duration": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !payload.Reps.Set || payload.Reps.Value == nil || *payload.Reps.Value != 10 {
		t.Fatalf("unexpected reps %+v", payload.Reps)
	}
	if !payload.Sets.Set || payload.Sets.Value == nil || *payload.Sets.Value != 3 {
		t.Fatalf("unexpected sets %+v", payload.Sets)
	}
	if !payload.Duration.Set || payload.Duration.Value != nil {
		t.Fatalf("expected present null duration, got %+v", payload.Duration)
	}
	if payload.Rating.Set {
		t.Fatalf("expected absent rating to stay unset, got %+v", payload.Rating)
	}
}

func TestLooseIntUnmarshalJSONIgnoresOddTypes(t *testing.T) {
	var payload struct {
		Reps LooseInt `json:"reps"`
		Sets LooseInt `json:"sets"`
	}
	if err := json.Unmarshal([]byte(`{"reps": true, "sets": [1]}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Reps.Set || payload.Reps.Value != nil || payload.Sets.Value != nil {
		t.Fatalf("expected odd types to decode as null, got %+v %+v", payload.Reps, payload.Sets)
	}
}

func TestParseDiaryDate(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	day, err := ParseDiaryDate("2024-03-01", shanghai)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if want := time.Date(2024, 2, 29, 16, 0, 0, 0, time.UTC); !day.Equal(want) || day.Location() != time.UTC {
		t.Fatalf("expected %v in UTC, got %v", want, day)
	}

	instant, err := ParseDiaryDate("2024-03-01T10:30:00Z", shanghai)
	if err != nil {
		t.Fatalf("parse instant: %v", err)
	}
	if !instant.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant %v", instant)
	}

	for _, raw := range []string{"", "yesterday", "2024-13-01"} {
		if _, err := ParseDiaryDate(raw, shanghai); !errors.Is(err, ErrDiaryInvalidDate) {
			t.Fatalf("expected ErrDiaryInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestParseMonth(t *testing.T) {
	start, err := ParseMonth("2024-3", time.UTC)
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start %v", start)
	}

	for _, raw := range []string{"2024-00", "2024-13", "March", "2024/03", ""} {
		if _, err := ParseMonth(raw, time.UTC); !errors.Is(err, ErrDiaryInvalidMonth) {
			t.Fatalf("expected ErrDiaryInvalidMonth for %q, got %v", raw, err)
		}
	}
}

func TestMonthRangeHandlesLeapFebruary(t *testing.T) {
	start, end := MonthRange(time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), time.UTC)
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %v .. %v", start, end)
	}
}
