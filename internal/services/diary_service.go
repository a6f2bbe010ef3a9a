package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/courtlog/internal/models"
)

var (
	ErrDiaryEntryNotFound     = errors.New("diary entry not found")
	ErrDiaryEntryLoadFailed   = errors.New("load diary entry failed")
	ErrDiaryEntryCreateFailed = errors.New("create diary entry failed")
	ErrDiaryEntryUpdateFailed = errors.New("update diary entry failed")
	ErrDiaryEntryDeleteFailed = errors.New("delete diary entry failed")
)

type DiaryRepository interface {
	ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DiaryEntry, error)
	FindOwned(userID string, entryID string) (models.DiaryEntry, bool, error)
	Create(entry *models.DiaryEntry) error
	Save(entry *models.DiaryEntry) error
	DeleteOwned(userID string, entryID string) (bool, error)
}

type DiaryActionLookup interface {
	ExistsOwned(userID string, actionID string) (bool, error)
}

// DiaryEntryInput carries a decoded diary payload. Pointer and LooseInt
// fields distinguish "absent" from "present but empty" for partial updates.
type DiaryEntryInput struct {
	Date     *string  `json:"date"`
	ActionID *string  `json:"actionId"`
	Reps     LooseInt `json:"reps"`
	Sets     LooseInt `json:"sets"`
	Duration LooseInt `json:"duration"`
	Rating   LooseInt `json:"rating"`
	Notes    *string  `json:"notes"`
}

type DiaryService struct {
	entries  DiaryRepository
	actions  DiaryActionLookup
	location *time.Location
	now      func() time.Time
}

func NewDiaryService(entries DiaryRepository, actions DiaryActionLookup, location *time.Location) *DiaryService {
	if location == nil {
		location = time.UTC
	}
	return &DiaryService{entries: entries, actions: actions, location: location, now: time.Now}
}

func (service *DiaryService) Location() *time.Location {
	return service.location
}

// List returns the caller's entries newest first. A non-empty month limits the
// result to that calendar month in the service time zone.
func (service *DiaryService) List(userID string, month string) ([]models.DiaryEntry, error) {
	if strings.TrimSpace(month) == "" {
		return service.load(userID, nil, nil)
	}
	start, err := ParseMonth(month, service.location)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 1, 0)
	return service.load(userID, &start, &end)
}

func (service *DiaryService) ListRange(userID string, fromStart time.Time, toEnd time.Time) ([]models.DiaryEntry, error) {
	return service.load(userID, &fromStart, &toEnd)
}

func (service *DiaryService) Get(userID string, entryID string) (models.DiaryEntry, error) {
	entry, found, err := service.entries.FindOwned(userID, entryID)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrDiaryEntryLoadFailed, err)
	}
	if !found {
		return models.DiaryEntry{}, ErrDiaryEntryNotFound
	}
	return entry, nil
}

func (service *DiaryService) Create(userID string, input DiaryEntryInput) (models.DiaryEntry, error) {
	if input.Date == nil || strings.TrimSpace(*input.Date) == "" || input.ActionID == nil || strings.TrimSpace(*input.ActionID) == "" {
		return models.DiaryEntry{}, ErrDiaryInvalidInput
	}
	date, err := ParseDiaryDate(*input.Date, service.location)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	actionID := strings.TrimSpace(*input.ActionID)
	if err := service.requireOwnedAction(userID, actionID); err != nil {
		return models.DiaryEntry{}, err
	}

	now := service.now().UTC()
	entry := models.DiaryEntry{
		UserID:    userID,
		ActionID:  actionID,
		Date:      date,
		Reps:      input.Reps.Value,
		Sets:      input.Sets.Value,
		Duration:  input.Duration.Value,
		Rating:    input.Rating.Value,
		Notes:     normalizeDiaryNotes(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrDiaryEntryCreateFailed, err)
	}
	return service.reload(userID, entry)
}

// Update applies only the fields present in input. An unparsable date is
// ignored rather than rejected.
func (service *DiaryService) Update(userID string, entryID string, input DiaryEntryInput) (models.DiaryEntry, error) {
	entry, err := service.Get(userID, entryID)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	if input.Date != nil {
		if date, err := ParseDiaryDate(*input.Date, service.location); err == nil {
			entry.Date = date
		}
	}
	if input.ActionID != nil {
		if actionID := strings.TrimSpace(*input.ActionID); actionID != "" && actionID != entry.ActionID {
			if err := service.requireOwnedAction(userID, actionID); err != nil {
				return models.DiaryEntry{}, err
			}
			entry.ActionID = actionID
		}
	}
	applyLooseInt(&entry.Reps, input.Reps)
	applyLooseInt(&entry.Sets, input.Sets)
	applyLooseInt(&entry.Duration, input.Duration)
	applyLooseInt(&entry.Rating, input.Rating)
	if input.Notes != nil {
		entry.Notes = normalizeDiaryNotes(input.Notes)
	}
	entry.UpdatedAt = service.now().UTC()
	entry.Action = nil

	if err := service.entries.Save(&entry); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrDiaryEntryUpdateFailed, err)
	}
	return service.reload(userID, entry)
}

func (service *DiaryService) Delete(userID string, entryID string) error {
	deleted, err := service.entries.DeleteOwned(userID, entryID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDiaryEntryDeleteFailed, err)
	}
	if !deleted {
		return ErrDiaryEntryNotFound
	}
	return nil
}

// Calendar builds the month grid for month, or for the current month when
// month is empty.
func (service *DiaryService) Calendar(userID string, month string) (CalendarMonth, error) {
	start, _ := MonthRange(service.now(), service.location)
	if strings.TrimSpace(month) != "" {
		parsed, err := ParseMonth(month, service.location)
		if err != nil {
			return CalendarMonth{}, err
		}
		start = parsed
	}

	entries, err := service.ListRange(userID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return CalendarMonth{}, err
	}
	return BuildCalendarMonth(start, entries, service.now(), service.location), nil
}

func (service *DiaryService) load(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DiaryEntry, error) {
	entries, err := service.entries.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiaryEntryLoadFailed, err)
	}
	return entries, nil
}

func (service *DiaryService) requireOwnedAction(userID string, actionID string) error {
	owned, err := service.actions.ExistsOwned(userID, actionID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrActionLoadFailed, err)
	}
	if !owned {
		return ErrActionNotFound
	}
	return nil
}

// reload fetches the stored entry with its action summary; the written entry
// is returned unchanged if the reload misses.
func (service *DiaryService) reload(userID string, entry models.DiaryEntry) (models.DiaryEntry, error) {
	stored, found, err := service.entries.FindOwned(userID, entry.ID)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrDiaryEntryLoadFailed, err)
	}
	if !found {
		return entry, nil
	}
	return stored, nil
}

func applyLooseInt(target **int, value LooseInt) {
	if value.Set {
		*target = value.Value
	}
}

func normalizeDiaryNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := TrimDiaryNotes(strings.TrimSpace(*notes))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
