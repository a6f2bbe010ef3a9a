package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/courtlog/internal/models"
)

var (
	ErrActionNotFound     = errors.New("action not found")
	ErrActionInvalidInput = errors.New("action name and description are required")
	ErrActionLoadFailed   = errors.New("load action failed")
	ErrActionCreateFailed = errors.New("create action failed")
	ErrActionUpdateFailed = errors.New("update action failed")
	ErrActionDeleteFailed = errors.New("delete action failed")
)

type ActionRepository interface {
	ListByUser(userID string) ([]models.TrainingAction, error)
	FindOwned(userID string, actionID string) (models.TrainingAction, bool, error)
	ExistsOwned(userID string, actionID string) (bool, error)
	CreateWithMedia(action *models.TrainingAction, imageURLList []string, videoURLList []string) error
	ReplaceWithMedia(action *models.TrainingAction, imageURLList []string, videoURLList []string) error
	DeleteOwned(userID string, actionID string) (bool, error)
}

type ActionInput struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Images      []string
	Videos      []string
}

type ActionService struct {
	actions ActionRepository
	now     func() time.Time
}

func NewActionService(actions ActionRepository) *ActionService {
	return &ActionService{actions: actions, now: time.Now}
}

func (service *ActionService) List(userID string) ([]models.TrainingAction, error) {
	actions, err := service.actions.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrActionLoadFailed, err)
	}
	return actions, nil
}

func (service *ActionService) Get(userID string, actionID string) (models.TrainingAction, error) {
	action, found, err := service.actions.FindOwned(userID, actionID)
	if err != nil {
		return models.TrainingAction{}, fmt.Errorf("%w: %v", ErrActionLoadFailed, err)
	}
	if !found {
		return models.TrainingAction{}, ErrActionNotFound
	}
	return action, nil
}

func (service *ActionService) Create(userID string, input ActionInput) (models.TrainingAction, error) {
	input = normalizeActionInput(input)
	field, _, err := firstFailedRule(input)
	if err != nil {
		return models.TrainingAction{}, err
	}
	if field != "" {
		return models.TrainingAction{}, ErrActionInvalidInput
	}

	now := service.now().UTC()
	action := models.TrainingAction{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.actions.CreateWithMedia(&action, input.Images, input.Videos); err != nil {
		return models.TrainingAction{}, fmt.Errorf("%w: %v", ErrActionCreateFailed, err)
	}
	return action, nil
}

// Update keeps the stored name or description when the input leaves it blank
// and always replaces the media lists with the ones supplied.
func (service *ActionService) Update(userID string, actionID string, input ActionInput) (models.TrainingAction, error) {
	action, err := service.Get(userID, actionID)
	if err != nil {
		return models.TrainingAction{}, err
	}

	input = normalizeActionInput(input)
	if input.Name != "" {
		action.Name = input.Name
	}
	if input.Description != "" {
		action.Description = input.Description
	}
	action.UpdatedAt = service.now().UTC()

	if err := service.actions.ReplaceWithMedia(&action, input.Images, input.Videos); err != nil {
		return models.TrainingAction{}, fmt.Errorf("%w: %v", ErrActionUpdateFailed, err)
	}
	return action, nil
}

func (service *ActionService) Delete(userID string, actionID string) error {
	deleted, err := service.actions.DeleteOwned(userID, actionID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrActionDeleteFailed, err)
	}
	if !deleted {
		return ErrActionNotFound
	}
	return nil
}

// OwnsAction reports whether actionID exists and belongs to userID.
func (service *ActionService) OwnsAction(userID string, actionID string) (bool, error) {
	owned, err := service.actions.ExistsOwned(userID, actionID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrActionLoadFailed, err)
	}
	return owned, nil
}

func normalizeActionInput(input ActionInput) ActionInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Images = compactURLs(input.Images)
	input.Videos = compactURLs(input.Videos)
	return input
}

func compactURLs(values []string) []string {
	urls := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
