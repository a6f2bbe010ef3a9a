package api

import (
	"time"

	"github.com/terraincognita07/courtlog/internal/models"
)

type mediaResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type actionResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Images      []mediaResponse `json:"images"`
	Videos      []mediaResponse `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type actionSummaryResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Images []mediaResponse `json:"images"`
}

type diaryEntryResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	ActionID  string                 `json:"actionId"`
	Date      time.Time              `json:"date"`
	Reps      *int                   `json:"reps"`
	Sets      *int                   `json:"sets"`
	Duration  *int                   `json:"duration"`
	Rating    *int                   `json:"rating"`
	Notes     *string                `json:"notes"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Action    *actionSummaryResponse `json:"action"`
}

func newActionResponse(action models.TrainingAction) actionResponse {
	images := make([]mediaResponse, 0, len(action.Images))
	for _, image := range action.Images {
		images = append(images, mediaResponse{ID: image.ID, URL: image.URL})
	}
	videos := make([]mediaResponse, 0, len(action.Videos))
	for _, video := range action.Videos {
		videos = append(videos, mediaResponse{ID: video.ID, URL: video.URL})
	}
	return actionResponse{
		ID:          action.ID,
		UserID:      action.UserID,
		Name:        action.Name,
		Description: action.Description,
		Images:      images,
		Videos:      videos,
		CreatedAt:   action.CreatedAt,
		UpdatedAt:   action.UpdatedAt,
	}
}

func newActionListResponse(actions []models.TrainingAction) []actionResponse {
	result := make([]actionResponse, 0, len(actions))
	for _, action := range actions {
		result = append(result, newActionResponse(action))
	}
	return result
}

// newDiaryEntryResponse embeds the action name and at most its first image.
func newDiaryEntryResponse(entry models.DiaryEntry) diaryEntryResponse {
	response := diaryEntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		ActionID:  entry.ActionID,
		Date:      entry.Date.UTC(),
		Reps:      entry.Reps,
		Sets:      entry.Sets,
		Duration:  entry.Duration,
		Rating:    entry.Rating,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
	if entry.Action != nil {
		summary := &actionSummaryResponse{
			ID:     entry.Action.ID,
			Name:   entry.Action.Name,
			Images: []mediaResponse{},
		}
		if len(entry.Action.Images) > 0 {
			first := entry.Action.Images[0]
			summary.Images = append(summary.Images, mediaResponse{ID: first.ID, URL: first.URL})
		}
		response.Action = summary
	}
	return response
}

func newDiaryListResponse(entries []models.DiaryEntry) []diaryEntryResponse {
	result := make([]diaryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, newDiaryEntryResponse(entry))
	}
	return result
}
