package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingAction is a reusable exercise definition owned by one user.
type TrainingAction struct {
	ID          string        `gorm:"primaryKey;type:text" json:"id"`
	UserID      string        `gorm:"not null;index" json:"userId"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `gorm:"not null" json:"description"`
	Images      []ActionImage `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE" json:"images"`
	Videos      []ActionVideo `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE" json:"videos"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ActionImage struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	ActionID string `gorm:"not null;index" json:"actionId"`
	URL      string `gorm:"column:url;not null" json:"url"`
	Position int    `gorm:"not null;default:0" json:"-"`
}

type ActionVideo struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	ActionID string `gorm:"not null;index" json:"actionId"`
	URL      string `gorm:"column:url;not null" json:"url"`
	Position int    `gorm:"not null;default:0" json:"-"`
}

func (action *TrainingAction) BeforeCreate(*gorm.DB) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	return nil
}

func (image *ActionImage) BeforeCreate(*gorm.DB) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	return nil
}

func (video *ActionVideo) BeforeCreate(*gorm.DB) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	return nil
}

// NewActionImages builds image rows for urls in request order.
func NewActionImages(actionID string, urls []string) []ActionImage {
	images := make([]ActionImage, 0, len(urls))
	for index, url := range urls {
		images = append(images, ActionImage{ActionID: actionID, URL: url, Position: index})
	}
	return images
}

func NewActionVideos(actionID string, urls []string) []ActionVideo {
	videos := make([]ActionVideo, 0, len(urls))
	for index, url := range urls {
		videos = append(videos, ActionVideo{ActionID: actionID, URL: url, Position: index})
	}
	return videos
}
