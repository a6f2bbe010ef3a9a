package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiaryEntry struct {
	ID        string          `gorm:"primaryKey;type:text" json:"id"`
	UserID    string          `gorm:"not null;index" json:"userId"`
	ActionID  string          `gorm:"not null;index" json:"actionId"`
	Action    *TrainingAction `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE" json:"-"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	Reps      *int            `json:"reps"`
	Sets      *int            `json:"sets"`
	Duration  *int            `json:"duration"`
	Rating    *int            `json:"rating"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (entry *DiaryEntry) BeforeCreate(*gorm.DB) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return nil
}
