package api

import (
	"github.com/terraincognita07/courtlog/internal/db"
	"github.com/terraincognita07/courtlog/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.actionService = services.NewActionService(handler.repositories.Actions)
	handler.diaryService = services.NewDiaryService(handler.repositories.Diary, handler.repositories.Actions, handler.location)
	handler.uploadService = services.NewUploadService(handler.store)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.actionService == nil {
		handler.actionService = services.NewActionService(handler.repositories.Actions)
	}
	if handler.diaryService == nil {
		handler.diaryService = services.NewDiaryService(handler.repositories.Diary, handler.repositories.Actions, handler.location)
	}
	if handler.uploadService == nil && handler.store != nil {
		handler.uploadService = services.NewUploadService(handler.store)
	}
}
