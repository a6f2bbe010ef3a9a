package db

import (
	"errors"

	"github.com/terraincognita07/courtlog/internal/models"
	"gorm.io/gorm"
)

type ActionRepository struct {
	database *gorm.DB
}

func NewActionRepository(database *gorm.DB) *ActionRepository {
	return &ActionRepository{database: database}
}

func withMedia(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") }).
		Preload("Videos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") })
}

func (repo *ActionRepository) ListByUser(userID string) ([]models.TrainingAction, error) {
	actions := make([]models.TrainingAction, 0)
	if err := withMedia(repo.database).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// FindOwned loads an action with media. found is false when the action does
// not exist or belongs to another user.
func (repo *ActionRepository) FindOwned(userID string, actionID string) (models.TrainingAction, bool, error) {
	var action models.TrainingAction
	err := withMedia(repo.database).
		Where("id = ? AND user_id = ?", actionID, userID).
		First(&action).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TrainingAction{}, false, nil
	}
	if err != nil {
		return models.TrainingAction{}, false, err
	}
	return action, true, nil
}

func (repo *ActionRepository) ExistsOwned(userID string, actionID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.TrainingAction{}).
		Where("id = ? AND user_id = ?", actionID, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *ActionRepository) CreateWithMedia(action *models.TrainingAction, imageURLList []string, videoURLList []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Videos").Create(action).Error; err != nil {
			return err
		}
		action.Images = models.NewActionImages(action.ID, imageURLList)
		action.Videos = models.NewActionVideos(action.ID, videoURLList)
		return createMedia(tx, action)
	})
}

// ReplaceWithMedia updates name and description and swaps the full media set
// inside one transaction.
func (repo *ActionRepository) ReplaceWithMedia(action *models.TrainingAction, imageURLList []string, videoURLList []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TrainingAction{}).
			Where("id = ? AND user_id = ?", action.ID, action.UserID).
			Updates(map[string]any{
				"name":        action.Name,
				"description": action.Description,
				"updated_at":  action.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("action_id = ?", action.ID).Delete(&models.ActionImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("action_id = ?", action.ID).Delete(&models.ActionVideo{}).Error; err != nil {
			return err
		}

		action.Images = models.NewActionImages(action.ID, imageURLList)
		action.Videos = models.NewActionVideos(action.ID, videoURLList)
		return createMedia(tx, action)
	})
}

// DeleteOwned removes the action together with its media and diary entries.
// deleted is false when the caller does not own the action.
func (repo *ActionRepository) DeleteOwned(userID string, actionID string) (deleted bool, err error) {
	err = repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", actionID, userID).Delete(&models.TrainingAction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Where("action_id = ?", actionID).Delete(&models.ActionImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("action_id = ?", actionID).Delete(&models.ActionVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("action_id = ?", actionID).Delete(&models.DiaryEntry{}).Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func createMedia(tx *gorm.DB, action *models.TrainingAction) error {
	if len(action.Images) > 0 {
		if err := tx.Create(&action.Images).Error; err != nil {
			return err
		}
	}
	if len(action.Videos) > 0 {
		if err := tx.Create(&action.Videos).Error; err != nil {
			return err
		}
	}
	return nil
}
