package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/courtlog/internal/models"
	"gorm.io/gorm"
)

type DiaryRepository struct {
	database *gorm.DB
}

func NewDiaryRepository(database *gorm.DB) *DiaryRepository {
	return &DiaryRepository{database: database}
}

func withActionSummary(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Action", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "user_id", "name") }).
		Preload("Action.Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") })
}

// ListByUserRange returns entries with fromStart <= date < toEnd; nil bounds
// are open.
func (repo *DiaryRepository) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DiaryEntry, error) {
	query := withActionSummary(repo.database.Model(&models.DiaryEntry{})).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", fromStart.UTC())
	}
	if toEnd != nil {
		query = query.Where("date < ?", toEnd.UTC())
	}

	entries := make([]models.DiaryEntry, 0)
	if err := query.Order("date DESC, created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DiaryRepository) FindOwned(userID string, entryID string) (models.DiaryEntry, bool, error) {
	var entry models.DiaryEntry
	err := withActionSummary(repo.database).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DiaryEntry{}, false, nil
	}
	if err != nil {
		return models.DiaryEntry{}, false, err
	}
	return entry, true, nil
}

func (repo *DiaryRepository) Create(entry *models.DiaryEntry) error {
	return repo.database.Omit("Action").Create(entry).Error
}

func (repo *DiaryRepository) Save(entry *models.DiaryEntry) error {
	return repo.database.Omit("Action").Save(entry).Error
}

func (repo *DiaryRepository) DeleteOwned(userID string, entryID string) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.DiaryEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
