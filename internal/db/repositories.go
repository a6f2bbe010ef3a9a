package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Actions *ActionRepository
	Diary   *DiaryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Actions: NewActionRepository(database),
		Diary:   NewDiaryRepository(database),
	}
}
