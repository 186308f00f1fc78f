package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	DayRecords *DayRecordRepository
	Circles    *CircleRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		DayRecords: NewDayRecordRepository(database),
		Circles:    NewCircleRepository(database),
	}
}
