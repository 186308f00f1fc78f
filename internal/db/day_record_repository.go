package db

import (
	"github.com/satriadp/eightify/internal/models"
	"gorm.io/gorm"
)

type DayRecordRepository struct {
	database *gorm.DB
}

func NewDayRecordRepository(database *gorm.DB) *DayRecordRepository {
	return &DayRecordRepository{database: database}
}

func (repo *DayRecordRepository) FindByUserAndDate(userID uint, date string) (models.DayRecord, bool, error) {
	record := models.DayRecord{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.DayRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DayRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *DayRecordRepository) Create(record *models.DayRecord) error {
	return repo.database.Create(record).Error
}

// UpsertLedger writes the ledger fields for (userID, date). Only the four
// ledger columns are overwritten on an existing row; everything else on the
// record is preserved, so concurrent writers lose at most per-field.
func (repo *DayRecordRepository) UpsertLedger(userID uint, date string, productive int, personal int, sleep int, activities []models.Activity) error {
	if activities == nil {
		activities = []models.Activity{}
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		var record models.DayRecord
		result := tx.
			Where("user_id = ? AND date = ?", userID, date).
			Limit(1).
			Find(&record)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			record = models.DayRecord{
				UserID:     userID,
				Date:       date,
				Productive: productive,
				Personal:   personal,
				Sleep:      sleep,
				Activities: activities,
			}
			return tx.Create(&record).Error
		}

		record.Productive = productive
		record.Personal = personal
		record.Sleep = sleep
		record.Activities = activities
		return tx.Model(&record).
			Select("productive", "personal", "sleep", "activities").
			Updates(&record).Error
	})
}
