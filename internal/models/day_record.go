package models

import "time"

// DayRecord is the durable form of one user's daily ledger. Exactly one row
// exists per (user, date); an absent row means "no activity yet that day".
type DayRecord struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"not null;uniqueIndex:uidx_user_day"`
	Date       string     `gorm:"size:10;not null;uniqueIndex:uidx_user_day"`
	Productive int        `gorm:"not null;default:0"`
	Personal   int        `gorm:"not null;default:0"`
	Sleep      int        `gorm:"not null;default:0"`
	Activities []Activity `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
