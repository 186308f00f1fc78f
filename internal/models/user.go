package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"not null;default:''"`
	PhotoURL     string    `gorm:"not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}
