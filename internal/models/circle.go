package models

import "time"

const InviteCodeLength = 8

// Circle is a shared group of accounts. Membership is append-only: members
// join through an invite code and are never removed.
type Circle struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null;default:''" json:"description"`
	InviteCode  string    `gorm:"size:8;not null;uniqueIndex" json:"invite_code"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	Members     []uint    `gorm:"serializer:json" json:"members"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (circle Circle) HasMember(userID uint) bool {
	for _, memberID := range circle.Members {
		if memberID == userID {
			return true
		}
	}
	return false
}

// CircleMembership is the per-user back-reference to a joined circle.
type CircleMembership struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_member_circle" json:"user_id"`
	CircleID   string    `gorm:"size:36;not null;uniqueIndex:uidx_member_circle" json:"circle_id"`
	CircleName string    `gorm:"not null;default:''" json:"circle_name"`
	JoinedAt   time.Time `gorm:"not null" json:"joined_at"`
}
