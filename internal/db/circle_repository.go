package db

import (
	"github.com/satriadp/eightify/internal/models"
	"gorm.io/gorm"
)

type CircleRepository struct {
	database *gorm.DB
}

func NewCircleRepository(database *gorm.DB) *CircleRepository {
	return &CircleRepository{database: database}
}

func (repo *CircleRepository) Create(circle *models.Circle) error {
	return repo.database.Create(circle).Error
}

func (repo *CircleRepository) FindByID(circleID string) (models.Circle, bool, error) {
	circle := models.Circle{}
	result := repo.database.
		Where("id = ?", circleID).
		Limit(1).
		Find(&circle)
	if result.Error != nil {
		return models.Circle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Circle{}, false, nil
	}
	return circle, true, nil
}

func (repo *CircleRepository) FindByInviteCode(code string) (models.Circle, bool, error) {
	circle := models.Circle{}
	result := repo.database.
		Where("invite_code = ?", code).
		Limit(1).
		Find(&circle)
	if result.Error != nil {
		return models.Circle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Circle{}, false, nil
	}
	return circle, true, nil
}

// AddMember appends userID to the circle's member set inside a transaction.
// The membership list is re-read under the transaction, so two concurrent
// joins by different users both land and a duplicate join is a no-op.
// Returns false when the user was already a member.
func (repo *CircleRepository) AddMember(circleID string, userID uint) (bool, error) {
	added := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var circle models.Circle
		if err := tx.Where("id = ?", circleID).First(&circle).Error; err != nil {
			return err
		}
		if circle.HasMember(userID) {
			return nil
		}

		circle.Members = append(circle.Members, userID)
		if err := tx.Model(&circle).Select("members").Updates(&circle).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (repo *CircleRepository) CreateMembership(membership *models.CircleMembership) error {
	return repo.database.Create(membership).Error
}

func (repo *CircleRepository) ListMembershipsByUser(userID uint) ([]models.CircleMembership, error) {
	memberships := make([]models.CircleMembership, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("joined_at ASC, id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
