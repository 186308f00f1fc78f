package services

import (
	"strings"

	"github.com/satriadp/eightify/internal/models"
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateProfile(userID uint, displayName string, photoURL string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) RegistrationEmailExists(email string) (bool, error) {
	return service.users.ExistsByNormalizedEmail(email)
}

func (service *AuthService) CreateUser(user *models.User) error {
	return service.users.Create(user)
}

func (service *AuthService) FindByNormalizedEmail(email string) (models.User, error) {
	return service.users.FindByNormalizedEmail(email)
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// UpsertProfile refreshes the profile mirror on sign-in. Blank values keep
// whatever is stored; a user with no display name at all falls back to the
// local part of their email so circle views never show an empty author.
func (service *AuthService) UpsertProfile(user *models.User, displayName string, photoURL string) error {
	displayName = strings.TrimSpace(displayName)
	photoURL = strings.TrimSpace(photoURL)

	if displayName == "" {
		displayName = user.DisplayName
	}
	if displayName == "" {
		displayName = emailLocalPart(user.Email)
	}
	if photoURL == "" {
		photoURL = user.PhotoURL
	}

	if displayName == user.DisplayName && photoURL == user.PhotoURL {
		return nil
	}

	if err := service.users.UpdateProfile(user.ID, displayName, photoURL); err != nil {
		return err
	}
	user.DisplayName = displayName
	user.PhotoURL = photoURL
	return nil
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
