package services

import (
	"errors"
	"testing"

	"github.com/satriadp/eightify/internal/models"
)

type stubAuthUserRepository struct {
	updates   int
	lastName  string
	lastPhoto string
	updateErr error
}

func (stub *stubAuthUserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	return false, nil
}

func (stub *stubAuthUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	return models.User{}, errors.New("not implemented")
}

func (stub *stubAuthUserRepository) FindByID(userID uint) (models.User, error) {
	return models.User{}, errors.New("not implemented")
}

func (stub *stubAuthUserRepository) Create(user *models.User) error {
	return nil
}

func (stub *stubAuthUserRepository) UpdateProfile(userID uint, displayName string, photoURL string) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	stub.updates++
	stub.lastName = displayName
	stub.lastPhoto = photoURL
	return nil
}

func TestUpsertProfile(t *testing.T) {
	tests := []struct {
		name        string
		user        models.User
		displayName string
		photoURL    string
		wantName    string
		wantPhoto   string
		wantUpdates int
	}{
		{
			name:        "new values are written",
			user:        models.User{ID: 1, Email: "ana@example.com", DisplayName: "ana"},
			displayName: "Ana P",
			photoURL:    "https://example.com/ana.png",
			wantName:    "Ana P",
			wantPhoto:   "https://example.com/ana.png",
			wantUpdates: 1,
		},
		{
			name:        "blank input keeps stored values",
			user:        models.User{ID: 1, Email: "ana@example.com", DisplayName: "ana", PhotoURL: "https://example.com/ana.png"},
			displayName: "  ",
			photoURL:    "",
			wantName:    "ana",
			wantPhoto:   "https://example.com/ana.png",
			wantUpdates: 0,
		},
		{
			name:        "empty profile falls back to email local part",
			user:        models.User{ID: 1, Email: "budi@example.com"},
			displayName: "",
			photoURL:    "",
			wantName:    "budi",
			wantPhoto:   "",
			wantUpdates: 1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := &stubAuthUserRepository{}
			service := NewAuthService(repo)

			user := testCase.user
			if err := service.UpsertProfile(&user, testCase.displayName, testCase.photoURL); err != nil {
				t.Fatalf("upsert profile: %v", err)
			}

			if user.DisplayName != testCase.wantName || user.PhotoURL != testCase.wantPhoto {
				t.Fatalf("user not updated in place: %+v", user)
			}
			if repo.updates != testCase.wantUpdates {
				t.Fatalf("expected %d repository updates, got %d", testCase.wantUpdates, repo.updates)
			}
		})
	}
}

func TestUpsertProfileKeepsUserOnRepositoryError(t *testing.T) {
	repoErr := errors.New("write failed")
	repo := &stubAuthUserRepository{updateErr: repoErr}
	service := NewAuthService(repo)

	user := models.User{ID: 1, Email: "ana@example.com", DisplayName: "ana"}
	if err := service.UpsertProfile(&user, "Ana P", ""); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if user.DisplayName != "ana" {
		t.Fatalf("user mutated despite failed write: %+v", user)
	}
}
