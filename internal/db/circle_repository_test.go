package db

import (
	"testing"
	"time"

	"github.com/satriadp/eightify/internal/models"
)

func seedCircle(t *testing.T, repo *CircleRepository) models.Circle {
	t.Helper()

	circle := models.Circle{
		ID:         "circle-1",
		Name:       "Morning Club",
		InviteCode: "AAAA1111",
		CreatedBy:  1,
		Members:    []uint{1},
		CreatedAt:  time.Now(),
	}
	if err := repo.Create(&circle); err != nil {
		t.Fatalf("seed circle: %v", err)
	}
	return circle
}

func TestCircleFindByInviteCode(t *testing.T) {
	t.Parallel()
	repo := NewCircleRepository(openTestDatabase(t))
	seeded := seedCircle(t, repo)

	circle, found, err := repo.FindByInviteCode("AAAA1111")
	if err != nil || !found {
		t.Fatalf("expected circle, found=%v err=%v", found, err)
	}
	if circle.ID != seeded.ID || circle.Name != "Morning Club" {
		t.Fatalf("unexpected circle: %+v", circle)
	}

	if _, found, err := repo.FindByInviteCode("ZZZZ9999"); err != nil || found {
		t.Fatalf("expected miss for unknown code, found=%v err=%v", found, err)
	}
}

func TestCircleAddMemberOnlyOnce(t *testing.T) {
	t.Parallel()
	repo := NewCircleRepository(openTestDatabase(t))
	seeded := seedCircle(t, repo)

	added, err := repo.AddMember(seeded.ID, 2)
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if !added {
		t.Fatal("first add should report added")
	}

	added, err = repo.AddMember(seeded.ID, 2)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("second add should be a no-op")
	}

	circle, _, err := repo.FindByID(seeded.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(circle.Members) != 2 {
		t.Fatalf("expected members [1 2], got %v", circle.Members)
	}
}

func TestCircleMembershipsOrderedByJoin(t *testing.T) {
	t.Parallel()
	repo := NewCircleRepository(openTestDatabase(t))

	base := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	first := models.CircleMembership{UserID: 7, CircleID: "circle-a", CircleName: "A", JoinedAt: base}
	second := models.CircleMembership{UserID: 7, CircleID: "circle-b", CircleName: "B", JoinedAt: base.Add(time.Hour)}
	if err := repo.CreateMembership(&second); err != nil {
		t.Fatalf("create membership: %v", err)
	}
	if err := repo.CreateMembership(&first); err != nil {
		t.Fatalf("create membership: %v", err)
	}
	other := models.CircleMembership{UserID: 8, CircleID: "circle-a", CircleName: "A", JoinedAt: base}
	if err := repo.CreateMembership(&other); err != nil {
		t.Fatalf("create membership: %v", err)
	}

	memberships, err := repo.ListMembershipsByUser(7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(memberships) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(memberships))
	}
	if memberships[0].CircleID != "circle-a" || memberships[1].CircleID != "circle-b" {
		t.Fatalf("memberships out of join order: %+v", memberships)
	}
}
