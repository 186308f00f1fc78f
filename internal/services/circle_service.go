package services

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/satriadp/eightify/internal/models"
	"github.com/satriadp/eightify/internal/security"
)

var (
	ErrEmptyCircleName = errors.New("circle name required")
	ErrCircleNotFound  = errors.New("circle not found")
	ErrAlreadyMember   = errors.New("already a member of this circle")
)

const (
	feedLimit        = 10
	leaderboardLimit = 3
)

type CircleRepository interface {
	Create(circle *models.Circle) error
	FindByID(circleID string) (models.Circle, bool, error)
	FindByInviteCode(code string) (models.Circle, bool, error)
	AddMember(circleID string, userID uint) (bool, error)
	CreateMembership(membership *models.CircleMembership) error
	ListMembershipsByUser(userID uint) ([]models.CircleMembership, error)
}

type CircleDayReader interface {
	FindByUserAndDate(userID uint, date string) (models.DayRecord, bool, error)
}

type CircleProfileReader interface {
	FindByID(userID uint) (models.User, error)
}

type CircleService struct {
	circles  CircleRepository
	days     CircleDayReader
	profiles CircleProfileReader
	clock    func() time.Time
}

func NewCircleService(circles CircleRepository, days CircleDayReader, profiles CircleProfileReader) *CircleService {
	return &CircleService{
		circles:  circles,
		days:     days,
		profiles: profiles,
		clock:    time.Now,
	}
}

// MemberSummary is one member's daily totals for the circle view, in
// member-list order.
type MemberSummary struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	Productive  int    `json:"productive"`
	Personal    int    `json:"personal"`
	Sleep       int    `json:"sleep"`
}

type FeedItem struct {
	Author    string `json:"author"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Duration  int    `json:"duration"`
	Timestamp int64  `json:"timestamp"`
}

type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Productive  int    `json:"productive"`
}

type CircleView struct {
	Circle      models.Circle      `json:"circle"`
	Date        string             `json:"date"`
	Members     []MemberSummary    `json:"members"`
	Feed        []FeedItem         `json:"feed"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// CreateCircle creates a circle owned by (and containing) ownerID, plus the
// owner's membership back-reference. Invite codes are random 8-character
// uppercase tokens; uniqueness is enforced by the store and collisions are
// rare enough that no retry loop exists.
func (service *CircleService) CreateCircle(name string, description string, ownerID uint) (models.Circle, error) {
	name = normalizeCircleName(name)
	if name == "" {
		return models.Circle{}, ErrEmptyCircleName
	}

	inviteCode, err := security.RandomString(models.InviteCodeLength, security.AlphabetInviteCode)
	if err != nil {
		return models.Circle{}, err
	}

	now := service.clock()
	circle := models.Circle{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		InviteCode:  inviteCode,
		CreatedBy:   ownerID,
		Members:     []uint{ownerID},
		CreatedAt:   now,
	}
	if err := service.circles.Create(&circle); err != nil {
		return models.Circle{}, err
	}

	membership := models.CircleMembership{
		UserID:     ownerID,
		CircleID:   circle.ID,
		CircleName: circle.Name,
		JoinedAt:   now,
	}
	if err := service.circles.CreateMembership(&membership); err != nil {
		return models.Circle{}, err
	}

	return circle, nil
}

// JoinCircle adds userID to the circle matching the invite code. Joining a
// circle you already belong to reports ErrAlreadyMember and changes nothing.
func (service *CircleService) JoinCircle(code string, userID uint) (models.Circle, error) {
	code = normalizeInviteCode(code)
	if code == "" {
		return models.Circle{}, ErrCircleNotFound
	}

	circle, found, err := service.circles.FindByInviteCode(code)
	if err != nil {
		return models.Circle{}, err
	}
	if !found {
		return models.Circle{}, ErrCircleNotFound
	}
	if circle.HasMember(userID) {
		return models.Circle{}, ErrAlreadyMember
	}

	added, err := service.circles.AddMember(circle.ID, userID)
	if err != nil {
		return models.Circle{}, err
	}
	if !added {
		// Lost a race against our own concurrent join; same answer.
		return models.Circle{}, ErrAlreadyMember
	}

	membership := models.CircleMembership{
		UserID:     userID,
		CircleID:   circle.ID,
		CircleName: circle.Name,
		JoinedAt:   service.clock(),
	}
	if err := service.circles.CreateMembership(&membership); err != nil {
		return models.Circle{}, err
	}

	joined, found, err := service.circles.FindByID(circle.ID)
	if err != nil || !found {
		// Membership is already recorded; fall back to the pre-join read.
		circle.Members = append(circle.Members, userID)
		return circle, nil
	}
	return joined, nil
}

func (service *CircleService) ListMemberships(userID uint) ([]models.CircleMembership, error) {
	return service.circles.ListMembershipsByUser(userID)
}

// LoadCircleView fetches every member's profile and day record concurrently
// and derives the merged feed and leaderboard. Latency is bounded by the
// slowest single fetch, not the sum.
func (service *CircleService) LoadCircleView(circleID string, date string) (CircleView, error) {
	circle, found, err := service.circles.FindByID(circleID)
	if err != nil {
		return CircleView{}, err
	}
	if !found {
		return CircleView{}, ErrCircleNotFound
	}

	members := make([]MemberSummary, len(circle.Members))
	activities := make([][]models.Activity, len(circle.Members))

	var wg sync.WaitGroup
	for index, memberID := range circle.Members {
		wg.Add(1)
		go func(index int, memberID uint) {
			defer wg.Done()
			members[index], activities[index] = service.fetchMember(memberID, date)
		}(index, memberID)
	}
	wg.Wait()

	return CircleView{
		Circle:      circle,
		Date:        date,
		Members:     members,
		Feed:        buildFeed(members, activities),
		Leaderboard: buildLeaderboard(members),
	}, nil
}

// fetchMember never fails the whole view: a missing profile shows as
// "Unknown" and a missing day record as an empty ledger.
func (service *CircleService) fetchMember(memberID uint, date string) (MemberSummary, []models.Activity) {
	summary := MemberSummary{
		UserID:      memberID,
		DisplayName: "Unknown",
	}

	profile, err := service.profiles.FindByID(memberID)
	if err == nil {
		if profile.DisplayName != "" {
			summary.DisplayName = profile.DisplayName
		}
		summary.PhotoURL = profile.PhotoURL
	} else {
		log.Printf("load profile for member %d failed: %v", memberID, err)
	}

	record, found, err := service.days.FindByUserAndDate(memberID, date)
	if err != nil {
		log.Printf("load day record for member %d failed: %v", memberID, err)
		return summary, nil
	}
	if !found {
		return summary, nil
	}

	summary.Productive = record.Productive
	summary.Personal = record.Personal
	summary.Sleep = record.Sleep
	return summary, record.Activities
}

// buildFeed flattens all members' activities tagged with the author name,
// newest first, capped. Equal timestamps keep member-then-insertion order
// (stable sort).
func buildFeed(members []MemberSummary, activities [][]models.Activity) []FeedItem {
	feed := make([]FeedItem, 0)
	for index, memberActivities := range activities {
		for _, activity := range memberActivities {
			feed = append(feed, FeedItem{
				Author:    members[index].DisplayName,
				Name:      activity.Name,
				Category:  activity.Category,
				Duration:  activity.Duration,
				Timestamp: activity.Timestamp,
			})
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp > feed[j].Timestamp
	})
	if len(feed) > feedLimit {
		feed = feed[:feedLimit]
	}
	return feed
}

// buildLeaderboard ranks members by productive seconds, top three. Ties keep
// fetch order (stable sort).
func buildLeaderboard(members []MemberSummary) []LeaderboardEntry {
	ranked := make([]LeaderboardEntry, 0, len(members))
	for _, member := range members {
		ranked = append(ranked, LeaderboardEntry{
			UserID:      member.UserID,
			DisplayName: member.DisplayName,
			Productive:  member.Productive,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Productive > ranked[j].Productive
	})
	if len(ranked) > leaderboardLimit {
		ranked = ranked[:leaderboardLimit]
	}
	return ranked
}

func normalizeCircleName(name string) string {
	return strings.TrimSpace(name)
}

func normalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
