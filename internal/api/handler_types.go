package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satriadp/eightify/internal/db"
	"github.com/satriadp/eightify/internal/models"
	"github.com/satriadp/eightify/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "eightify_auth"

	// The guest ledger rides a session cookie while its reset marker rides
	// a long-lived one: the marker must outlive the tab so a new session
	// on the same device still detects that the day rolled over.
	guestCookieName     = "eightify_guest"
	lastResetCookieName = "eightify_last_reset"

	contextUserKey  = "current_user"
	contextStoreKey = "store_key"

	guestSessionIDLength = 32
	lastResetCookieTTL   = 365 * 24 * time.Hour

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool

	repositories   *db.Repositories
	authService    *services.AuthService
	trackerService *services.TrackerService
	circleService  *services.CircleService

	joinLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	durableStore := services.NewDurableLedgerStore(repositories.DayRecords)
	guestStore := services.NewGuestLedgerStore()

	return &Handler{
		db:             database,
		secretKey:      []byte(secretKey),
		location:       location,
		cookieSecure:   cookieSecure,
		repositories:   repositories,
		authService:    services.NewAuthService(repositories.Users),
		trackerService: services.NewTrackerService(durableStore, guestStore, location),
		circleService:  services.NewCircleService(repositories.Circles, repositories.DayRecords, repositories.Users),
		joinLimiter:    newAttemptLimiter(),
	}
}

// TrackerService exposes the tracker for lifecycle wiring in main.
func (handler *Handler) TrackerService() *services.TrackerService {
	return handler.trackerService
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentStoreKey(c *fiber.Ctx) (services.StoreKey, bool) {
	key, ok := c.Locals(contextStoreKey).(services.StoreKey)
	return key, ok
}
