package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/satriadp/eightify/internal/models"
)

var (
	ErrEmptyActivityName    = errors.New("activity name required")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrActivityInProgress   = errors.New("an activity is already in progress")
	ErrNoActivityInProgress = errors.New("no activity in progress")
)

const dateLayout = "2006-01-02"

// Guest ledgers ride a browser-session cookie, so a guest tracker untouched
// for a full day belongs to a closed tab. The sweep reclaims it, timer and
// stored ledger included; anonymous visitors must not accumulate state
// forever. Account trackers stay: their ledgers are durable and bounded by
// the user table.
const guestIdleTTL = 24 * time.Hour

// InProgressActivity is the single transient slot between start and stop.
// It is never persisted: a process interruption loses it.
type InProgressActivity struct {
	Name      string
	Category  string
	StartedAt time.Time
}

// CurrentActivity is the display view of the in-progress slot. Elapsed is
// the tick-driven value; the recorded duration is recomputed from wall-clock
// time at stop regardless of it.
type CurrentActivity struct {
	Name           string
	Category       string
	StartedAt      int64 // epoch milliseconds
	ElapsedSeconds int
}

type TrackerSnapshot struct {
	Ledger  Ledger
	Current *CurrentActivity
}

type tracker struct {
	key        StoreKey
	ledger     Ledger
	inProgress *InProgressActivity
	timer      *Timer
	elapsed    int
	lastSeen   time.Time
}

type sessionDropper interface {
	Drop(sessionID string)
}

// TrackerService owns the per-principal daily ledgers and the start/stop
// state machine. All mutation happens under one mutex, so a ledger is never
// observed mid-update. Store failures are logged and swallowed: the
// in-memory ledger stays authoritative for the running process.
type TrackerService struct {
	mu       sync.Mutex
	trackers map[string]*tracker
	durable  LedgerStore
	guest    LedgerStore
	location *time.Location
	clock    func() time.Time
}

func NewTrackerService(durable LedgerStore, guest LedgerStore, location *time.Location) *TrackerService {
	if location == nil {
		location = time.UTC
	}
	return &TrackerService{
		trackers: make(map[string]*tracker),
		durable:  durable,
		guest:    guest,
		location: location,
		clock:    time.Now,
	}
}

// Today is the current calendar date in the service's location.
func (service *TrackerService) Today() string {
	return service.clock().In(service.location).Format(dateLayout)
}

// StartActivity fills the in-progress slot and starts the display timer.
// A running activity is left untouched when a second start arrives.
func (service *TrackerService) StartActivity(key StoreKey, category string, name string) (InProgressActivity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return InProgressActivity{}, ErrEmptyActivityName
	}
	if !models.IsValidCategory(category) {
		return InProgressActivity{}, ErrInvalidCategory
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	tracked := service.trackerLocked(key)
	if tracked.inProgress != nil {
		return InProgressActivity{}, ErrActivityInProgress
	}

	now := service.clock()
	tracked.inProgress = &InProgressActivity{
		Name:      name,
		Category:  category,
		StartedAt: now,
	}
	tracked.elapsed = 0
	tracked.timer.Start(time.Second, now, func(elapsed time.Duration) {
		service.mu.Lock()
		tracked.elapsed = int(elapsed / time.Second)
		service.mu.Unlock()
	})

	return *tracked.inProgress, nil
}

// StopActivity converts the in-progress slot into a completed activity,
// applies it to the ledger and persists through the active store. This is
// the only path that mutates totals.
func (service *TrackerService) StopActivity(key StoreKey) (models.Activity, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	tracked := service.trackerLocked(key)
	if tracked.inProgress == nil {
		return models.Activity{}, ErrNoActivityInProgress
	}

	now := service.clock()
	duration := int(now.Sub(tracked.inProgress.StartedAt) / time.Second)
	if duration < 0 {
		duration = 0
	}

	activity := models.Activity{
		Name:      tracked.inProgress.Name,
		Category:  tracked.inProgress.Category,
		Duration:  duration,
		Timestamp: tracked.inProgress.StartedAt.UnixMilli(),
		Date:      tracked.ledger.Date,
	}
	tracked.ledger.Apply(activity)
	tracked.inProgress = nil
	tracked.elapsed = 0
	tracked.timer.Stop()

	if err := service.storeFor(key).Save(key, tracked.ledger); err != nil {
		log.Printf("save ledger for %s failed, keeping in-memory state: %v", key, err)
	}

	return activity, nil
}

func (service *TrackerService) Snapshot(key StoreKey) TrackerSnapshot {
	service.mu.Lock()
	defer service.mu.Unlock()

	tracked := service.trackerLocked(key)
	snapshot := TrackerSnapshot{Ledger: tracked.ledger.Snapshot()}
	if tracked.inProgress != nil {
		snapshot.Current = &CurrentActivity{
			Name:           tracked.inProgress.Name,
			Category:       tracked.inProgress.Category,
			StartedAt:      tracked.inProgress.StartedAt.UnixMilli(),
			ElapsedSeconds: tracked.elapsed,
		}
	}
	return snapshot
}

// DropSession discards a principal's in-memory tracker and, for guests, the
// session's stored ledger. Used on sign-out and when the device's last-reset
// marker shows the session data belongs to a previous day.
func (service *TrackerService) DropSession(key StoreKey) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if tracked, found := service.trackers[key.String()]; found {
		tracked.timer.Stop()
		delete(service.trackers, key.String())
	}
	if key.Guest() {
		if dropper, ok := service.guest.(sessionDropper); ok {
			dropper.Drop(key.SessionID)
		}
	}
}

// StartRolloverSweep launches the minute-resolution day-boundary check,
// which also reclaims guest trackers idle past guestIdleTTL. Rollover is
// applied at every access too, so the sweep only matters for idle trackers.
// A wall clock adjusted backward can reset a day twice; that matches the
// accepted limitation of the date-marker design.
func (service *TrackerService) StartRolloverSweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.sweepStaleLedgers()
			}
		}
	}()
}

func (service *TrackerService) sweepStaleLedgers() {
	service.mu.Lock()
	defer service.mu.Unlock()

	today := service.Today()
	now := service.clock()
	for id, tracked := range service.trackers {
		if tracked.key.Guest() && now.Sub(tracked.lastSeen) >= guestIdleTTL {
			service.evictLocked(id, tracked)
			continue
		}
		if tracked.ledger.Date != today {
			service.resetForNewDayLocked(tracked, today)
		}
	}
}

// evictLocked reclaims an abandoned guest tracker: its timer goroutine, its
// map entry and its stored session ledger. Caller holds service.mu.
func (service *TrackerService) evictLocked(id string, tracked *tracker) {
	tracked.timer.Stop()
	delete(service.trackers, id)
	if dropper, ok := service.guest.(sessionDropper); ok {
		dropper.Drop(tracked.key.SessionID)
	}
}

func (service *TrackerService) storeFor(key StoreKey) LedgerStore {
	if key.Guest() {
		return service.guest
	}
	return service.durable
}

// trackerLocked returns the live tracker for key, restoring it from its
// store on first access and superseding the ledger when the date rolled
// over. Caller holds service.mu.
func (service *TrackerService) trackerLocked(key StoreKey) *tracker {
	today := service.Today()

	tracked, found := service.trackers[key.String()]
	if found {
		tracked.lastSeen = service.clock()
		if tracked.ledger.Date != today {
			service.resetForNewDayLocked(tracked, today)
		}
		return tracked
	}

	ledger, restored, err := service.storeFor(key).Load(key, today)
	if err != nil {
		log.Printf("load ledger for %s failed, starting empty: %v", key, err)
		restored = false
	}
	if !restored {
		ledger = EmptyLedger(today)
		// Write the fresh ledger back so the day's document exists remotely.
		if err := service.storeFor(key).Save(key, ledger); err != nil {
			log.Printf("materialize ledger for %s failed: %v", key, err)
		}
	}

	tracked = &tracker{key: key, ledger: ledger, timer: NewTimer(), lastSeen: service.clock()}
	service.trackers[key.String()] = tracked
	return tracked
}

// resetForNewDayLocked supersedes the ledger with an empty one for today.
// The in-progress slot survives rollover: stopping after midnight records
// the activity on the new day, as the stopwatch kept running.
func (service *TrackerService) resetForNewDayLocked(tracked *tracker, today string) {
	tracked.ledger = EmptyLedger(today)
	if err := service.storeFor(tracked.key).Save(tracked.key, tracked.ledger); err != nil {
		log.Printf("save reset ledger for %s failed: %v", tracked.key, err)
	}
}
