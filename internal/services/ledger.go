package services

import (
	"github.com/satriadp/eightify/internal/models"
)

// DailyGoalSeconds is the fixed 8-hour daily goal applied to every category.
const DailyGoalSeconds = 8 * 60 * 60

// Ledger aggregates one calendar day of completed activities for one
// account or guest session. Category totals always equal the sum of the
// matching activities' durations: the only mutation path is Apply, which
// appends an activity and increments its category in one step.
type Ledger struct {
	Date       string
	Productive int
	Personal   int
	Sleep      int
	Activities []models.Activity
}

func EmptyLedger(date string) Ledger {
	return Ledger{
		Date:       date,
		Activities: []models.Activity{},
	}
}

func (ledger *Ledger) Apply(activity models.Activity) {
	switch activity.Category {
	case models.CategoryProductive:
		ledger.Productive += activity.Duration
	case models.CategoryPersonal:
		ledger.Personal += activity.Duration
	case models.CategorySleep:
		ledger.Sleep += activity.Duration
	default:
		return
	}
	ledger.Activities = append(ledger.Activities, activity)
}

func (ledger Ledger) CategoryTotal(category string) int {
	switch category {
	case models.CategoryProductive:
		return ledger.Productive
	case models.CategoryPersonal:
		return ledger.Personal
	case models.CategorySleep:
		return ledger.Sleep
	default:
		return 0
	}
}

func (ledger Ledger) TotalSeconds() int {
	return ledger.Productive + ledger.Personal + ledger.Sleep
}

// GoalProgress reports progress toward the daily goal as a fraction in [0, 1].
func (ledger Ledger) GoalProgress(category string) float64 {
	progress := float64(ledger.CategoryTotal(category)) / float64(DailyGoalSeconds)
	if progress > 1 {
		return 1
	}
	return progress
}

// Snapshot returns a copy safe to hand out: the activity slice is duplicated
// so callers cannot mutate the live ledger.
func (ledger Ledger) Snapshot() Ledger {
	copied := ledger
	copied.Activities = make([]models.Activity, len(ledger.Activities))
	copy(copied.Activities, ledger.Activities)
	return copied
}
