package models

// The three tracked categories form a closed set. Every place that
// aggregates totals switches over all of them.
const (
	CategoryProductive = "productive"
	CategoryPersonal   = "personal"
	CategorySleep      = "sleep"
)

func Categories() []string {
	return []string{CategoryProductive, CategoryPersonal, CategorySleep}
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryProductive, CategoryPersonal, CategorySleep:
		return true
	default:
		return false
	}
}

// Activity is a completed tracked activity. It is immutable once created
// and is stored as part of its day record, never on its own.
type Activity struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Duration  int    `json:"duration"`  // whole seconds, floored
	Timestamp int64  `json:"timestamp"` // start time, epoch milliseconds
	Date      string `json:"date"`      // YYYY-MM-DD, local day it belongs to
}
