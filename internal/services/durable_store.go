package services

import (
	"errors"

	"github.com/satriadp/eightify/internal/models"
)

var errDurableStoreRequiresAccount = errors.New("durable store requires an account key")

type DurableDayRepository interface {
	FindByUserAndDate(userID uint, date string) (models.DayRecord, bool, error)
	UpsertLedger(userID uint, date string, productive int, personal int, sleep int, activities []models.Activity) error
}

// DurableLedgerStore persists ledgers per (account, date). Saves are
// merge-upserts: only the ledger fields are overwritten, any other columns
// on the row survive. Two devices writing the same day race per-field, last
// writer wins; that is the accepted consistency model.
type DurableLedgerStore struct {
	days DurableDayRepository
}

func NewDurableLedgerStore(days DurableDayRepository) *DurableLedgerStore {
	return &DurableLedgerStore{days: days}
}

func (store *DurableLedgerStore) Load(key StoreKey, date string) (Ledger, bool, error) {
	if key.Guest() {
		return Ledger{}, false, errDurableStoreRequiresAccount
	}

	record, found, err := store.days.FindByUserAndDate(key.UserID, date)
	if err != nil {
		return Ledger{}, false, err
	}
	if !found {
		return Ledger{}, false, nil
	}

	// Partial writes happen; absent fields scan as zero values and a nil
	// activity list is normalized to empty.
	ledger := Ledger{
		Date:       date,
		Productive: record.Productive,
		Personal:   record.Personal,
		Sleep:      record.Sleep,
		Activities: record.Activities,
	}
	if ledger.Activities == nil {
		ledger.Activities = []models.Activity{}
	}
	return ledger, true, nil
}

func (store *DurableLedgerStore) Save(key StoreKey, ledger Ledger) error {
	if key.Guest() {
		return errDurableStoreRequiresAccount
	}
	return store.days.UpsertLedger(key.UserID, ledger.Date, ledger.Productive, ledger.Personal, ledger.Sleep, ledger.Activities)
}
