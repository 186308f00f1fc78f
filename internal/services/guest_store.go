package services

import "sync"

// GuestLedgerStore keeps guest ledgers in process memory, keyed by the guest
// session id. Data lives exactly as long as the browser session cookie that
// carries the id: a closed tab means a new session and an empty ledger.
type GuestLedgerStore struct {
	mu      sync.Mutex
	ledgers map[string]Ledger
}

func NewGuestLedgerStore() *GuestLedgerStore {
	return &GuestLedgerStore{
		ledgers: make(map[string]Ledger),
	}
}

func (store *GuestLedgerStore) Load(key StoreKey, date string) (Ledger, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	ledger, found := store.ledgers[key.SessionID]
	if !found || ledger.Date != date {
		return Ledger{}, false, nil
	}
	return ledger.Snapshot(), true, nil
}

func (store *GuestLedgerStore) Save(key StoreKey, ledger Ledger) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.ledgers[key.SessionID] = ledger.Snapshot()
	return nil
}

// Drop discards a session's ledger, e.g. when the device's last-reset marker
// shows the data belongs to a previous day, or on sign-out.
func (store *GuestLedgerStore) Drop(sessionID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.ledgers, sessionID)
}
