package services

import "fmt"

// StoreKey identifies who a ledger belongs to: an account (UserID set) or a
// guest browser session (SessionID set).
type StoreKey struct {
	UserID    uint
	SessionID string
}

func AccountKey(userID uint) StoreKey {
	return StoreKey{UserID: userID}
}

func GuestKey(sessionID string) StoreKey {
	return StoreKey{SessionID: sessionID}
}

func (key StoreKey) Guest() bool {
	return key.UserID == 0
}

func (key StoreKey) String() string {
	if key.Guest() {
		return "guest:" + key.SessionID
	}
	return fmt.Sprintf("user:%d", key.UserID)
}

// LedgerStore is the single save/load contract the tracker persists through.
// The ephemeral guest store and the durable account store both implement it;
// the tracker never knows which one it is talking to.
type LedgerStore interface {
	// Load returns the stored ledger for the key and date. Absence is a
	// valid state ("nothing tracked yet"), not an error.
	Load(key StoreKey, date string) (Ledger, bool, error)
	Save(key StoreKey, ledger Ledger) error
}
