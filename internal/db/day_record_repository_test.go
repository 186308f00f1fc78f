package db

import (
	"path/filepath"
	"testing"

	"github.com/satriadp/eightify/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return database
}

func TestDayRecordFindAbsent(t *testing.T) {
	t.Parallel()
	repo := NewDayRecordRepository(openTestDatabase(t))

	_, found, err := repo.FindByUserAndDate(1, "2024-01-01")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found {
		t.Fatal("expected no record for an empty database")
	}
}

func TestUpsertLedgerCreatesThenUpdates(t *testing.T) {
	t.Parallel()
	repo := NewDayRecordRepository(openTestDatabase(t))

	activities := []models.Activity{
		{Name: "writing", Category: models.CategoryProductive, Duration: 600, Timestamp: 100, Date: "2024-01-01"},
		{Name: "lunch", Category: models.CategoryPersonal, Duration: 1800, Timestamp: 200, Date: "2024-01-01"},
	}
	if err := repo.UpsertLedger(1, "2024-01-01", 600, 1800, 0, activities); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	record, found, err := repo.FindByUserAndDate(1, "2024-01-01")
	if err != nil || !found {
		t.Fatalf("expected record after upsert, found=%v err=%v", found, err)
	}
	if record.Productive != 600 || record.Personal != 1800 || record.Sleep != 0 {
		t.Fatalf("unexpected totals: %+v", record)
	}
	if len(record.Activities) != 2 || record.Activities[0].Name != "writing" || record.Activities[1].Name != "lunch" {
		t.Fatalf("activity order not preserved: %+v", record.Activities)
	}

	activities = append(activities, models.Activity{
		Name: "nap", Category: models.CategorySleep, Duration: 900, Timestamp: 300, Date: "2024-01-01",
	})
	if err := repo.UpsertLedger(1, "2024-01-01", 600, 1800, 900, activities); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	updated, found, err := repo.FindByUserAndDate(1, "2024-01-01")
	if err != nil || !found {
		t.Fatalf("expected record after second upsert, found=%v err=%v", found, err)
	}
	if updated.ID != record.ID {
		t.Fatalf("upsert created a second row: %d vs %d", updated.ID, record.ID)
	}
	if updated.Sleep != 900 || len(updated.Activities) != 3 {
		t.Fatalf("unexpected updated record: %+v", updated)
	}
}

func TestUpsertLedgerWritesZeroTotals(t *testing.T) {
	t.Parallel()
	repo := NewDayRecordRepository(openTestDatabase(t))

	if err := repo.UpsertLedger(1, "2024-01-01", 600, 0, 0, []models.Activity{
		{Name: "writing", Category: models.CategoryProductive, Duration: 600},
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// A day reset writes zeroes; the update path must not skip them.
	if err := repo.UpsertLedger(1, "2024-01-01", 0, 0, 0, nil); err != nil {
		t.Fatalf("zeroing upsert: %v", err)
	}

	record, found, err := repo.FindByUserAndDate(1, "2024-01-01")
	if err != nil || !found {
		t.Fatalf("expected record, found=%v err=%v", found, err)
	}
	if record.Productive != 0 || len(record.Activities) != 0 {
		t.Fatalf("zero values were not written: %+v", record)
	}
}

func TestUpsertLedgerScopesByUserAndDate(t *testing.T) {
	t.Parallel()
	repo := NewDayRecordRepository(openTestDatabase(t))

	if err := repo.UpsertLedger(1, "2024-01-01", 600, 0, 0, nil); err != nil {
		t.Fatalf("upsert user 1: %v", err)
	}
	if err := repo.UpsertLedger(2, "2024-01-01", 1200, 0, 0, nil); err != nil {
		t.Fatalf("upsert user 2: %v", err)
	}
	if err := repo.UpsertLedger(1, "2024-01-02", 300, 0, 0, nil); err != nil {
		t.Fatalf("upsert next day: %v", err)
	}

	record, _, err := repo.FindByUserAndDate(1, "2024-01-01")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record.Productive != 600 {
		t.Fatalf("other rows bled into (1, 2024-01-01): %+v", record)
	}
}
