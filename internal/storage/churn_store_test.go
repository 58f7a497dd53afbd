package storage

import (
	"testing"

	"codehealth/internal/gitdata"
	"codehealth/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	db, err := Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChurnStoreRoundTrip(t *testing.T) {
	store := NewChurnStore(testDB(t))

	snap := &gitdata.Snapshot{
		Head:       "abc123",
		PeriodDays: 90,
		Files: map[string]gitdata.FileChurn{
			"pkg/parser.go": {Commits: 3, Authors: map[string]int{"ada": 2, "grace": 1}},
		},
	}
	if err := store.Put(snap); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get("abc123", 90)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached snapshot")
	}
	if got.Files["pkg/parser.go"].Commits != 3 {
		t.Errorf("unexpected commits: %d", got.Files["pkg/parser.go"].Commits)
	}
	if got.Files["pkg/parser.go"].Authors["ada"] != 2 {
		t.Errorf("unexpected author counts: %v", got.Files["pkg/parser.go"].Authors)
	}
}

func TestChurnStoreMissIsNil(t *testing.T) {
	store := NewChurnStore(testDB(t))

	got, err := store.Get("unknown", 90)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on cache miss, got %+v", got)
	}
}

func TestChurnStoreKeyedByPeriod(t *testing.T) {
	store := NewChurnStore(testDB(t))

	snap := &gitdata.Snapshot{Head: "abc123", PeriodDays: 90, Files: map[string]gitdata.FileChurn{}}
	if err := store.Put(snap); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get("abc123", 30)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected miss for a different period")
	}
}

func TestRecordRun(t *testing.T) {
	db := testDB(t)
	store := NewChurnStore(db)

	if err := store.RecordRun("run-1", "abc123", 42, 2); err != nil {
		t.Fatalf("record: %v", err)
	}

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM analysis_runs").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 run row, got %d", count)
	}
}
