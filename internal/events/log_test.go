package events

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed testdata/schema.sql
var testSchema string

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func TestEventLog_Append(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	e := VideoTranscoded{
		BaseEvent: NewBaseEvent(TypeVideoTranscoded, "video", 7),
		Path:      "/media/movies/Example/example.mp4",
		Hash:      "abc",
	}
	id, err := log.Append(e)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id == 0 {
		t.Error("Append should return the row id")
	}

	raw, err := log.ForEntity("video", 7)
	if err != nil {
		t.Fatalf("ForEntity: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("len(raw) = %d, want 1", len(raw))
	}
	if raw[0].EventType != TypeVideoTranscoded {
		t.Errorf("EventType = %q", raw[0].EventType)
	}

	var decoded VideoTranscoded
	if err := json.Unmarshal([]byte(raw[0].Payload), &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.Hash != "abc" {
		t.Errorf("payload Hash = %q, want abc", decoded.Hash)
	}
}

func TestEventLog_Recent(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	for i := int64(1); i <= 5; i++ {
		e := EntryAdded{BaseEvent: NewBaseEvent(TypeEntryAdded, "entry", i), EntryID: i}
		if _, err := log.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := log.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].EntityID != 5 || got[2].EntityID != 3 {
		t.Errorf("entity ids = %d..%d, want 5..3", got[0].EntityID, got[2].EntityID)
	}
}

func TestEventLog_Since(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	old := SyncStarted{BaseEvent: BaseEvent{
		Type: TypeSyncStarted, Entity: "sync", Timestamp: time.Now().Add(-48 * time.Hour),
	}}
	recent := SyncStarted{BaseEvent: NewBaseEvent(TypeSyncStarted, "sync", 0)}
	for _, e := range []Event{old, recent} {
		if _, err := log.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := log.Since(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(got) = %d, want 1", len(got))
	}
}

func TestEventLog_Prune(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	old := SyncCompleted{BaseEvent: BaseEvent{
		Type: TypeSyncCompleted, Entity: "sync", Timestamp: time.Now().Add(-72 * time.Hour),
	}}
	recent := SyncCompleted{BaseEvent: NewBaseEvent(TypeSyncCompleted, "sync", 0)}
	for _, e := range []Event{old, recent} {
		if _, err := log.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	pruned, err := log.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}

func TestBus_PersistsToLog(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	bus := NewBus(log, nil)
	defer func() { _ = bus.Close() }()

	e := EntryAdded{BaseEvent: NewBaseEvent(TypeEntryAdded, "entry", 3), EntryID: 3, Title: "Example Media"}
	if err := bus.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	raw, err := log.ForEntity("entry", 3)
	if err != nil {
		t.Fatalf("ForEntity: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("len(raw) = %d, want 1", len(raw))
	}
}
