// internal/library/testutil_test.go
package library

import (
	"database/sql"
	_ "embed"
	"testing"

	_ "modernc.org/sqlite"
)

//go:embed testdata/schema.sql
var testSchema string

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func testEntry(t *testing.T, s *Store, hash string) *Entry {
	t.Helper()
	e := &Entry{Kind: KindMovie, Title: "Example Media", Year: 2020, Hash: hash}
	if err := s.AddEntry(e); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	return e
}

func testVideo(t *testing.T, s *Store, entryID int64, hash string) *Video {
	t.Helper()
	v := &Video{
		EntryID:    entryID,
		Path:       "/media/movies/Example Media (2020)/example.mp4",
		Hash:       hash,
		VideoCodec: "h264",
		AudioCodec: "aac",
		Extension:  "mp4",
		Duration:   7260,
		Bitrate:    "1500.00 kbps",
		Resolution: "1080p",
		Width:      1920,
		Height:     1080,
		SizeBytes:  1 << 30,
	}
	if err := s.AddVideo(v); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	return v
}
