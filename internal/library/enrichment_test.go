package library

import (
	"errors"
	"testing"
	"time"
)

func sampleEnrichment(entryID int64) *Enrichment {
	return &Enrichment{
		EntryID:      entryID,
		TMDBID:       550,
		Overview:     "An insomniac office worker crosses paths with a soap maker.",
		Tagline:      "Mischief. Mayhem. Soap.",
		ReleaseDate:  "1999-10-15",
		Runtime:      139,
		VoteAverage:  8.4,
		VoteCount:    26280,
		PosterPath:   "/poster.jpg",
		BackdropPath: "/backdrop.jpg",
		LogoPath:     "/logo.png",
		Ratings:      []RatingPair{{Rating: "R", Country: "US"}, {Rating: "18", Country: "GB"}},
		Genres:       []string{"Drama", "Thriller"},
		Companies:    []string{"Fox 2000 Pictures"},
		Cast: []CastMember{
			{Name: "Edward Norton", Character: "The Narrator", Order: 0},
			{Name: "Brad Pitt", Character: "Tyler Durden", Order: 1},
		},
	}
}

func TestStore_UpsertEnrichment_Insert(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e := testEntry(t, store, "entry1")
	changed, err := store.UpsertEnrichment(sampleEnrichment(e.ID))
	if err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}
	if !changed {
		t.Error("first upsert must report changed")
	}

	got, err := store.GetEnrichment(e.ID)
	if err != nil {
		t.Fatalf("GetEnrichment: %v", err)
	}
	if got.TMDBID != 550 {
		t.Errorf("core fields = %+v", got)
	}
	if len(got.Ratings) != 2 || got.Ratings[1] != (RatingPair{Rating: "R", Country: "US"}) {
		t.Errorf("Ratings = %v", got.Ratings)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Drama" {
		t.Errorf("Genres = %v", got.Genres)
	}
	if len(got.Cast) != 2 || got.Cast[0].Name != "Edward Norton" {
		t.Errorf("Cast = %v", got.Cast)
	}
}

func TestStore_UpsertEnrichment_UnchangedBumpsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e := testEntry(t, store, "entry1")
	if _, err := store.UpsertEnrichment(sampleEnrichment(e.ID)); err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}
	first, err := store.GetEnrichment(e.ID)
	if err != nil {
		t.Fatalf("GetEnrichment: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	changed, err := store.UpsertEnrichment(sampleEnrichment(e.ID))
	if err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}
	if changed {
		t.Error("identical record must report unchanged")
	}

	second, err := store.GetEnrichment(e.ID)
	if err != nil {
		t.Fatalf("GetEnrichment: %v", err)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Error("unchanged upsert must still advance updated_at")
	}
}

func TestStore_UpsertEnrichment_Update(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e := testEntry(t, store, "entry1")
	if _, err := store.UpsertEnrichment(sampleEnrichment(e.ID)); err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}

	updated := sampleEnrichment(e.ID)
	updated.VoteCount = 30000
	updated.Genres = []string{"Drama"}

	changed, err := store.UpsertEnrichment(updated)
	if err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}
	if !changed {
		t.Error("modified record must report changed")
	}

	got, err := store.GetEnrichment(e.ID)
	if err != nil {
		t.Fatalf("GetEnrichment: %v", err)
	}
	if got.VoteCount != 30000 {
		t.Errorf("VoteCount = %d, want 30000", got.VoteCount)
	}
	if len(got.Genres) != 1 || got.Genres[0] != "Drama" {
		t.Errorf("Genres = %v, want [Drama]", got.Genres)
	}
}

func TestStore_UpsertEnrichment_SharedReferenceRows(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e1 := testEntry(t, store, "entry1")
	e2 := testEntry(t, store, "entry2")

	a := sampleEnrichment(e1.ID)
	b := sampleEnrichment(e2.ID)
	b.TMDBID = 551
	if _, err := store.UpsertEnrichment(a); err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}
	if _, err := store.UpsertEnrichment(b); err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}

	// Both entries share the same genre rows.
	var genreCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM genres").Scan(&genreCount); err != nil {
		t.Fatalf("count genres: %v", err)
	}
	if genreCount != 2 {
		t.Errorf("genres rows = %d, want 2 (shared, not duplicated)", genreCount)
	}

	// Ratings dedupe on (rating, country); "R"/US exists once even though
	// both entries link to it.
	var ratingCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM content_ratings").Scan(&ratingCount); err != nil {
		t.Fatalf("count ratings: %v", err)
	}
	if ratingCount != 2 {
		t.Errorf("content_ratings rows = %d, want 2 (shared, not duplicated)", ratingCount)
	}
	var linkCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM entry_ratings").Scan(&linkCount); err != nil {
		t.Fatalf("count rating links: %v", err)
	}
	if linkCount != 4 {
		t.Errorf("entry_ratings rows = %d, want 4", linkCount)
	}
}

func TestStore_UpsertEnrichment_RatingsReplacedOnUpdate(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e := testEntry(t, store, "entry1")
	if _, err := store.UpsertEnrichment(sampleEnrichment(e.ID)); err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}

	updated := sampleEnrichment(e.ID)
	updated.Ratings = []RatingPair{{Rating: "PG-13", Country: "US"}}
	changed, err := store.UpsertEnrichment(updated)
	if err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}
	if !changed {
		t.Error("new rating set must report changed")
	}

	got, err := store.GetEnrichment(e.ID)
	if err != nil {
		t.Fatalf("GetEnrichment: %v", err)
	}
	if len(got.Ratings) != 1 || got.Ratings[0] != (RatingPair{Rating: "PG-13", Country: "US"}) {
		t.Errorf("Ratings = %v, want only the replacement pair", got.Ratings)
	}
}

func TestStore_UpsertEnrichment_TVSeasons(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e := &Entry{Kind: KindTV, Title: "Example Show", Year: 2019, Hash: "tv1"}
	if err := store.AddEntry(e); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	enr := &Enrichment{
		EntryID:  e.ID,
		TMDBID:   1399,
		Networks: []string{"HBO"},
		Seasons: []SeasonInfo{
			{Number: 1, Name: "Season 1", EpisodeCount: 10, AirDate: "2019-04-14"},
			{Number: 2, Name: "Season 2", EpisodeCount: 10},
		},
	}
	if _, err := store.UpsertEnrichment(enr); err != nil {
		t.Fatalf("UpsertEnrichment: %v", err)
	}

	got, err := store.GetEnrichment(e.ID)
	if err != nil {
		t.Fatalf("GetEnrichment: %v", err)
	}
	if len(got.Seasons) != 2 || got.Seasons[0].EpisodeCount != 10 {
		t.Errorf("Seasons = %v", got.Seasons)
	}
	if len(got.Networks) != 1 || got.Networks[0] != "HBO" {
		t.Errorf("Networks = %v", got.Networks)
	}
}

func TestStore_GetEnrichment_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	e := testEntry(t, store, "entry1")
	_, err := store.GetEnrichment(e.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEnrichment error = %v, want ErrNotFound", err)
	}
}
