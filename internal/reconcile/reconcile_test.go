package reconcile

import (
	"reflect"
	"testing"

	"github.com/okvist/filmhaus/internal/scan"
)

func hashSet(hashes ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		m[h] = struct{}{}
	}
	return m
}

func TestEntries(t *testing.T) {
	scanned := []*scan.Entry{
		{Hash: "e1", Title: "Known"},
		{Hash: "e2", Title: "Fresh"},
		{Hash: "", Title: "Broken"}, // no identity: skipped
	}

	got := Entries(scanned, hashSet("e1"))
	if len(got) != 1 || got[0].Hash != "e2" {
		t.Fatalf("Entries = %+v, want only e2", got)
	}

	// Idempotence: nothing new once everything is persisted.
	if got := Entries(scanned, hashSet("e1", "e2")); len(got) != 0 {
		t.Errorf("second reconciliation should be empty, got %+v", got)
	}
}

func TestVideos_SetMath(t *testing.T) {
	// Persisted {a,b,c}, scanned {b,c,d}: new = {d}, stale = {a}.
	scanned := []*scan.Entry{
		{Kind: scan.KindMovie, Hash: "m1", Videos: []scan.Video{{Hash: "b"}, {Hash: "c"}}},
		{Kind: scan.KindMovie, Hash: "m2", Videos: []scan.Video{{Hash: "d"}}},
	}

	newVideos, stale := Videos(scanned, hashSet("a", "b", "c"))

	if len(newVideos) != 1 || newVideos[0].Video.Hash != "d" {
		t.Errorf("new = %+v, want only d", newVideos)
	}
	if newVideos[0].EntryHash != "m2" {
		t.Errorf("EntryHash = %q, want m2", newVideos[0].EntryHash)
	}
	if !reflect.DeepEqual(stale, []string{"a"}) {
		t.Errorf("stale = %v, want [a]", stale)
	}
}

func TestVideos_TVEpisodesCounted(t *testing.T) {
	scanned := []*scan.Entry{
		{Kind: scan.KindTV, Hash: "show", Seasons: []scan.Season{
			{Number: 1, Episodes: []scan.Video{{Hash: "ep1"}, {Hash: "ep2"}}},
		}},
	}

	newVideos, stale := Videos(scanned, hashSet("ep1"))
	if len(newVideos) != 1 || newVideos[0].Video.Hash != "ep2" {
		t.Errorf("new = %+v, want only ep2", newVideos)
	}
	if len(stale) != 0 {
		t.Errorf("stale = %v, want empty", stale)
	}
}

func TestVideos_Idempotent(t *testing.T) {
	scanned := []*scan.Entry{
		{Kind: scan.KindMovie, Hash: "m1", Videos: []scan.Video{{Hash: "v1"}, {Hash: "v2"}}},
	}

	newVideos, stale := Videos(scanned, hashSet("v1", "v2"))
	if len(newVideos) != 0 || len(stale) != 0 {
		t.Errorf("unchanged tree: new = %v, stale = %v, want both empty", newVideos, stale)
	}
}

func TestVideos_NewEntryVideoMatchedByOwnHash(t *testing.T) {
	// The parent entry is brand new, but its video was persisted before
	// (e.g. the title folder was renamed). The video must not be re-added.
	scanned := []*scan.Entry{
		{Kind: scan.KindMovie, Hash: "renamed-entry", Videos: []scan.Video{{Hash: "v1"}}},
	}

	newVideos, stale := Videos(scanned, hashSet("v1"))
	if len(newVideos) != 0 {
		t.Errorf("video identity must not depend on parent identity, got %+v", newVideos)
	}
	if len(stale) != 0 {
		t.Errorf("stale = %v, want empty", stale)
	}
}
