// Package reconcile diffs a scanned catalog against persisted identity
// hashes. All decisions are set-based on content identity: anything scanned
// but not persisted is new, any persisted video not scanned is stale.
package reconcile

import (
	"sort"

	"github.com/okvist/filmhaus/internal/scan"
)

// VideoItem pairs a new video with its parent entry's identity hash. The
// video's own hash is independent of the parent: a video under a freshly
// inserted entry is still matched by its own hash.
type VideoItem struct {
	EntryHash string
	Video     scan.Video
}

// Entries returns the scanned entries whose identity hash is not yet
// persisted. Entries are never deleted by the pipeline; removal is
// video-granular.
func Entries(scanned []*scan.Entry, persisted map[string]struct{}) []*scan.Entry {
	var out []*scan.Entry
	for _, e := range scanned {
		if e.Hash == "" {
			continue
		}
		if _, ok := persisted[e.Hash]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// Videos splits the scanned video set against the persisted one: new videos
// proceed to classification, stale hashes (persisted but no longer on disk)
// are deleted from the store. Running twice over an unchanged tree yields
// zero new and zero stale on the second run.
func Videos(scanned []*scan.Entry, persisted map[string]struct{}) (newVideos []VideoItem, stale []string) {
	local := make(map[string]struct{})
	for _, e := range scanned {
		for _, v := range e.AllVideos() {
			if v.Hash == "" {
				continue
			}
			local[v.Hash] = struct{}{}
			if _, ok := persisted[v.Hash]; !ok {
				newVideos = append(newVideos, VideoItem{EntryHash: e.Hash, Video: v})
			}
		}
	}
	for h := range persisted {
		if _, ok := local[h]; !ok {
			stale = append(stale, h)
		}
	}
	sort.Strings(stale) // deterministic delete order
	return newVideos, stale
}
