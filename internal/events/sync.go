// internal/events/sync.go
package events

// Event type names for subscription.
const (
	TypeSyncStarted       = "sync.started"
	TypeSyncCompleted     = "sync.completed"
	TypeEntryAdded        = "entry.added"
	TypeVideoAdded        = "video.added"
	TypeVideoRemoved      = "video.removed"
	TypeVideoTranscoded   = "video.transcoded"
	TypeEnrichmentApplied = "enrichment.applied"
)

// SyncStarted is emitted when a catalog sync begins.
type SyncStarted struct {
	BaseEvent
	JobID string `json:"job_id"`
}

// SyncCompleted is emitted when a catalog sync finishes, successfully or
// not.
type SyncCompleted struct {
	BaseEvent
	JobID           string `json:"job_id"`
	EntriesScanned  int    `json:"entries_scanned"`
	EntriesInserted int    `json:"entries_inserted"`
	VideosInserted  int    `json:"videos_inserted"`
	VideosRemoved   int    `json:"videos_removed"`
	Transcoded      int    `json:"transcoded"`
	Enriched        int    `json:"enriched"`
	Error           string `json:"error,omitempty"`
}

// EntryAdded is emitted when a new movie or show lands in the catalog.
type EntryAdded struct {
	BaseEvent
	EntryID int64  `json:"entry_id"`
	Kind    string `json:"kind"` // "movie" or "tv"
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Hash    string `json:"hash"`
}

// VideoAdded is emitted when a video file is persisted.
type VideoAdded struct {
	BaseEvent
	VideoID    int64  `json:"video_id"`
	EntryID    int64  `json:"entry_id"`
	Hash       string `json:"hash"`
	Resolution string `json:"resolution"`
	Subtitles  int    `json:"subtitles"`
}

// VideoRemoved is emitted when stale video rows are reconciled away.
type VideoRemoved struct {
	BaseEvent
	Hashes []string `json:"hashes"`
}

// VideoTranscoded is emitted after a successful conversion to mp4.
type VideoTranscoded struct {
	BaseEvent
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// EnrichmentApplied is emitted when external metadata changes an entry.
type EnrichmentApplied struct {
	BaseEvent
	EntryID int64 `json:"entry_id"`
	TMDBID  int64 `json:"tmdb_id"`
}
