// Package library manages the persisted catalog (entries, videos,
// subtitles, enrichment).
package library

import (
	"time"
)

// EntryKind distinguishes movies from tv shows.
type EntryKind string

const (
	KindMovie EntryKind = "movie"
	KindTV    EntryKind = "tv"
)

// Entry represents one top-level library folder: a movie or a show.
// Hash is the stable identity derived from the folder name; reruns key
// all reconciliation on it.
type Entry struct {
	ID        int64
	Kind      EntryKind
	Title     string
	Year      int
	Hash      string
	AddedAt   time.Time
	UpdatedAt time.Time
}

// Video represents a playable file with its technical metadata.
type Video struct {
	ID          int64
	EntryID     int64
	Path        string
	Hash        string
	Season      *int // nil for movies
	Episode     *int // nil for movies
	VideoCodec  string
	AudioCodec  string
	Extension   string
	Duration    int
	Bitrate     string
	Resolution  string
	Width       int
	Height      int
	AspectRatio float64
	FrameRate   string
	SizeBytes   int64
	Keyframe    string
	AddedAt     time.Time
}

// Subtitle is one resolved subtitle track attached to a video.
type Subtitle struct {
	ID      int64
	VideoID int64
	Path    string
	Lang    string
	Label   string
	Hash    string
}

// CastMember is one credited actor with billing order.
type CastMember struct {
	Name        string
	Character   string
	ProfilePath string
	Order       int
}

// SeasonInfo is per-season metadata for a tv entry.
type SeasonInfo struct {
	Number       int
	Name         string
	Overview     string
	PosterPath   string
	AirDate      string
	EpisodeCount int
}

// RatingPair is one content certification with the country that issued
// it. Pairs are unique per (rating, country) in the reference table.
type RatingPair struct {
	Rating  string
	Country string
}

// Enrichment holds the external metadata attached to an entry. Genres,
// companies, networks, ratings and cast live in reference tables keyed
// by natural key so repeated syncs reuse rows instead of multiplying
// them.
type Enrichment struct {
	EntryID      int64
	TMDBID       int64
	Overview     string
	Tagline      string
	ReleaseDate  string
	Runtime      int
	VoteAverage  float64
	VoteCount    int
	PosterPath   string
	BackdropPath string
	LogoPath     string
	Ratings      []RatingPair
	Genres       []string
	Companies    []string
	Networks     []string
	Cast         []CastMember
	Seasons      []SeasonInfo
	UpdatedAt    time.Time
}
