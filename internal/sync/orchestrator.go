// Package sync drives one catalog synchronization run: scan the library
// roots, reconcile against the store, classify and transcode videos,
// resolve subtitles, and enrich entries with external metadata.
package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okvist/filmhaus/internal/events"
	"github.com/okvist/filmhaus/internal/library"
	"github.com/okvist/filmhaus/internal/probe"
	"github.com/okvist/filmhaus/internal/reconcile"
	"github.com/okvist/filmhaus/internal/scan"
	"github.com/okvist/filmhaus/internal/subtitles"
	"github.com/okvist/filmhaus/internal/tmdb"
)

// Store is the catalog persistence the orchestrator needs.
type Store interface {
	EntryHashes() (map[string]struct{}, error)
	VideoHashes() (map[string]struct{}, error)
	AddEntry(e *library.Entry) error
	EntryByHash(hash string) (*library.Entry, error)
	AddVideo(v *library.Video) error
	ReplaceSubtitles(videoID int64, subs []*library.Subtitle) error
	DeleteVideosByHash(hashes []string) (int64, error)
	EntriesForEnrichment(staleBefore time.Time) ([]*library.Entry, error)
	UpsertEnrichment(e *library.Enrichment) (bool, error)
}

// Prober inspects a video's technical metadata.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.TechMetadata, error)
	Compatible(ctx context.Context, path string) bool
}

// Transcoder converts videos and extracts keyframe stills.
type Transcoder interface {
	ToMP4(ctx context.Context, src string) (string, error)
	Keyframe(ctx context.Context, videoPath, hash string, durationSeconds int) string
}

// SubtitleResolver finds and normalizes a video's subtitle tracks.
type SubtitleResolver interface {
	Resolve(ctx context.Context, videoPath string) []subtitles.Track
}

// Provider resolves external metadata for an entry.
type Provider interface {
	Enrich(ctx context.Context, kind library.EntryKind, title string, year int) (*library.Enrichment, error)
}

// Config carries the per-run orchestrator settings.
type Config struct {
	MovieRoots      []string
	TVRoots         []string
	RefreshInterval time.Duration // enrichment staleness window
}

// Report summarizes what a sync run did.
type Report struct {
	EntriesScanned  int
	EntriesInserted int
	VideosInserted  int
	VideosRemoved   int
	Transcoded      int
	Enriched        int
	Failures        int
	Duration        time.Duration
}

// Orchestrator wires the pipeline stages together. A nil provider
// disables enrichment, a nil bus disables events.
type Orchestrator struct {
	cfg        Config
	scanner    *scan.Scanner
	store      Store
	prober     Prober
	transcoder Transcoder
	subtitles  SubtitleResolver
	provider   Provider
	bus        *events.Bus
	log        *slog.Logger
}

// New creates an Orchestrator.
func New(cfg Config, scanner *scan.Scanner, store Store, prober Prober, transcoder Transcoder,
	subs SubtitleResolver, provider Provider, bus *events.Bus, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 24 * time.Hour
	}
	return &Orchestrator{
		cfg:        cfg,
		scanner:    scanner,
		store:      store,
		prober:     prober,
		transcoder: transcoder,
		subtitles:  subs,
		provider:   provider,
		bus:        bus,
		log:        logger,
	}
}

// Run executes one full sync. The jobID tags the run's lifecycle events
// and may be empty. Per-video and per-title failures are isolated: they
// are counted and logged but never abort the run.
func (o *Orchestrator) Run(ctx context.Context, jobID string) (*Report, error) {
	start := time.Now()
	report := &Report{}
	o.publish(ctx, events.SyncStarted{
		BaseEvent: events.NewBaseEvent(events.TypeSyncStarted, "sync", 0),
		JobID:     jobID,
	})

	entries, err := o.scanAll(ctx)
	if err != nil {
		return report, err
	}
	report.EntriesScanned = len(entries)

	if err := o.insertNewEntries(ctx, entries, report); err != nil {
		return report, err
	}

	newVideos, stale, err := o.diffVideos(entries)
	if err != nil {
		return report, err
	}

	removed, err := o.store.DeleteVideosByHash(stale)
	if err != nil {
		return report, err
	}
	report.VideosRemoved = int(removed)
	if removed > 0 {
		o.log.Info("removed stale videos", "count", removed)
		o.publish(ctx, events.VideoRemoved{
			BaseEvent: events.NewBaseEvent(events.TypeVideoRemoved, "video", 0),
			Hashes:    stale,
		})
	}

	// Compatible videos go first: they land in the catalog with a cheap
	// probe while the heavy transcodes queue behind them.
	compatible, incompatible := o.partition(ctx, newVideos)
	byHash := entryIndex(entries)

	// The two pipeline halves share nothing but the store; each reports
	// its own counters and they merge after the join.
	var videoStats, enrichStats pipelineStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		videoStats = o.processVideos(gctx, compatible, byHash, false)
		videoStats.merge(o.processVideos(gctx, incompatible, byHash, true))
		return nil
	})
	if o.provider != nil {
		g.Go(func() error {
			enrichStats = o.enrich(gctx)
			return nil
		})
	}
	runErr := g.Wait()

	report.VideosInserted = videoStats.inserted
	report.Transcoded = videoStats.transcoded
	report.Enriched = enrichStats.enriched
	report.Failures = videoStats.failures + enrichStats.failures

	report.Duration = time.Since(start)
	completed := events.SyncCompleted{
		BaseEvent:       events.NewBaseEvent(events.TypeSyncCompleted, "sync", 0),
		JobID:           jobID,
		EntriesScanned:  report.EntriesScanned,
		EntriesInserted: report.EntriesInserted,
		VideosInserted:  report.VideosInserted,
		VideosRemoved:   report.VideosRemoved,
		Transcoded:      report.Transcoded,
		Enriched:        report.Enriched,
	}
	if runErr != nil {
		completed.Error = runErr.Error()
	}
	o.publish(ctx, completed)

	o.log.Info("sync finished",
		"scanned", report.EntriesScanned,
		"entries_inserted", report.EntriesInserted,
		"videos_inserted", report.VideosInserted,
		"videos_removed", report.VideosRemoved,
		"transcoded", report.Transcoded,
		"enriched", report.Enriched,
		"failures", report.Failures,
		"duration", report.Duration)
	return report, runErr
}

func (o *Orchestrator) scanAll(ctx context.Context) ([]*scan.Entry, error) {
	var entries []*scan.Entry
	for _, root := range o.cfg.MovieRoots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := o.scanner.Folderize(root); err != nil {
			o.log.Warn("folderize failed", "root", root, "error", err)
		}
		scanned, err := o.scanner.ScanMovies(root)
		if err != nil {
			return nil, err
		}
		entries = append(entries, scanned...)
	}
	for _, root := range o.cfg.TVRoots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := o.scanner.Folderize(root); err != nil {
			o.log.Warn("folderize failed", "root", root, "error", err)
		}
		scanned, err := o.scanner.ScanTV(root)
		if err != nil {
			return nil, err
		}
		entries = append(entries, scanned...)
	}
	return entries, nil
}

func (o *Orchestrator) insertNewEntries(ctx context.Context, entries []*scan.Entry, report *Report) error {
	persisted, err := o.store.EntryHashes()
	if err != nil {
		return err
	}
	for _, e := range reconcile.Entries(entries, persisted) {
		rec := &library.Entry{
			Kind:  entryKind(e.Kind),
			Title: e.Title,
			Year:  e.Year,
			Hash:  e.Hash,
		}
		if err := o.store.AddEntry(rec); err != nil {
			if errors.Is(err, library.ErrDuplicate) {
				continue
			}
			return err
		}
		report.EntriesInserted++
		o.log.Info("entry added", "title", e.Title, "year", e.Year, "kind", e.Kind)
		o.publish(ctx, events.EntryAdded{
			BaseEvent: events.NewBaseEvent(events.TypeEntryAdded, "entry", rec.ID),
			EntryID:   rec.ID,
			Kind:      string(rec.Kind),
			Title:     rec.Title,
			Year:      rec.Year,
			Hash:      rec.Hash,
		})
	}
	return nil
}

func (o *Orchestrator) diffVideos(entries []*scan.Entry) ([]reconcile.VideoItem, []string, error) {
	persisted, err := o.store.VideoHashes()
	if err != nil {
		return nil, nil, err
	}
	newVideos, stale := reconcile.Videos(entries, persisted)
	return newVideos, stale, nil
}

func (o *Orchestrator) partition(ctx context.Context, items []reconcile.VideoItem) (compatible, incompatible []reconcile.VideoItem) {
	for _, item := range items {
		if o.prober.Compatible(ctx, item.Video.Path) {
			compatible = append(compatible, item)
		} else {
			incompatible = append(incompatible, item)
		}
	}
	return compatible, incompatible
}

// pipelineStats are the counters one pipeline half accumulates.
type pipelineStats struct {
	inserted   int
	transcoded int
	enriched   int
	failures   int
}

func (s *pipelineStats) merge(other pipelineStats) {
	s.inserted += other.inserted
	s.transcoded += other.transcoded
	s.enriched += other.enriched
	s.failures += other.failures
}

// processVideos runs the per-video pipeline. For incompatible videos the
// subtitles are resolved before the transcode so embedded tracks still
// exist in the source container.
func (o *Orchestrator) processVideos(ctx context.Context, items []reconcile.VideoItem, byHash map[string]*scan.Entry, transcode bool) pipelineStats {
	var stats pipelineStats
	for _, item := range items {
		if ctx.Err() != nil {
			return stats
		}
		if err := o.processVideo(ctx, item, byHash, transcode, &stats); err != nil {
			stats.failures++
			o.log.Error("video processing failed",
				"path", item.Video.Path, "error", err)
		}
	}
	return stats
}

func (o *Orchestrator) processVideo(ctx context.Context, item reconcile.VideoItem, byHash map[string]*scan.Entry, transcode bool, stats *pipelineStats) error {
	entry, err := o.store.EntryByHash(item.EntryHash)
	if err != nil {
		return err
	}

	path := item.Video.Path
	tracks := o.subtitles.Resolve(ctx, path)

	if transcode {
		out, err := o.transcoder.ToMP4(ctx, path)
		if err != nil {
			// The original file still plays; keep going with it.
			o.log.Warn("transcode failed, keeping original", "path", path, "error", err)
		} else {
			path = out
			stats.transcoded++
			o.publish(ctx, events.VideoTranscoded{
				BaseEvent: events.NewBaseEvent(events.TypeVideoTranscoded, "video", 0),
				Path:      path,
				Hash:      item.Video.Hash,
			})
		}
	}

	md, err := o.prober.Probe(ctx, path)
	if err != nil {
		return err
	}

	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	keyframe := o.transcoder.Keyframe(ctx, path, item.Video.Hash, md.Duration)

	v := &library.Video{
		EntryID:     entry.ID,
		Path:        path,
		Hash:        item.Video.Hash,
		VideoCodec:  md.VideoCodec,
		AudioCodec:  md.AudioCodec,
		Extension:   md.Extension,
		Duration:    md.Duration,
		Bitrate:     md.Bitrate,
		Resolution:  md.Resolution,
		Width:       md.Width,
		Height:      md.Height,
		AspectRatio: md.AspectRatio,
		FrameRate:   md.FrameRate,
		SizeBytes:   size,
		Keyframe:    keyframe,
	}
	if scanEntry, ok := byHash[item.EntryHash]; ok && scanEntry.Kind == scan.KindTV {
		season := item.Video.Season
		episode := item.Video.Episode
		v.Season = &season
		v.Episode = &episode
	}

	if err := o.store.AddVideo(v); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			return nil
		}
		return err
	}
	if err := o.store.ReplaceSubtitles(v.ID, subtitleRows(tracks)); err != nil {
		return err
	}

	stats.inserted++
	o.publish(ctx, events.VideoAdded{
		BaseEvent:  events.NewBaseEvent(events.TypeVideoAdded, "video", v.ID),
		VideoID:    v.ID,
		EntryID:    entry.ID,
		Hash:       v.Hash,
		Resolution: v.Resolution,
		Subtitles:  len(tracks),
	})
	return nil
}

// enrich refreshes external metadata for entries whose enrichment is
// missing or stale. Failures are per-title: one unmatched or erroring
// entry never blocks the rest.
func (o *Orchestrator) enrich(ctx context.Context) pipelineStats {
	var stats pipelineStats
	cutoff := time.Now().Add(-o.cfg.RefreshInterval)
	due, err := o.store.EntriesForEnrichment(cutoff)
	if err != nil {
		stats.failures++
		o.log.Error("enrichment listing failed", "error", err)
		return stats
	}

	for _, entry := range due {
		if ctx.Err() != nil {
			return stats
		}
		e, err := o.provider.Enrich(ctx, entry.Kind, entry.Title, entry.Year)
		if err != nil {
			if errors.Is(err, tmdb.ErrNotFound) {
				o.log.Debug("no metadata match", "title", entry.Title, "year", entry.Year)
				continue
			}
			stats.failures++
			o.log.Warn("enrichment failed", "title", entry.Title, "error", err)
			continue
		}
		e.EntryID = entry.ID

		changed, err := o.store.UpsertEnrichment(e)
		if err != nil {
			stats.failures++
			o.log.Warn("enrichment persist failed", "title", entry.Title, "error", err)
			continue
		}
		if changed {
			stats.enriched++
			o.publish(ctx, events.EnrichmentApplied{
				BaseEvent: events.NewBaseEvent(events.TypeEnrichmentApplied, "entry", entry.ID),
				EntryID:   entry.ID,
				TMDBID:    e.TMDBID,
			})
		}
	}
	return stats
}

func (o *Orchestrator) publish(ctx context.Context, e events.Event) {
	if o.bus == nil {
		return
	}
	_ = o.bus.Publish(ctx, e)
}

func entryIndex(entries []*scan.Entry) map[string]*scan.Entry {
	byHash := make(map[string]*scan.Entry, len(entries))
	for _, e := range entries {
		byHash[e.Hash] = e
	}
	return byHash
}

func entryKind(k scan.MediaKind) library.EntryKind {
	if k == scan.KindTV {
		return library.KindTV
	}
	return library.KindMovie
}

func subtitleRows(tracks []subtitles.Track) []*library.Subtitle {
	rows := make([]*library.Subtitle, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, &library.Subtitle{
			Path:  t.Path,
			Lang:  t.Lang,
			Label: t.Label,
			Hash:  t.Hash,
		})
	}
	return rows
}
