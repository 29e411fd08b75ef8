// Package subtitles discovers subtitle tracks for a video and resolves
// their language. Sources are tried in order: sidecar vtt files, sidecar
// srt files converted to vtt, embedded streams extracted with ffmpeg. A
// video with no subtitles from any source is fine; the result is empty.
package subtitles

import (
	"context"
	"log/slog"
	"path/filepath"
)

// Track is one resolved subtitle: a vtt file on disk with its language
// code, display label and identity hash.
type Track struct {
	Path  string
	Lang  string
	Label string
	Hash  string
}

// Hasher produces the stable identity hash for a file path.
type Hasher interface {
	Hash(path string) string
}

// Resolver finds and normalizes subtitle tracks for videos.
type Resolver struct {
	ffmpegBin  string
	ffprobeBin string
	hasher     Hasher
	log        *slog.Logger
}

// NewResolver creates a Resolver. Empty binary paths fall back to the
// bare command names resolved via PATH.
func NewResolver(ffmpegBin, ffprobeBin string, hasher Hasher, logger *slog.Logger) *Resolver {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin, hasher: hasher, log: logger}
}

// Resolve returns the subtitle tracks for videoPath. Each source stage
// that yields nothing falls through to the next; failures inside a stage
// are logged and skipped, never propagated.
func (r *Resolver) Resolve(ctx context.Context, videoPath string) []Track {
	vtts, srts := findSidecars(videoPath)

	if len(vtts) > 0 {
		return r.tracksFor(vtts)
	}

	if len(srts) > 0 {
		var converted []string
		for _, srt := range srts {
			vtt, err := convertSRT(srt)
			if err != nil {
				r.log.Warn("srt conversion failed", "file", filepath.Base(srt), "error", err)
				continue
			}
			converted = append(converted, vtt)
		}
		if len(converted) > 0 {
			return r.tracksFor(converted)
		}
	}

	return r.tracksFor(r.extractEmbedded(ctx, videoPath))
}

func (r *Resolver) tracksFor(paths []string) []Track {
	var tracks []Track
	for _, p := range paths {
		raw := labelFromFilename(filepath.Base(p))
		cleaned := CleanLabel(raw)
		code, display := ResolveLanguage(cleaned)
		if code == UnknownLanguage {
			r.log.Debug("unresolved subtitle language", "file", filepath.Base(p), "label", cleaned)
		}
		tracks = append(tracks, Track{
			Path:  p,
			Lang:  code,
			Label: display,
			Hash:  r.hasher.Hash(p),
		})
	}
	return tracks
}
