package subtitles

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type streamInfo struct {
	Index int `json:"index"`
	Tags  struct {
		Title    string `json:"title"`
		Language string `json:"language"`
	} `json:"tags"`
}

type streamList struct {
	Streams []streamInfo `json:"streams"`
}

// extractEmbedded pulls every embedded subtitle stream out of the video as
// WebVTT files in a subfolder named after the video. Streams that cannot
// be converted (image-based pgs/dvdsub) are skipped with a warning; the
// successfully extracted paths are returned.
func (r *Resolver) extractEmbedded(ctx context.Context, videoPath string) []string {
	streams, err := r.probeStreams(ctx, videoPath)
	if err != nil {
		r.log.Warn("subtitle stream probe failed",
			"video", filepath.Base(videoPath), "error", err)
		return nil
	}
	if len(streams) == 0 {
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outDir := filepath.Join(filepath.Dir(videoPath), base)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		r.log.Error("create subtitle dir failed", "dir", outDir, "error", err)
		return nil
	}

	var extracted []string
	for i, s := range streams {
		label := s.Tags.Title
		if label == "" {
			label = s.Tags.Language
		}
		label = sanitizeFilename(label)
		out := filepath.Join(outDir, fmt.Sprintf("%d_%s.vtt", i, label))
		if _, err := os.Stat(out); err == nil {
			extracted = append(extracted, out)
			continue
		}

		cmd := exec.CommandContext(ctx, r.ffmpegBin,
			"-i", videoPath,
			"-map", "0:s:"+strconv.Itoa(i),
			"-c:s", "webvtt",
			"-y", out,
		)
		if err := cmd.Run(); err != nil {
			r.log.Warn("embedded subtitle extraction failed",
				"video", filepath.Base(videoPath), "stream", s.Index, "error", err)
			continue
		}
		extracted = append(extracted, out)
	}
	return extracted
}

// probeStreams lists the embedded subtitle streams with their language and
// title tags.
func (r *Resolver) probeStreams(ctx context.Context, videoPath string) ([]streamInfo, error) {
	cmd := exec.CommandContext(ctx, r.ffprobeBin,
		"-v", "error",
		"-select_streams", "s",
		"-show_entries", "stream=index:stream_tags=title,language",
		"-of", "json",
		videoPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe subtitle streams: %w", err)
	}
	var list streamList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}
	return list.Streams, nil
}

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, string(filepath.Separator), "-")
	s = strings.ReplaceAll(s, "/", "-")
	if s == "" {
		s = UnknownLanguage
	}
	return s
}
