// Package transcode converts incompatible videos to h264/aac mp4 and
// extracts keyframe stills, shelling out to ffmpeg.
package transcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnavailable indicates the ffmpeg binary could not be found.
var ErrUnavailable = errors.New("ffmpeg binary not found")

const (
	removeRetries = 5
	defaultDelay  = 5 * time.Second
)

// Transcoder invokes ffmpeg with a fixed h264/aac/mp4 profile.
type Transcoder struct {
	bin        string
	encoder    string // "libx264" or "h264_nvenc"
	stillsDir  string
	retryDelay time.Duration
	log        *slog.Logger
}

// New creates a Transcoder. An empty binPath falls back to ffmpeg on PATH,
// an empty encoder to libx264.
func New(binPath, encoder, stillsDir string, logger *slog.Logger) *Transcoder {
	if logger == nil {
		logger = slog.Default()
	}
	if encoder == "" {
		encoder = "libx264"
	}
	return &Transcoder{
		bin:        binPath,
		encoder:    encoder,
		stillsDir:  stillsDir,
		retryDelay: defaultDelay,
		log:        logger,
	}
}

// ToMP4 transcodes src to an h264/aac mp4 at a sibling path and deletes the
// source on success. When the output path already exists (partial prior
// run), the new output gets a timestamp suffix instead of overwriting. On
// encoder failure the original path is returned together with the error so
// the caller can continue probing the untranscoded file.
func (t *Transcoder) ToMP4(ctx context.Context, src string) (string, error) {
	bin, err := t.binary()
	if err != nil {
		return src, err
	}

	base := strings.TrimSuffix(src, filepath.Ext(src))
	out := base + ".mp4"
	if _, err := os.Stat(out); err == nil {
		stamp := time.Now().Format("20060102150405")
		out = fmt.Sprintf("%s_%s.mp4", base, stamp)
		t.log.Warn("transcode output already exists, using timestamped name",
			"existing", filepath.Base(base+".mp4"), "output", filepath.Base(out))
	}

	args := []string{"-i", src}
	args = append(args, t.videoArgs()...)
	args = append(args,
		"-c:a", "aac",
		"-ac", "2",
		"-movflags", "+faststart",
		"-f", "mp4",
		out,
	)

	cmd := exec.CommandContext(ctx, bin, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return src, fmt.Errorf("pipe ffmpeg stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return src, fmt.Errorf("start ffmpeg for %s: %w", filepath.Base(src), err)
	}

	// ffmpeg reports progress on stderr as "frame=... time=..." lines.
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "frame=") {
			t.log.Debug("transcode progress", "video", filepath.Base(src), "line", strings.TrimSpace(line))
		}
	}

	if err := cmd.Wait(); err != nil {
		return src, fmt.Errorf("transcode %s: %w", filepath.Base(src), err)
	}

	t.removeWithRetry(src)
	return out, nil
}

// videoArgs returns the encoder-specific quality settings: constant quality
// around CQ/CRF 19 with a 10M target and 20M ceiling, yuv420p for web player
// compatibility.
func (t *Transcoder) videoArgs() []string {
	if t.encoder == "h264_nvenc" {
		return []string{
			"-c:v", "h264_nvenc",
			"-rc", "vbr_hq",
			"-preset", "fast",
			"-cq:v", "19",
			"-b:v", "10M",
			"-maxrate", "20M",
			"-bufsize", "40M",
			"-pix_fmt", "yuv420p",
		}
	}
	return []string{
		"-c:v", t.encoder,
		"-preset", "fast",
		"-crf", "19",
		"-maxrate", "20M",
		"-bufsize", "40M",
		"-pix_fmt", "yuv420p",
	}
}

// removeWithRetry deletes the original source file, retrying on failure
// (Windows-style file locks from players or indexers). A terminal failure
// is logged, never propagated: a leftover source must not abort the run.
func (t *Transcoder) removeWithRetry(path string) {
	for attempt := 1; attempt <= removeRetries; attempt++ {
		err := os.Remove(path)
		if err == nil {
			return
		}
		if attempt < removeRetries {
			t.log.Warn("source file is busy, retrying delete",
				"file", filepath.Base(path), "attempt", attempt, "delay", t.retryDelay)
			time.Sleep(t.retryDelay)
			continue
		}
		t.log.Error("failed to remove source file after transcode",
			"file", filepath.Base(path), "error", err)
	}
}

func (t *Transcoder) binary() (string, error) {
	if t.bin != "" {
		return t.bin, nil
	}
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", ErrUnavailable
	}
	return bin, nil
}
