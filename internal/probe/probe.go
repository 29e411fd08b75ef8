// Package probe inspects video files with ffprobe and classifies them by
// codec compatibility.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnavailable indicates the ffprobe binary could not be found.
var ErrUnavailable = errors.New("ffprobe binary not found")

// TechMetadata is the technical metadata attached to a video before
// persistence.
type TechMetadata struct {
	VideoCodec  string
	AudioCodec  string
	Extension   string
	Duration    int    // seconds
	Bitrate     string // "1234.56 kbps"
	Resolution  string // bucketed label, e.g. "1080p"
	Width       int
	Height      int
	AspectRatio float64
	FrameRate   string // "23.976"
}

// Prober wraps ffprobe invocations.
type Prober struct {
	bin string
	log *slog.Logger
}

// New creates a Prober. An empty binPath falls back to ffprobe on PATH;
// resolution is deferred to call time so a missing binary stays a per-call,
// non-fatal condition.
func New(binPath string, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{bin: binPath, log: logger}
}

// ffprobe JSON output shapes.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// Probe runs ffprobe against path and normalizes its output.
func (p *Prober) Probe(ctx context.Context, path string) (*TechMetadata, error) {
	bin, err := p.binary()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration,bit_rate",
		"-show_entries", "stream=codec_name,width,height,avg_frame_rate,codec_type",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("run ffprobe on %s: %w", filepath.Base(path), err)
	}

	var raw probeOutput
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe output for %s: %w", filepath.Base(path), err)
	}
	return normalize(&raw, path), nil
}

// Compatible reports whether the file is servable without transcoding:
// h264 video, aac audio, mp4 container. A failed probe classifies as
// compatible by policy (fail open, assume servable rather than block
// ingestion).
func (p *Prober) Compatible(ctx context.Context, path string) bool {
	md, err := p.Probe(ctx, path)
	if err != nil {
		p.log.Error("video encoding check failed, assuming compatible",
			"video", filepath.Base(path), "error", err)
		return true
	}
	return Classify(md.VideoCodec, md.AudioCodec, md.Extension)
}

// Classify applies the compatibility rule to already-probed codecs.
func Classify(videoCodec, audioCodec, extension string) bool {
	return videoCodec == "h264" && audioCodec == "aac" && extension == "mp4"
}

func (p *Prober) binary() (string, error) {
	if p.bin != "" {
		return p.bin, nil
	}
	bin, err := exec.LookPath("ffprobe")
	if err != nil {
		return "", ErrUnavailable
	}
	return bin, nil
}

// normalize converts raw ffprobe output into TechMetadata.
func normalize(raw *probeOutput, path string) *TechMetadata {
	md := &TechMetadata{
		Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}

	if d, err := strconv.ParseFloat(raw.Format.Duration, 64); err == nil {
		md.Duration = int(d)
	}
	md.Bitrate = fmt.Sprintf("%.2f kbps", bitrateToKbps(raw.Format.BitRate))

	for _, s := range raw.Streams {
		switch s.CodecType {
		case "video":
			if md.VideoCodec != "" {
				continue // first video stream wins
			}
			md.VideoCodec = s.CodecName
			md.Width = s.Width
			md.Height = s.Height
			if fps, ok := frameRateToFloat(s.AvgFrameRate); ok {
				md.FrameRate = fmt.Sprintf("%.3f", fps)
			}
		case "audio":
			if md.AudioCodec == "" {
				md.AudioCodec = s.CodecName
			}
		}
	}

	if md.Width > 0 && md.Height > 0 {
		md.AspectRatio = roundTo2(float64(md.Width) / float64(md.Height))
	}
	md.Resolution = NormResolution(md.Width, md.Height)
	return md
}

// NormResolution buckets a frame height into a display label. The ladder
// covers standard and cinematic 2.39:1 heights; anything below the ladder
// falls back to the literal height.
func NormResolution(width, height int) string {
	if width == 0 || height == 0 {
		return ""
	}
	switch {
	case height >= 1600 && height <= 2160:
		return "4K"
	case height >= 800 && height <= 1080:
		return "1080p"
	case height >= 500 && height <= 720:
		return "720p"
	case height >= 480:
		return "480p"
	case height >= 360:
		return "360p"
	case height >= 240:
		return "240p"
	default:
		return fmt.Sprintf("%dp", height)
	}
}

// frameRateToFloat converts ffprobe's "num/den" rate to a float, with a
// plain-decimal fallback.
func frameRateToFloat(rate string) (float64, bool) {
	if rate == "" {
		return 0, false
	}
	if num, den, ok := strings.Cut(rate, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// bitrateToKbps converts a bps string to kbps, 0 when invalid.
func bitrateToKbps(bitrate string) float64 {
	bps, err := strconv.ParseFloat(bitrate, 64)
	if err != nil {
		return 0
	}
	return bps / 1000
}

func roundTo2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
