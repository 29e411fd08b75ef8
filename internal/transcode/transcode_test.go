package transcode

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testTranscoder(tb testing.TB, bin string) *Transcoder {
	tb.Helper()
	tr := New(bin, "", tb.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	tr.retryDelay = time.Millisecond
	return tr
}

func TestToMP4_MissingBinaryReturnsOriginalPath(t *testing.T) {
	tr := testTranscoder(t, filepath.Join(t.TempDir(), "no-such-ffmpeg"))

	src := filepath.Join(t.TempDir(), "video.mkv")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := tr.ToMP4(context.Background(), src)
	if err == nil {
		t.Fatal("expected error for missing ffmpeg binary")
	}
	if out != src {
		t.Errorf("failed transcode must return the original path, got %q", out)
	}
	if _, statErr := os.Stat(src); statErr != nil {
		t.Errorf("source must survive a failed transcode: %v", statErr)
	}
}

func TestVideoArgs(t *testing.T) {
	cpu := testTranscoder(t, "ffmpeg")
	args := cpu.videoArgs()
	if args[1] != "libx264" {
		t.Errorf("default encoder = %q, want libx264", args[1])
	}

	gpu := New("ffmpeg", "h264_nvenc", "", nil)
	args = gpu.videoArgs()
	if args[1] != "h264_nvenc" {
		t.Errorf("encoder = %q, want h264_nvenc", args[1])
	}
	found := false
	for _, a := range args {
		if a == "vbr_hq" {
			found = true
		}
	}
	if !found {
		t.Error("nvenc profile should use vbr_hq rate control")
	}
}

func TestRemoveWithRetry(t *testing.T) {
	tr := testTranscoder(t, "ffmpeg")

	path := filepath.Join(t.TempDir(), "old.avi")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	tr.removeWithRetry(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be removed, stat err = %v", err)
	}

	// Terminal failure is logged, not returned; must not panic.
	tr.removeWithRetry(filepath.Join(t.TempDir(), "missing", "nested", "gone.avi"))
}

func TestKeyframe_Guards(t *testing.T) {
	tr := testTranscoder(t, filepath.Join(t.TempDir(), "no-such-ffmpeg"))

	if got := tr.Keyframe(context.Background(), "/x.mp4", "abc", 0); got != "" {
		t.Errorf("zero duration should skip extraction, got %q", got)
	}
	if got := tr.Keyframe(context.Background(), "/x.mp4", "", 100); got != "" {
		t.Errorf("empty hash should skip extraction, got %q", got)
	}
}

func TestKeyframe_ExistingStillReused(t *testing.T) {
	// Pre-create the still: extraction is skipped entirely, so the bogus
	// binary is never invoked.
	tr := testTranscoder(t, filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	tr.stillsDir = t.TempDir()
	still := filepath.Join(tr.stillsDir, "abc.jpg")
	if err := os.WriteFile(still, []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := tr.Keyframe(context.Background(), "/x.mp4", "abc", 110); got != "/abc.jpg" {
		t.Errorf("Keyframe = %q, want /abc.jpg for existing still", got)
	}
}
