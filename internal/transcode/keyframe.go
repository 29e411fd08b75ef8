package transcode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// keyframeFilter widens the frame slightly past 16:9 before cropping so
// both narrow and wide sources fill a 1280x720 still.
const keyframeFilter = "scale='if(gt(a,16/9),-1,1280*1.35)':'if(gt(a,16/9),720*1.35,-1)',crop=1280:720"

// Keyframe extracts one still frame at roughly a tenth into the video and
// writes it to the stills dir as <hash>.jpg. Returns the image name keyed by
// the video's identity hash ("/<hash>.jpg"), or "" when no frame could be
// extracted. An already existing still is reused.
func (t *Transcoder) Keyframe(ctx context.Context, videoPath, hash string, durationSeconds int) string {
	if durationSeconds <= 0 || hash == "" {
		return ""
	}
	name := "/" + hash + ".jpg"
	out := filepath.Join(t.stillsDir, hash+".jpg")
	if _, err := os.Stat(out); err == nil {
		t.log.Debug("keyframe already exists, skipping", "hash", hash)
		return name
	}

	bin, err := t.binary()
	if err != nil {
		t.log.Error("keyframe extraction skipped", "error", err)
		return ""
	}
	if err := os.MkdirAll(t.stillsDir, 0o755); err != nil {
		t.log.Error("create stills dir failed", "dir", t.stillsDir, "error", err)
		return ""
	}

	offset := durationSeconds / 11
	offsetTime := fmt.Sprintf("%02d:%02d:%02d", offset/3600, (offset%3600)/60, offset%60)

	cmd := exec.CommandContext(ctx, bin,
		"-ss", offsetTime,
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", keyframeFilter,
		out,
	)
	if err := cmd.Run(); err != nil {
		t.log.Warn("keyframe extraction failed",
			"video", filepath.Base(videoPath), "error", err)
		return ""
	}
	return name
}
