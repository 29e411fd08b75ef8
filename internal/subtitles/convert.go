package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// srtTimestampRe matches an SRT cue timing line; vtt uses dots where srt
// uses commas for the millisecond separator.
var srtTimestampRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2},\d{3}`)

// convertSRT rewrites an srt file as WebVTT at a sibling .vtt path and
// returns that path. The source srt file is left in place. An already
// existing vtt sibling is reused untouched.
func convertSRT(srtPath string) (string, error) {
	out := strings.TrimSuffix(srtPath, filepath.Ext(srtPath)) + ".vtt"
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return "", fmt.Errorf("read srt %s: %w", filepath.Base(srtPath), err)
	}

	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, line := range strings.Split(string(data), "\n") {
		if srtTimestampRe.MatchString(line) {
			line = strings.ReplaceAll(line, ",", ".")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write vtt %s: %w", filepath.Base(out), err)
	}
	return out, nil
}
