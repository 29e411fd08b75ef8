package subtitles

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// findSidecars walks the video's directory and collects subtitle files
// belonging to it: files whose base name equals the video's exactly,
// anything in a subfolder named after the video, and anything in a
// "subs" folder. Loose files never match by prefix; a suffixed name like
// "Show E10_French" belongs to a different episode than "Show E1".
// Results come back split by format, each sorted for stable ordering.
func findSidecars(videoPath string) (vtts, srts []string) {
	dir := filepath.Dir(videoPath)
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".vtt" && ext != ".srt" {
			return nil
		}

		parent := filepath.Base(filepath.Dir(path))
		name := strings.TrimSuffix(filepath.Base(path), ext)
		switch {
		case name == base:
		case parent == base:
		case strings.EqualFold(parent, "subs"):
		default:
			return nil
		}

		if ext == ".vtt" {
			vtts = append(vtts, path)
		} else {
			srts = append(srts, path)
		}
		return nil
	})

	sort.Strings(vtts)
	sort.Strings(srts)
	return vtts, srts
}
