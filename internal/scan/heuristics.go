// Package scan walks library roots and builds an in-memory catalog of shows
// and movies from noisy folder and file names.
package scan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRe   = regexp.MustCompile(`(19\d{2}|20\d{2})`)
	seasonRe = regexp.MustCompile(`(?i)season[\s_]?(\d+)|s[\s_]?(\d+)`)

	// Episode number patterns, tried in order. First match wins.
	episodeRes = []*regexp.Regexp{
		regexp.MustCompile(`^(\d{1,3})\.`),                                  // "01. Pilot.mkv"
		regexp.MustCompile(`(?i)s\d+e(\d+)`),                                // "S01E02"
		regexp.MustCompile(`(?i)season[\s._-]*\d+[\s._-]*ep(?:isode)?[\s._-]*(\d+)`), // "Season 1 Episode 2"
		regexp.MustCompile(`(?i)ep(?:isode)?[\s._-]?(\d+)`),                 // "Ep05", "Episode-03"
	}

	urlRe        = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	titleBoundRe = regexp.MustCompile(`^(.+?)\.*(\b\d{4}\b|\d{3,4}p)`)
	spaceRe      = regexp.MustCompile(`\s+`)

	// Release junk stripped before the title boundary is applied: sources,
	// codecs, audio tags, release-group suffixes and size-in-MB tags.
	junkRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)WEB[- ]?Rip`),
		regexp.MustCompile(`(?i)BluRay`),
		regexp.MustCompile(`(?i)HDTV`),
		regexp.MustCompile(`(?i)DVDRip`),
		regexp.MustCompile(`(?i)CAM`),
		regexp.MustCompile(`(?i)HDRip`),
		regexp.MustCompile(`(?i)x264`),
		regexp.MustCompile(`(?i)x265`),
		regexp.MustCompile(`(?i)XviD`),
		regexp.MustCompile(`(?i)HEVC`),
		regexp.MustCompile(`(?i)\bDD5[. ]1\b`),
		regexp.MustCompile(`(?i)AAC`),
		regexp.MustCompile(`(?i)MP3`),
		regexp.MustCompile(`(?i)FLAC`),
		regexp.MustCompile(`(?i)\b\w{2,}-RG\b`),
		regexp.MustCompile(`(?i)\b\d{3,4}MB\b`),
	}
)

// ExtractYear returns the first 4-digit run in the 1900-2099 range.
// The second return is false when no year is present.
func ExtractYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	m := yearRe.FindString(s)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// ExtractSeasonNumber matches "Season 3", "season_3", "S3" or "s 3" in a
// folder name, case-insensitive.
func ExtractSeasonNumber(folder string) (int, bool) {
	m := seasonRe.FindStringSubmatch(folder)
	if m == nil {
		return 0, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractEpisodeNumber tries a leading "NNN." prefix, then SxxEyy, then
// "Season N Episode M", then "Ep N". Returns false when nothing matches.
func ExtractEpisodeNumber(filename string) (int, bool) {
	for _, re := range episodeRes {
		m := re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// ExtractTitle cleans a release-style folder or file name down to a display
// title: URLs and parentheses stripped, dots and underscores spaced, junk
// tokens removed, then everything before the first standalone 4-digit run or
// resolution tag. Falls back to the raw input when no boundary is found.
func ExtractTitle(raw string) string {
	s := urlRe.ReplaceAllString(raw, " ")
	s = strings.NewReplacer("(", "", ")", "", ".", " ", "_", " ").Replace(s)
	for _, re := range junkRes {
		s = re.ReplaceAllString(s, " ")
	}
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))

	if m := titleBoundRe.FindStringSubmatch(s); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t
		}
	}
	return raw
}
