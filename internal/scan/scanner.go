package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MediaKind distinguishes movies from tv shows.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
)

// videoExtensions is the fixed allow-list of recognized containers.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".flv":  true,
	".wmv":  true,
	".webm": true,
}

// IsVideoFile reports whether filename has a recognized video extension.
func IsVideoFile(filename string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Entry is one show or movie discovered on disk. The hash identifies the
// title's root directory and is stable across runs while the path is
// unchanged.
type Entry struct {
	Title string
	Year  int // 0 when no year could be derived
	Kind  MediaKind
	Hash  string
	Dir   string

	Seasons []Season // tv only
	Videos  []Video  // movie only
}

// Season groups episodes under one season folder (or the synthesized
// "Season 1" for flat layouts).
type Season struct {
	Number   int
	Name     string
	Dir      string
	Episodes []Video
}

// Video is one video file. The hash identifies the full file path; it never
// depends on the parent entry's identity.
type Video struct {
	Path    string
	Hash    string
	Season  int // 0 for movies
	Episode int // 0 when no pattern matched
}

// Hasher derives content identity hashes from path strings.
type Hasher interface {
	Hash(path string) string
}

// Scanner builds catalog trees from library roots.
type Scanner struct {
	hasher Hasher
	log    *slog.Logger
}

// New creates a Scanner.
func New(hasher Hasher, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{hasher: hasher, log: logger}
}

// Folderize moves loose video files directly under root into their own
// same-named subfolder. It is a one-time layout migration and a no-op when
// everything is already foldered.
func (s *Scanner) Folderize(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read library root %s: %w", root, err)
	}
	for _, e := range entries {
		if e.IsDir() || !IsVideoFile(e.Name()) {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		dir := filepath.Join(root, base)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create folder %s: %w", dir, err)
		}
		src := filepath.Join(root, e.Name())
		dst := filepath.Join(dir, e.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move %s into %s: %w", e.Name(), dir, err)
		}
		s.log.Debug("foldered loose video", "file", e.Name(), "dir", dir)
	}
	return nil
}

// ScanMovies builds one Entry per top-level subfolder of a movie library
// root. Every recognized video file under the folder becomes a Video.
func (s *Scanner) ScanMovies(root string) ([]*Entry, error) {
	dirs, err := topLevelDirs(root)
	if err != nil {
		return nil, err
	}

	var out []*Entry
	for _, name := range dirs {
		dir := filepath.Join(root, name)
		entry := &Entry{
			Title: ExtractTitle(name),
			Kind:  KindMovie,
			Hash:  s.hasher.Hash(dir),
			Dir:   dir,
		}
		entry.Year, _ = ExtractYear(name)

		videos, err := s.collectVideos(dir, 0)
		if err != nil {
			return nil, err
		}
		entry.Videos = videos

		// Folder name gave no year: fall back to the video filenames.
		if entry.Year == 0 {
			for _, v := range videos {
				if y, ok := ExtractYear(filepath.Base(v.Path)); ok {
					entry.Year = y
					break
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// ScanTV builds one Entry per top-level subfolder of a tv library root.
// Subfolders matching the season heuristic become seasons; when none match,
// a single "Season 1" is synthesized over all video files in the folder.
func (s *Scanner) ScanTV(root string) ([]*Entry, error) {
	dirs, err := topLevelDirs(root)
	if err != nil {
		return nil, err
	}

	var out []*Entry
	for _, name := range dirs {
		dir := filepath.Join(root, name)
		entry := &Entry{
			Title: ExtractTitle(name),
			Kind:  KindTV,
			Hash:  s.hasher.Hash(dir),
			Dir:   dir,
		}
		entry.Year, _ = ExtractYear(name)

		subdirs, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read title folder %s: %w", dir, err)
		}
		for _, sub := range subdirs {
			if !sub.IsDir() {
				continue
			}
			num, ok := ExtractSeasonNumber(sub.Name())
			if !ok {
				continue
			}
			seasonDir := filepath.Join(dir, sub.Name())
			episodes, err := s.collectVideos(seasonDir, num)
			if err != nil {
				return nil, err
			}
			if len(episodes) == 0 {
				continue
			}
			entry.Seasons = append(entry.Seasons, Season{
				Number:   num,
				Name:     sub.Name(),
				Dir:      seasonDir,
				Episodes: episodes,
			})
		}

		// Flat layout: no season folders, sweep the whole title folder.
		if len(entry.Seasons) == 0 {
			episodes, err := s.collectVideos(dir, 1)
			if err != nil {
				return nil, err
			}
			if len(episodes) > 0 {
				entry.Seasons = append(entry.Seasons, Season{
					Number:   1,
					Name:     "Season 1",
					Dir:      dir,
					Episodes: episodes,
				})
			}
		}

		if entry.Year == 0 {
		yearSearch:
			for _, season := range entry.Seasons {
				for _, ep := range season.Episodes {
					if y, ok := ExtractYear(filepath.Base(ep.Path)); ok {
						entry.Year = y
						break yearSearch
					}
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// collectVideos walks dir recursively and returns a Video for every
// recognized file, with episode numbers derived per-file.
func (s *Scanner) collectVideos(dir string, season int) ([]Video, error) {
	var out []Video
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsVideoFile(d.Name()) {
			return nil
		}
		v := Video{
			Path:   path,
			Hash:   s.hasher.Hash(path),
			Season: season,
		}
		v.Episode, _ = ExtractEpisodeNumber(d.Name())
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return out, nil
}

// topLevelDirs lists directory entries of root, skipping non-directories.
func topLevelDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read library root %s: %w", root, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// AllVideos flattens an entry's videos regardless of kind.
func (e *Entry) AllVideos() []Video {
	if e.Kind == KindMovie {
		return e.Videos
	}
	var out []Video
	for _, season := range e.Seasons {
		out = append(out, season.Episodes...)
	}
	return out
}
