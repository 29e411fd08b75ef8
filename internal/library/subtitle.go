package library

import (
	"fmt"
)

func replaceSubtitles(q querier, videoID int64, subs []*Subtitle) error {
	if _, err := q.Exec("DELETE FROM subtitles WHERE video_id = ?", videoID); err != nil {
		return fmt.Errorf("clear subtitles for video %d: %w", videoID, mapSQLiteError(err))
	}
	for _, s := range subs {
		result, err := q.Exec(`
			INSERT INTO subtitles (video_id, path, lang, label, hash)
			VALUES (?, ?, ?, ?, ?)`,
			videoID, s.Path, s.Lang, s.Label, s.Hash,
		)
		if err != nil {
			return fmt.Errorf("insert subtitle: %w", mapSQLiteError(err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		s.ID = id
		s.VideoID = videoID
	}
	return nil
}

// ReplaceSubtitles swaps a video's subtitle set for the given tracks.
// Re-resolving subtitles on a rerun replaces rather than duplicates.
func (s *Store) ReplaceSubtitles(videoID int64, subs []*Subtitle) error {
	return replaceSubtitles(s.db, videoID, subs)
}

// ReplaceSubtitles swaps a video's subtitle set within a transaction.
func (t *Tx) ReplaceSubtitles(videoID int64, subs []*Subtitle) error {
	return replaceSubtitles(t.tx, videoID, subs)
}

func subtitlesForVideo(q querier, videoID int64) ([]*Subtitle, error) {
	rows, err := q.Query(
		"SELECT id, video_id, path, lang, label, hash FROM subtitles WHERE video_id = ? ORDER BY id",
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subtitles for video %d: %w", videoID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Subtitle
	for rows.Next() {
		s := &Subtitle{}
		if err := rows.Scan(&s.ID, &s.VideoID, &s.Path, &s.Lang, &s.Label, &s.Hash); err != nil {
			return nil, fmt.Errorf("scan subtitle: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// SubtitlesForVideo returns a video's subtitle tracks.
func (s *Store) SubtitlesForVideo(videoID int64) ([]*Subtitle, error) {
	return subtitlesForVideo(s.db, videoID)
}

// SubtitlesForVideo returns a video's subtitle tracks within a transaction.
func (t *Tx) SubtitlesForVideo(videoID int64) ([]*Subtitle, error) {
	return subtitlesForVideo(t.tx, videoID)
}
