package library

import (
	"fmt"
	"strings"
	"time"
)

const videoColumns = `id, entry_id, path, hash, season, episode,
	video_codec, audio_codec, extension, duration, bitrate, resolution,
	width, height, aspect_ratio, frame_rate, size_bytes, keyframe, added_at`

func scanVideo(row interface{ Scan(...any) error }) (*Video, error) {
	v := &Video{}
	err := row.Scan(&v.ID, &v.EntryID, &v.Path, &v.Hash, &v.Season, &v.Episode,
		&v.VideoCodec, &v.AudioCodec, &v.Extension, &v.Duration, &v.Bitrate, &v.Resolution,
		&v.Width, &v.Height, &v.AspectRatio, &v.FrameRate, &v.SizeBytes, &v.Keyframe, &v.AddedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func addVideo(q querier, v *Video) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO videos (entry_id, path, hash, season, episode,
			video_codec, audio_codec, extension, duration, bitrate, resolution,
			width, height, aspect_ratio, frame_rate, size_bytes, keyframe, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.EntryID, v.Path, v.Hash, v.Season, v.Episode,
		v.VideoCodec, v.AudioCodec, v.Extension, v.Duration, v.Bitrate, v.Resolution,
		v.Width, v.Height, v.AspectRatio, v.FrameRate, v.SizeBytes, v.Keyframe, now,
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	v.ID = id
	v.AddedAt = now
	return nil
}

// AddVideo inserts a new video row. Sets ID and AddedAt on the struct.
// Returns ErrDuplicate when the identity hash is already present and
// ErrConstraint when the entry does not exist.
func (s *Store) AddVideo(v *Video) error { return addVideo(s.db, v) }

// AddVideo inserts a new video within a transaction.
func (t *Tx) AddVideo(v *Video) error { return addVideo(t.tx, v) }

func videoHashes(q querier) (map[string]struct{}, error) {
	rows, err := q.Query("SELECT hash FROM videos")
	if err != nil {
		return nil, fmt.Errorf("list video hashes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	hashes := make(map[string]struct{})
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan video hash: %w", err)
		}
		hashes[h] = struct{}{}
	}
	return hashes, rows.Err()
}

// VideoHashes returns the identity hashes of all persisted videos.
func (s *Store) VideoHashes() (map[string]struct{}, error) { return videoHashes(s.db) }

// VideoHashes returns all persisted video hashes within a transaction.
func (t *Tx) VideoHashes() (map[string]struct{}, error) { return videoHashes(t.tx) }

func videosForEntry(q querier, entryID int64) ([]*Video, error) {
	rows, err := q.Query(
		"SELECT "+videoColumns+" FROM videos WHERE entry_id = ? ORDER BY season, episode, id",
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list videos for entry %d: %w", entryID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

// VideosForEntry returns an entry's videos ordered by season and episode.
func (s *Store) VideosForEntry(entryID int64) ([]*Video, error) {
	return videosForEntry(s.db, entryID)
}

// VideosForEntry returns an entry's videos within a transaction.
func (t *Tx) VideosForEntry(entryID int64) ([]*Video, error) {
	return videosForEntry(t.tx, entryID)
}

func deleteVideosByHash(q querier, hashes []string) (int64, error) {
	if len(hashes) == 0 {
		return 0, nil
	}
	placeholders := strings.Repeat("?,", len(hashes))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(hashes))
	for i, h := range hashes {
		args[i] = h
	}
	result, err := q.Exec("DELETE FROM videos WHERE hash IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("delete videos: %w", mapSQLiteError(err))
	}
	return result.RowsAffected()
}

// DeleteVideosByHash removes the videos carrying the given hashes and
// returns how many rows went away. Subtitles cascade. Unknown hashes are
// ignored, so replaying a stale set is safe.
func (s *Store) DeleteVideosByHash(hashes []string) (int64, error) {
	return deleteVideosByHash(s.db, hashes)
}

// DeleteVideosByHash removes videos by hash within a transaction.
func (t *Tx) DeleteVideosByHash(hashes []string) (int64, error) {
	return deleteVideosByHash(t.tx, hashes)
}
