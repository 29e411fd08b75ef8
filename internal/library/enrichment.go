package library

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const enrichmentColumns = `entry_id, tmdb_id, overview, tagline, release_date,
	runtime, vote_average, vote_count, poster_path, backdrop_path, logo_path,
	updated_at`

// UpsertEnrichment writes an entry's enrichment, replacing any previous
// one. The returned bool reports whether anything actually changed; an
// identical record only bumps updated_at so the refresh throttle still
// advances.
func (s *Store) UpsertEnrichment(e *Enrichment) (bool, error) {
	tx, err := s.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	changed, err := upsertEnrichment(tx.tx, e)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit enrichment: %w", err)
	}
	return changed, nil
}

// UpsertEnrichment writes an entry's enrichment within a transaction.
func (t *Tx) UpsertEnrichment(e *Enrichment) (bool, error) {
	return upsertEnrichment(t.tx, e)
}

func upsertEnrichment(q querier, e *Enrichment) (bool, error) {
	now := time.Now()

	existing, err := getEnrichment(q, e.EntryID)
	switch {
	case errors.Is(err, ErrNotFound):
		if _, err := q.Exec(`
			INSERT INTO enrichment (`+enrichmentColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.EntryID, e.TMDBID, e.Overview, e.Tagline, e.ReleaseDate,
			e.Runtime, e.VoteAverage, e.VoteCount, e.PosterPath, e.BackdropPath, e.LogoPath,
			now,
		); err != nil {
			return false, fmt.Errorf("insert enrichment: %w", mapSQLiteError(err))
		}
	case err != nil:
		return false, err
	case equalEnrichment(existing, e):
		if _, err := q.Exec("UPDATE enrichment SET updated_at = ? WHERE entry_id = ?", now, e.EntryID); err != nil {
			return false, fmt.Errorf("touch enrichment: %w", mapSQLiteError(err))
		}
		e.UpdatedAt = now
		return false, nil
	default:
		if _, err := q.Exec(`
			UPDATE enrichment SET tmdb_id = ?, overview = ?, tagline = ?, release_date = ?,
				runtime = ?, vote_average = ?, vote_count = ?, poster_path = ?, backdrop_path = ?,
				logo_path = ?, updated_at = ?
			WHERE entry_id = ?`,
			e.TMDBID, e.Overview, e.Tagline, e.ReleaseDate,
			e.Runtime, e.VoteAverage, e.VoteCount, e.PosterPath, e.BackdropPath,
			e.LogoPath, now, e.EntryID,
		); err != nil {
			return false, fmt.Errorf("update enrichment: %w", mapSQLiteError(err))
		}
	}

	if err := replaceNameLinks(q, "genres", "entry_genres", "genre_id", e.EntryID, e.Genres); err != nil {
		return false, err
	}
	if err := replaceNameLinks(q, "production_companies", "entry_companies", "company_id", e.EntryID, e.Companies); err != nil {
		return false, err
	}
	if err := replaceNameLinks(q, "networks", "entry_networks", "network_id", e.EntryID, e.Networks); err != nil {
		return false, err
	}
	if err := replaceRatings(q, e.EntryID, e.Ratings); err != nil {
		return false, err
	}
	if err := replaceCast(q, e.EntryID, e.Cast); err != nil {
		return false, err
	}
	if err := replaceSeasons(q, e.EntryID, e.Seasons); err != nil {
		return false, err
	}

	e.UpdatedAt = now
	return true, nil
}

// replaceNameLinks rewrites an entry's links into a natural-key reference
// table. Names are inserted once and reused across entries.
func replaceNameLinks(q querier, refTable, linkTable, linkCol string, entryID int64, names []string) error {
	if _, err := q.Exec("DELETE FROM "+linkTable+" WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("clear %s: %w", linkTable, mapSQLiteError(err))
	}
	for _, name := range names {
		if _, err := q.Exec("INSERT OR IGNORE INTO "+refTable+" (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("insert %s %q: %w", refTable, name, mapSQLiteError(err))
		}
		var refID int64
		if err := q.QueryRow("SELECT id FROM "+refTable+" WHERE name = ?", name).Scan(&refID); err != nil {
			return fmt.Errorf("lookup %s %q: %w", refTable, name, mapSQLiteError(err))
		}
		if _, err := q.Exec(
			"INSERT OR IGNORE INTO "+linkTable+" (entry_id, "+linkCol+") VALUES (?, ?)",
			entryID, refID,
		); err != nil {
			return fmt.Errorf("link %s %q: %w", refTable, name, mapSQLiteError(err))
		}
	}
	return nil
}

// replaceRatings rewrites an entry's certification links. Pairs are
// upserted by their (rating, country) natural key and shared across
// entries.
func replaceRatings(q querier, entryID int64, ratings []RatingPair) error {
	if _, err := q.Exec("DELETE FROM entry_ratings WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("clear entry_ratings: %w", mapSQLiteError(err))
	}
	for _, r := range ratings {
		if _, err := q.Exec(
			"INSERT OR IGNORE INTO content_ratings (rating, country) VALUES (?, ?)",
			r.Rating, r.Country,
		); err != nil {
			return fmt.Errorf("insert rating %s/%s: %w", r.Rating, r.Country, mapSQLiteError(err))
		}
		var refID int64
		if err := q.QueryRow(
			"SELECT id FROM content_ratings WHERE rating = ? AND country = ?",
			r.Rating, r.Country,
		).Scan(&refID); err != nil {
			return fmt.Errorf("lookup rating %s/%s: %w", r.Rating, r.Country, mapSQLiteError(err))
		}
		if _, err := q.Exec(
			"INSERT OR IGNORE INTO entry_ratings (entry_id, rating_id) VALUES (?, ?)",
			entryID, refID,
		); err != nil {
			return fmt.Errorf("link rating %s/%s: %w", r.Rating, r.Country, mapSQLiteError(err))
		}
	}
	return nil
}

func replaceCast(q querier, entryID int64, cast []CastMember) error {
	if _, err := q.Exec("DELETE FROM entry_actors WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("clear entry_actors: %w", mapSQLiteError(err))
	}
	for _, m := range cast {
		if _, err := q.Exec(`
			INSERT INTO actors (name, profile_path) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET profile_path = excluded.profile_path`,
			m.Name, m.ProfilePath,
		); err != nil {
			return fmt.Errorf("insert actor %q: %w", m.Name, mapSQLiteError(err))
		}
		var actorID int64
		if err := q.QueryRow("SELECT id FROM actors WHERE name = ?", m.Name).Scan(&actorID); err != nil {
			return fmt.Errorf("lookup actor %q: %w", m.Name, mapSQLiteError(err))
		}
		if _, err := q.Exec(`
			INSERT OR IGNORE INTO entry_actors (entry_id, actor_id, character_name, ord)
			VALUES (?, ?, ?, ?)`,
			entryID, actorID, m.Character, m.Order,
		); err != nil {
			return fmt.Errorf("link actor %q: %w", m.Name, mapSQLiteError(err))
		}
	}
	return nil
}

func replaceSeasons(q querier, entryID int64, seasons []SeasonInfo) error {
	if _, err := q.Exec("DELETE FROM seasons WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("clear seasons: %w", mapSQLiteError(err))
	}
	for _, s := range seasons {
		if _, err := q.Exec(`
			INSERT INTO seasons (entry_id, number, name, overview, poster_path, air_date, episode_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entryID, s.Number, s.Name, s.Overview, s.PosterPath, s.AirDate, s.EpisodeCount,
		); err != nil {
			return fmt.Errorf("insert season %d: %w", s.Number, mapSQLiteError(err))
		}
	}
	return nil
}

func getEnrichment(q querier, entryID int64) (*Enrichment, error) {
	e := &Enrichment{}
	err := q.QueryRow(
		"SELECT "+enrichmentColumns+" FROM enrichment WHERE entry_id = ?", entryID,
	).Scan(&e.EntryID, &e.TMDBID, &e.Overview, &e.Tagline, &e.ReleaseDate,
		&e.Runtime, &e.VoteAverage, &e.VoteCount, &e.PosterPath, &e.BackdropPath, &e.LogoPath,
		&e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get enrichment %d: %w", entryID, mapSQLiteError(err))
	}

	var lerr error
	e.Genres, lerr = linkedNames(q, "genres", "entry_genres", "genre_id", entryID)
	if lerr != nil {
		return nil, lerr
	}
	e.Companies, lerr = linkedNames(q, "production_companies", "entry_companies", "company_id", entryID)
	if lerr != nil {
		return nil, lerr
	}
	e.Networks, lerr = linkedNames(q, "networks", "entry_networks", "network_id", entryID)
	if lerr != nil {
		return nil, lerr
	}
	if e.Ratings, lerr = linkedRatings(q, entryID); lerr != nil {
		return nil, lerr
	}
	if e.Cast, lerr = linkedCast(q, entryID); lerr != nil {
		return nil, lerr
	}
	if e.Seasons, lerr = linkedSeasons(q, entryID); lerr != nil {
		return nil, lerr
	}
	return e, nil
}

// GetEnrichment retrieves an entry's enrichment with all linked names.
// Returns ErrNotFound when the entry was never enriched.
func (s *Store) GetEnrichment(entryID int64) (*Enrichment, error) {
	return getEnrichment(s.db, entryID)
}

// GetEnrichment retrieves an entry's enrichment within a transaction.
func (t *Tx) GetEnrichment(entryID int64) (*Enrichment, error) {
	return getEnrichment(t.tx, entryID)
}

func linkedNames(q querier, refTable, linkTable, linkCol string, entryID int64) ([]string, error) {
	rows, err := q.Query(
		"SELECT r.name FROM "+linkTable+" l JOIN "+refTable+" r ON r.id = l."+linkCol+
			" WHERE l.entry_id = ? ORDER BY r.name",
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", linkTable, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan %s: %w", refTable, err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func linkedRatings(q querier, entryID int64) ([]RatingPair, error) {
	rows, err := q.Query(`
		SELECT r.rating, r.country
		FROM entry_ratings l JOIN content_ratings r ON r.id = l.rating_id
		WHERE l.entry_id = ? ORDER BY r.country, r.rating`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ratings []RatingPair
	for rows.Next() {
		var r RatingPair
		if err := rows.Scan(&r.Rating, &r.Country); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func linkedCast(q querier, entryID int64) ([]CastMember, error) {
	rows, err := q.Query(`
		SELECT a.name, l.character_name, a.profile_path, l.ord
		FROM entry_actors l JOIN actors a ON a.id = l.actor_id
		WHERE l.entry_id = ? ORDER BY l.ord, a.name`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cast: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cast []CastMember
	for rows.Next() {
		var m CastMember
		if err := rows.Scan(&m.Name, &m.Character, &m.ProfilePath, &m.Order); err != nil {
			return nil, fmt.Errorf("scan cast member: %w", err)
		}
		cast = append(cast, m)
	}
	return cast, rows.Err()
}

func linkedSeasons(q querier, entryID int64) ([]SeasonInfo, error) {
	rows, err := q.Query(`
		SELECT number, name, overview, poster_path, air_date, episode_count
		FROM seasons WHERE entry_id = ? ORDER BY number`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var seasons []SeasonInfo
	for rows.Next() {
		var s SeasonInfo
		if err := rows.Scan(&s.Number, &s.Name, &s.Overview, &s.PosterPath, &s.AirDate, &s.EpisodeCount); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// equalEnrichment compares everything except UpdatedAt. Name lists are
// compared as sets.
func equalEnrichment(a, b *Enrichment) bool {
	return a.TMDBID == b.TMDBID &&
		a.Overview == b.Overview &&
		a.Tagline == b.Tagline &&
		a.ReleaseDate == b.ReleaseDate &&
		a.Runtime == b.Runtime &&
		a.VoteAverage == b.VoteAverage &&
		a.VoteCount == b.VoteCount &&
		a.PosterPath == b.PosterPath &&
		a.BackdropPath == b.BackdropPath &&
		a.LogoPath == b.LogoPath &&
		equalNameSets(a.Genres, b.Genres) &&
		equalNameSets(a.Companies, b.Companies) &&
		equalNameSets(a.Networks, b.Networks) &&
		equalRatingSets(a.Ratings, b.Ratings) &&
		slices.Equal(a.Cast, b.Cast) &&
		slices.Equal(a.Seasons, b.Seasons)
}

func equalRatingSets(a, b []RatingPair) bool {
	if len(a) != len(b) {
		return false
	}
	cmp := func(x, y RatingPair) int {
		if x.Country != y.Country {
			return strings.Compare(x.Country, y.Country)
		}
		return strings.Compare(x.Rating, y.Rating)
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.SortFunc(as, cmp)
	slices.SortFunc(bs, cmp)
	return slices.Equal(as, bs)
}

func equalNameSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
