package library

import (
	"fmt"
	"strings"
	"time"
)

func addEntry(q querier, e *Entry) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO entries (kind, title, year, hash, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Kind, e.Title, e.Year, e.Hash, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	e.AddedAt = now
	e.UpdatedAt = now
	return nil
}

// AddEntry inserts a new catalog entry.
// Sets ID, AddedAt, and UpdatedAt on the struct.
// Returns ErrDuplicate when the identity hash is already present.
func (s *Store) AddEntry(e *Entry) error { return addEntry(s.db, e) }

// AddEntry inserts a new catalog entry within a transaction.
func (t *Tx) AddEntry(e *Entry) error { return addEntry(t.tx, e) }

const entryColumns = "id, kind, title, year, hash, added_at, updated_at"

func scanEntry(row interface{ Scan(...any) error }) (*Entry, error) {
	e := &Entry{}
	err := row.Scan(&e.ID, &e.Kind, &e.Title, &e.Year, &e.Hash, &e.AddedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func entryByHash(q querier, hash string) (*Entry, error) {
	e, err := scanEntry(q.QueryRow(
		"SELECT "+entryColumns+" FROM entries WHERE hash = ?", hash))
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", hash, mapSQLiteError(err))
	}
	return e, nil
}

// EntryByHash retrieves an entry by identity hash.
// Returns ErrNotFound if no entry carries the hash.
func (s *Store) EntryByHash(hash string) (*Entry, error) { return entryByHash(s.db, hash) }

// EntryByHash retrieves an entry by identity hash within a transaction.
func (t *Tx) EntryByHash(hash string) (*Entry, error) { return entryByHash(t.tx, hash) }

func entryHashes(q querier) (map[string]struct{}, error) {
	rows, err := q.Query("SELECT hash FROM entries")
	if err != nil {
		return nil, fmt.Errorf("list entry hashes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	hashes := make(map[string]struct{})
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan entry hash: %w", err)
		}
		hashes[h] = struct{}{}
	}
	return hashes, rows.Err()
}

// EntryHashes returns the identity hashes of all persisted entries, the
// set the reconciler diffs a scan against.
func (s *Store) EntryHashes() (map[string]struct{}, error) { return entryHashes(s.db) }

// EntryHashes returns all persisted entry hashes within a transaction.
func (t *Tx) EntryHashes() (map[string]struct{}, error) { return entryHashes(t.tx) }

// EntryFilter narrows ListEntries results. Nil fields are ignored.
type EntryFilter struct {
	Kind   *EntryKind
	Title  *string
	Year   *int
	Limit  int
	Offset int
}

func listEntries(q querier, f EntryFilter) ([]*Entry, int, error) {
	var conditions []string
	var args []any

	if f.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *f.Kind)
	}
	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.Year != nil {
		conditions = append(conditions, "year = ?")
		args = append(args, *f.Year)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM entries "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	query := "SELECT " + entryColumns + " FROM entries " + whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entry: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate entries: %w", err)
	}

	return results, total, nil
}

// ListEntries returns entries matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListEntries(f EntryFilter) ([]*Entry, int, error) { return listEntries(s.db, f) }

// ListEntries returns entries matching the filter within a transaction.
func (t *Tx) ListEntries(f EntryFilter) ([]*Entry, int, error) { return listEntries(t.tx, f) }

// EntriesForEnrichment returns entries whose enrichment is missing or
// older than staleBefore. The throttle that keeps repeated syncs from
// hammering the metadata provider lives in this query.
func (s *Store) EntriesForEnrichment(staleBefore time.Time) ([]*Entry, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.kind, e.title, e.year, e.hash, e.added_at, e.updated_at
		FROM entries e
		LEFT JOIN enrichment m ON m.entry_id = e.id
		WHERE m.entry_id IS NULL OR m.updated_at < ?
		ORDER BY e.id`,
		staleBefore,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries for enrichment: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func deleteEntry(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteEntry removes an entry by ID; videos, subtitles and enrichment
// cascade. Idempotent: deleting a missing entry is not an error.
func (s *Store) DeleteEntry(id int64) error { return deleteEntry(s.db, id) }

// DeleteEntry removes an entry by ID within a transaction.
func (t *Tx) DeleteEntry(id int64) error { return deleteEntry(t.tx, id) }
