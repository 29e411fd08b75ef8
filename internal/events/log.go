package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// EventLog is the durable history of what syncs did to the catalog,
// stored in the same SQLite database as the catalog itself.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates an event log backed by db.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// Append persists one event with its JSON payload and returns the row id.
func (l *EventLog) Append(e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	result, err := l.db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	return result.LastInsertId()
}

// StoredEvent is one persisted event row. Payload carries the original
// event as JSON; callers that need typed fields unmarshal it themselves.
type StoredEvent struct {
	ID         int64
	EventType  string
	EntityType string
	EntityID   int64
	Payload    string
	OccurredAt time.Time
	CreatedAt  time.Time
}

const storedEventColumns = `id, event_type, entity_type, entity_id, payload, occurred_at, created_at`

// Recent returns the newest events first, at most limit of them.
func (l *EventLog) Recent(limit int) ([]StoredEvent, error) {
	return l.selectEvents(`ORDER BY id DESC LIMIT ?`, limit)
}

// Since returns events that occurred at or after t, oldest first.
func (l *EventLog) Since(t time.Time) ([]StoredEvent, error) {
	return l.selectEvents(`WHERE occurred_at >= ? ORDER BY id ASC`, t)
}

// ForEntity returns the full history of one entity, oldest first. The
// entityType is one of "sync", "entry" or "video".
func (l *EventLog) ForEntity(entityType string, entityID int64) ([]StoredEvent, error) {
	return l.selectEvents(`WHERE entity_type = ? AND entity_id = ? ORDER BY id ASC`,
		entityType, entityID)
}

// Prune deletes events that occurred more than olderThan ago and
// returns how many rows went.
func (l *EventLog) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := l.db.Exec(`DELETE FROM events WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return result.RowsAffected()
}

func (l *EventLog) selectEvents(clause string, args ...any) ([]StoredEvent, error) {
	rows, err := l.db.Query(`SELECT `+storedEventColumns+` FROM events `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var e StoredEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.EntityType, &e.EntityID,
			&e.Payload, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
