package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/gavel/internal/market/event"
)

// AppendEvent atomically appends an event and returns it with its sequence
// number set.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.ItemID) == "" {
		return event.Event{}, fmt.Errorf("item id is required")
	}
	if strings.TrimSpace(string(evt.Type)) == "" {
		return event.Event{}, fmt.Errorf("event type is required")
	}

	payload := evt.PayloadJSON
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO market_events (item_id, type, timestamp, actor, payload)
VALUES (?, ?, ?, ?, ?)
`, evt.ItemID, string(evt.Type), toMillis(evt.Timestamp), evt.Actor, string(payload))
	if err != nil {
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return event.Event{}, fmt.Errorf("event sequence: %w", err)
	}

	evt.Seq = uint64(seq)
	evt.PayloadJSON = payload
	return evt, nil
}

// ListEvents returns events with seq greater than afterSeq, ordered by seq
// ascending, up to limit.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, item_id, type, timestamp, actor, payload
FROM market_events
WHERE seq > ?
ORDER BY seq ASC
LIMIT ?
`, int64(afterSeq), limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			seq         int64
			itemID, typ string
			timestamp   int64
			actor       string
			payload     sql.NullString
		)
		if err := rows.Scan(&seq, &itemID, &typ, &timestamp, &actor, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt := event.Event{
			Seq:       uint64(seq),
			ItemID:    itemID,
			Type:      event.Type(typ),
			Timestamp: fromMillis(timestamp),
			Actor:     actor,
		}
		if payload.Valid {
			evt.PayloadJSON = []byte(payload.String)
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}
