package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// PostgresLog stores events in an insert-only table, partitioned by feed
// via the source column so both dashboards share one table.
type PostgresLog struct {
	db     *sql.DB
	source string
}

func NewPostgresLog(db *sql.DB, source string) *PostgresLog {
	return &PostgresLog{db: db, source: source}
}

func (l *PostgresLog) Append(ctx context.Context, payload json.RawMessage) (time.Time, error) {
	receivedAt := time.Now().UTC()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO events (source, received_at, payload) VALUES ($1, $2, $3)`,
		l.source, receivedAt, []byte(payload),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("insert event: %w", err)
	}
	return receivedAt, nil
}

func (l *PostgresLog) Replay(ctx context.Context) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, received_at, payload
		FROM events
		WHERE source = $1
		ORDER BY id ASC
	`, l.source)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var id int64
		var ev Event
		var payload []byte
		if err := rows.Scan(&id, &ev.ReceivedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if !json.Valid(payload) {
			slog.Warn("skipping corrupt event payload", "source", l.source, "id", id)
			continue
		}
		ev.Payload = json.RawMessage(payload)
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return events, nil
}
