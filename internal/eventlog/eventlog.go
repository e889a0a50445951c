// Package eventlog records every accepted webhook payload for replay on
// startup. The log is append-only; nothing is ever rewritten or deleted.
package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Event is one accepted webhook payload and when it arrived.
type Event struct {
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Log is an append-only event store.
type Log interface {
	// Append records the payload and returns the arrival timestamp.
	Append(ctx context.Context, payload json.RawMessage) (time.Time, error)
	// Replay returns all recorded events in arrival order. Corrupt
	// entries are skipped, never fatal.
	Replay(ctx context.Context) ([]Event, error)
}
