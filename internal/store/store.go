// Package store holds the accumulated row sequence for one feed: bootstrap
// rows in file order, then live rows in arrival order.
package store

import (
	"sync"
	"time"

	"orderdash/internal/model"
)

type Store struct {
	mu        sync.Mutex
	bootstrap []model.Row
	live      []model.Row
	lastEvent time.Time
	hasEvent  bool
}

func New(bootstrap []model.Row) *Store {
	return &Store{bootstrap: bootstrap}
}

// AppendLive adds one live row and advances the last-event timestamp.
func (s *Store) AppendLive(row model.Row, receivedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = append(s.live, row)
	if !s.hasEvent || receivedAt.After(s.lastEvent) {
		s.lastEvent = receivedAt
		s.hasEvent = true
	}
}

// Rows returns a snapshot copy of the full sequence, so callers never see a
// half-appended state.
func (s *Store) Rows() []model.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Row, 0, len(s.bootstrap)+len(s.live))
	out = append(out, s.bootstrap...)
	out = append(out, s.live...)
	return out
}

// LastEventAt reports when the most recent live event arrived, and whether
// any has.
func (s *Store) LastEventAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEvent, s.hasEvent
}
