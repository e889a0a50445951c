package handler

import (
	"net/http"
	"time"

	"orderdash/internal/store"
)

type healthResponse struct {
	OK              bool   `json:"ok"`
	Time            string `json:"time"`
	LastLiveEventAt string `json:"last_live_event_at,omitempty"`
}

// HealthHandler reports liveness plus the most recent webhook arrival
// across all feeds.
func HealthHandler(stores ...*store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var last time.Time
		for _, st := range stores {
			if at, ok := st.LastEventAt(); ok && at.After(last) {
				last = at
			}
		}

		resp := healthResponse{OK: true, Time: time.Now().UTC().Format(time.RFC3339)}
		if !last.IsZero() {
			resp.LastLiveEventAt = last.Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
