package mw

import (
	"net/http"
	"strings"
)

// WebhookSecret guards webhook routes with a shared secret. When no secret
// is configured every request passes. The secret is accepted from the
// "secret" query parameter, the X-Webhook-Secret header, or a bearer
// token, and must match exactly. Rejected requests never reach the
// handler, so no state is mutated and nothing is logged to the event log.
func WebhookSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			presented := []string{
				r.URL.Query().Get("secret"),
				r.Header.Get("X-Webhook-Secret"),
				strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
			}
			for _, p := range presented {
				if p != "" && p == secret {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		})
	}
}
