package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

// readPayload parses a webhook body into a flat-ish map. JSON objects pass
// through; JSON arrays are wrapped under "items"; urlencoded forms become
// key/value pairs; anything else is kept verbatim under "raw_body".
func readPayload(r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	ctype := strings.ToLower(r.Header.Get("Content-Type"))

	switch {
	case strings.Contains(ctype, "application/json"):
		if len(body) == 0 {
			return map[string]any{}, nil
		}
		var data any
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if obj, ok := data.(map[string]any); ok {
			return obj, nil
		}
		return map[string]any{"items": data}, nil

	case strings.Contains(ctype, "application/x-www-form-urlencoded"):
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("decode form: %w", err)
		}
		payload := make(map[string]any, len(values))
		for k, v := range values {
			if len(v) == 1 {
				payload[k] = v[0]
			} else {
				payload[k] = v
			}
		}
		return payload, nil

	default:
		return map[string]any{"raw_body": string(body)}, nil
	}
}
