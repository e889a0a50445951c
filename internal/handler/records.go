package handler

import (
	"log/slog"
	"net/http"

	"orderdash/internal/service"
)

func RecordsHandler(recordSvc *service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, recordSvc.View(r.Context()))
	}
}

type recordWebhookResponse struct {
	OK              bool   `json:"ok"`
	ReceivedRecords int    `json:"received_records"`
	LastLiveEventAt string `json:"last_live_event_at,omitempty"`
}

func RecordsWebhookHandler(recordSvc *service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readPayload(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_payload"})
			return
		}

		res, err := recordSvc.Ingest(r.Context(), payload)
		if err != nil {
			slog.Error("barcode webhook ingest failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
			return
		}

		writeJSON(w, http.StatusOK, recordWebhookResponse{
			OK:              true,
			ReceivedRecords: res.ReceivedRecords,
			LastLiveEventAt: res.LastEventAt,
		})
	}
}
