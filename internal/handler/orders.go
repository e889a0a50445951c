package handler

import (
	"log/slog"
	"net/http"

	"orderdash/internal/model"
	"orderdash/internal/service"
)

func OrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, orderSvc.View(r.Context()))
	}
}

type orderWebhookResponse struct {
	OK               bool                `json:"ok"`
	ReceivedOrderKey string              `json:"received_order_key"`
	Summary          model.OrdersSummary `json:"summary"`
}

func OrdersWebhookHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readPayload(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_payload"})
			return
		}

		res, err := orderSvc.Ingest(r.Context(), payload)
		if err != nil {
			slog.Error("order webhook ingest failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
			return
		}

		writeJSON(w, http.StatusOK, orderWebhookResponse{
			OK:               true,
			ReceivedOrderKey: res.OrderKey,
			Summary:          res.Summary,
		})
	}
}
