package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/eventlog"
	"orderdash/internal/field"
	"orderdash/internal/handler"
	"orderdash/internal/model"
	"orderdash/internal/mw"
	"orderdash/internal/pipeline"
	"orderdash/internal/service"
	"orderdash/internal/store"
)

func ordersSchema() field.Schema {
	return field.Schema{
		Fields: []field.Field{
			{Name: field.Prefix, Aliases: []string{"Prefix"}},
			{Name: field.RefNumber, Aliases: []string{"Ref Number", "ref_number"}},
			{Name: field.Stage, Aliases: []string{"Stage"}, Inherit: true},
			{Name: field.User, Aliases: []string{"User"}, Inherit: true},
			{Name: field.AddedTime, Aliases: []string{"Added Time"}},
		},
		KeyFields: []string{field.Prefix, field.RefNumber},
	}
}

func rules() pipeline.OrderRules {
	return pipeline.OrderRules{
		PaperworkStages: []string{"Paperwork Received"},
		ProductStages:   []string{"Product Received"},
	}
}

// newTestServer wires an empty-bootstrap orders feed behind the same route
// layout as main.
func newTestServer(t *testing.T, secret string) (*httptest.Server, *eventlog.FileLog) {
	t.Helper()

	log := eventlog.NewFileLog(filepath.Join(t.TempDir(), "live.jsonl"))
	svc := service.NewOrderService(store.New(nil), log, ordersSchema(), rules(), "")

	r := chi.NewRouter()
	r.Get("/api/orders", handler.OrdersHandler(svc))
	r.Group(func(r chi.Router) {
		r.Use(mw.WebhookSecret(secret))
		r.Post("/api/orders/webhook", handler.OrdersWebhookHandler(svc))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, log
}

func getOrdersView(t *testing.T, srv *httptest.Server) model.OrdersView {
	t.Helper()

	resp, err := http.Get(srv.URL + "/api/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view model.OrdersView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestWebhookWrongSecretRejected(t *testing.T) {
	t.Parallel()

	srv, log := newTestServer(t, "topsecret")

	resp, err := http.Post(srv.URL+"/api/orders/webhook?secret=wrong", "application/json",
		strings.NewReader(`{"Prefix":"A","Ref Number":"1","Stage":"Paperwork Received","User":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// state untouched: nothing logged, summary still empty
	events, err := log.Replay(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	view := getOrdersView(t, srv)
	assert.Equal(t, 0, view.Summary.TotalOrdersInView)
	assert.Empty(t, view.Meta.LastLiveEventAt)
}

func TestWebhookMissingSecretRejected(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "topsecret")

	resp, err := http.Post(srv.URL+"/api/orders/webhook", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookSecretSources(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "topsecret")

	body := `{"Prefix":"A","Ref Number":"9"}`

	t.Run("query parameter", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/orders/webhook?secret=topsecret", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("header", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/orders/webhook", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Webhook-Secret", "topsecret")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bearer token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/orders/webhook", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer topsecret")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

// Empty bootstrap plus one live row: totals must equal 1 and the
// classification must match the row's flags.
func TestWebhookSingleLiveRow(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")

	resp, err := http.Post(srv.URL+"/api/orders/webhook", "application/json",
		strings.NewReader(`{"Prefix":"A","Ref Number":"1","Stage":"Paperwork Received","User":"x","Added Time":"01-Feb-2025 10:00:00"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var whResp struct {
		OK               bool                `json:"ok"`
		ReceivedOrderKey string              `json:"received_order_key"`
		Summary          model.OrdersSummary `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&whResp))
	assert.True(t, whResp.OK)
	assert.Equal(t, "A-1", whResp.ReceivedOrderKey)
	assert.Equal(t, 1, whResp.Summary.TotalOrdersInView)
	assert.Equal(t, 1, whResp.Summary.PaperworkOnly)

	view := getOrdersView(t, srv)
	require.Len(t, view.Orders, 1)
	assert.Equal(t, model.OrderTypePartial, view.Orders[0].OrderType)
	assert.Equal(t, model.PartialPaperworkOnly, view.Orders[0].PartialType)
	assert.NotEmpty(t, view.Meta.LastLiveEventAt)
}

func TestWebhookCompletesOrderAcrossEvents(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")

	for _, stage := range []string{"Paperwork Received", "Product Received"} {
		payload := `{"Prefix":"A","Ref Number":"1","Stage":"` + stage + `","User":"x"}`
		resp, err := http.Post(srv.URL+"/api/orders/webhook", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	view := getOrdersView(t, srv)
	require.Equal(t, 1, view.Summary.TotalOrdersInView)
	assert.Equal(t, 1, view.Summary.CompleteBoth)
	assert.Equal(t, model.OrderTypeComplete, view.Orders[0].OrderType)
}

func TestWebhookFormPayload(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")

	form := url.Values{"Prefix": {"B"}, "Ref Number": {"2"}, "Stage": {"Product Received"}}
	resp, err := http.Post(srv.URL+"/api/orders/webhook", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := getOrdersView(t, srv)
	require.Len(t, view.Orders, 1)
	assert.Equal(t, "B-2", view.Orders[0].OrderKey)
	assert.True(t, view.Orders[0].ProductReceived)
}

func TestWebhookMissingAliasesTreatedAsBlank(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")

	// no recognized key aliases at all: fields blank, empty key, no group
	resp, err := http.Post(srv.URL+"/api/orders/webhook", "application/json",
		strings.NewReader(`{"something":"else"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := getOrdersView(t, srv)
	assert.Equal(t, 0, view.Summary.TotalOrdersInView)
}
