package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderdash/internal/eventlog"
	"orderdash/internal/field"
	"orderdash/internal/model"
	"orderdash/internal/pipeline"
	"orderdash/internal/store"
)

// OrderService serves the orders dashboard: normalize, aggregate and
// summarize over the full accumulated row sequence on every request.
type OrderService struct {
	store         *store.Store
	log           eventlog.Log
	schema        field.Schema
	rules         pipeline.OrderRules
	bootstrapPath string
}

func NewOrderService(st *store.Store, log eventlog.Log, schema field.Schema, rules pipeline.OrderRules, bootstrapPath string) *OrderService {
	return &OrderService{
		store:         st,
		log:           log,
		schema:        schema,
		rules:         rules,
		bootstrapPath: bootstrapPath,
	}
}

// Replay loads previously logged webhook events into the store. Called
// once at startup, before the server accepts requests.
func (s *OrderService) Replay(ctx context.Context) error {
	return replayInto(ctx, s.log, s.schema, s.store)
}

// View recomputes the whole dashboard from the current row sequence.
func (s *OrderService) View(ctx context.Context) model.OrdersView {
	rows := pipeline.Normalize(s.store.Rows(), s.schema.InheritNames())
	groups := pipeline.Aggregate(rows, s.rules)
	return model.OrdersView{
		Orders:  pipeline.BuildOrders(groups),
		Summary: pipeline.Summarize(groups),
		Meta:    buildMeta(s.store, s.bootstrapPath),
	}
}

type OrderIngestResult struct {
	OrderKey string
	Summary  model.OrdersSummary
}

// Ingest logs the webhook payload, appends it to the row sequence as one
// row, and returns the recomputed summary.
func (s *OrderService) Ingest(ctx context.Context, payload map[string]any) (*OrderIngestResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	receivedAt, err := s.log.Append(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("log event: %w", err)
	}

	row := s.schema.Resolve(field.Flatten(payload))
	s.store.AppendLive(row, receivedAt)

	view := s.View(ctx)
	return &OrderIngestResult{
		OrderKey: pipeline.OrderKey(row.Get(field.Prefix), row.Get(field.RefNumber)),
		Summary:  view.Summary,
	}, nil
}

func replayInto(ctx context.Context, log eventlog.Log, schema field.Schema, st *store.Store) error {
	events, err := log.Replay(ctx)
	if err != nil {
		return fmt.Errorf("replay event log: %w", err)
	}
	for _, ev := range events {
		var payload any
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			continue
		}
		st.AppendLive(schema.Resolve(field.Flatten(payload)), ev.ReceivedAt)
	}
	return nil
}

func buildMeta(st *store.Store, bootstrapPath string) model.Meta {
	meta := model.Meta{BootstrapCSV: bootstrapPath}
	if at, ok := st.LastEventAt(); ok {
		meta.LastLiveEventAt = at.Format(time.RFC3339)
	}
	return meta
}
