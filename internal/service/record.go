package service

import (
	"context"
	"encoding/json"
	"fmt"

	"orderdash/internal/eventlog"
	"orderdash/internal/field"
	"orderdash/internal/model"
	"orderdash/internal/pipeline"
	"orderdash/internal/store"
)

// RecordService serves the barcode dashboard: a flat record list where one
// ingested row may expand into several records.
type RecordService struct {
	store         *store.Store
	log           eventlog.Log
	schema        field.Schema
	bootstrapPath string
}

func NewRecordService(st *store.Store, log eventlog.Log, schema field.Schema, bootstrapPath string) *RecordService {
	return &RecordService{
		store:         st,
		log:           log,
		schema:        schema,
		bootstrapPath: bootstrapPath,
	}
}

func (s *RecordService) Replay(ctx context.Context) error {
	return replayInto(ctx, s.log, s.schema, s.store)
}

func (s *RecordService) View(ctx context.Context) model.RecordsView {
	rows := pipeline.Normalize(s.store.Rows(), s.schema.InheritNames())
	records, summary := pipeline.BuildRecords(rows)
	return model.RecordsView{
		Records: records,
		Summary: summary,
		Meta:    buildMeta(s.store, s.bootstrapPath),
	}
}

type RecordIngestResult struct {
	ReceivedRecords int
	LastEventAt     string
}

func (s *RecordService) Ingest(ctx context.Context, payload map[string]any) (*RecordIngestResult, error) {
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

	return &RecordIngestResult{
		ReceivedRecords: len(pipeline.SplitOrderValues(row.Get(field.OrderValue))),
		LastEventAt:     buildMeta(s.store, s.bootstrapPath).LastLiveEventAt,
	}, nil
}
