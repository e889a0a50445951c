package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/field"
	"orderdash/internal/model"
	"orderdash/internal/pipeline"
)

func TestSplitOrderValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single value", "PO-1001", []string{"PO-1001"}},
		{"comma separated", "PO-1001, PO-1002", []string{"PO-1001", "PO-1002"}},
		{"mixed separators", "A123;B456\r\nC789", []string{"A123", "B456", "C789"}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pipeline.SplitOrderValues(tt.raw))
		})
	}
}

func TestBuildRecords(t *testing.T) {
	t.Parallel()

	rows := []model.Row{
		{field.OrderValue: "PO-2, PO-1", field.DroppedOffBy: "carrier a", field.AddedTime: "t1"},
		{field.OrderValue: "", field.DroppedOffBy: "carrier b"},
		{field.OrderValue: "PO-1", field.DroppedOffBy: "carrier c", field.AddedTime: "t2"},
	}

	records, summary := pipeline.BuildRecords(rows)
	require.Len(t, records, 3)

	// sorted by order value then added time, ids assigned after sorting
	assert.Equal(t, "PO-1", records[0].OrderValue)
	assert.Equal(t, "t1", records[0].AddedTime)
	assert.Equal(t, "PO-1", records[1].OrderValue)
	assert.Equal(t, "t2", records[1].AddedTime)
	assert.Equal(t, "PO-2", records[2].OrderValue)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.ID)
	}

	assert.Equal(t, model.RecordsSummary{TotalRecords: 3, UniqueOrders: 2}, summary)
}

func TestBuildRecordsEmpty(t *testing.T) {
	t.Parallel()

	records, summary := pipeline.BuildRecords(nil)
	assert.Empty(t, records)
	assert.Equal(t, model.RecordsSummary{}, summary)
}
