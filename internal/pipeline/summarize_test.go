package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orderdash/internal/field"
	"orderdash/internal/model"
	"orderdash/internal/pipeline"
)

func TestSummarizeCounts(t *testing.T) {
	t.Parallel()

	rows := []model.Row{
		{field.Prefix: "A", field.RefNumber: "1", field.Stage: "Paperwork Received"},
		{field.Prefix: "A", field.RefNumber: "1", field.Stage: "Product Received"},
		{field.Prefix: "A", field.RefNumber: "2", field.Stage: "Paperwork Received"},
		{field.Prefix: "A", field.RefNumber: "3", field.Stage: "Product Received"},
		{field.Prefix: "A", field.RefNumber: "4", field.Stage: "In Transit"},
	}

	groups := pipeline.Aggregate(rows, testRules)
	s := pipeline.Summarize(groups)

	assert.Equal(t, 4, s.TotalOrdersInView)
	assert.Equal(t, 1, s.CompleteBoth)
	assert.Equal(t, 2, s.PartialOne)
	assert.Equal(t, 1, s.PaperworkOnly)
	assert.Equal(t, 1, s.ProductOnly)
	assert.Equal(t, 1, s.NoneReceived)
}

// A group at neither milestone must land in the none bucket, never vanish
// from the total.
func TestSummarizeNoGroupVanishes(t *testing.T) {
	t.Parallel()

	rows := []model.Row{
		{field.Prefix: "A", field.RefNumber: "1", field.Stage: "In Transit"},
		{field.Prefix: "A", field.RefNumber: "2"},
	}

	groups := pipeline.Aggregate(rows, testRules)
	s := pipeline.Summarize(groups)

	assert.Equal(t, len(groups), s.TotalOrdersInView)
	assert.Equal(t, s.TotalOrdersInView, s.CompleteBoth+s.PartialOne+s.NoneReceived)
	assert.Equal(t, 2, s.NoneReceived)
	assert.Len(t, pipeline.BuildOrders(groups), s.TotalOrdersInView)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := pipeline.Summarize(pipeline.Aggregate(nil, testRules))
	assert.Equal(t, model.OrdersSummary{}, s)
}
