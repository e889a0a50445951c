package pipeline

import (
	"sort"
	"strings"

	"orderdash/internal/field"
	"orderdash/internal/model"
)

// SplitOrderValues splits a raw order cell into individual order values.
// Scanner guns batch several barcodes into one field separated by commas,
// semicolons or newlines.
func SplitOrderValues(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	normalized := strings.NewReplacer("\r", "\n", ",", "\n", ";", "\n").Replace(raw)
	var items []string
	for _, part := range strings.Split(normalized, "\n") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// BuildRecords expands normalized barcode rows into one record per order
// value and tallies the summary. Rows with an empty order cell drop out.
// Records are sorted by order value then added time.
func BuildRecords(rows []model.Row) ([]model.Record, model.RecordsSummary) {
	var records []model.Record
	unique := make(map[string]struct{})

	for _, row := range rows {
		for _, value := range SplitOrderValues(row.Get(field.OrderValue)) {
			records = append(records, model.Record{
				OrderValue:   value,
				DroppedOffBy: row.Get(field.DroppedOffBy),
				DateTime:     row.Get(field.DateTime),
				AddedTime:    row.Get(field.AddedTime),
			})
			unique[value] = struct{}{}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].OrderValue != records[j].OrderValue {
			return records[i].OrderValue < records[j].OrderValue
		}
		return records[i].AddedTime < records[j].AddedTime
	})
	for i := range records {
		records[i].ID = i + 1
	}

	return records, model.RecordsSummary{
		TotalRecords: len(records),
		UniqueOrders: len(unique),
	}
}
