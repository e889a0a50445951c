package pipeline

import "orderdash/internal/model"

// Normalize applies the blank-row inheritance rule: when every field named
// in inherit is blank on a row, those fields are copied from the previous
// emitted row. Rows with any of the fields set keep all their own values,
// and the first row is always emitted unchanged. The transform is pure and
// order-sensitive.
func Normalize(rows []model.Row, inherit []string) []model.Row {
	out := make([]model.Row, 0, len(rows))
	var prev model.Row
	for _, row := range rows {
		norm := row.Clone()
		if prev != nil && allBlank(norm, inherit) {
			for _, name := range inherit {
				norm[name] = prev.Get(name)
			}
		}
		out = append(out, norm)
		prev = norm
	}
	return out
}

func allBlank(row model.Row, fields []string) bool {
	for _, name := range fields {
		if row.Get(name) != "" {
			return false
		}
	}
	return len(fields) > 0
}
