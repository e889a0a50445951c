// Package csvload reads bootstrap CSV exports into rows keyed by logical
// field name. Report exports are messy: labels may differ per export (alias
// lists), the real field labels sometimes sit on the second line, and
// label rows repeat mid-file.
package csvload

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"orderdash/internal/field"
	"orderdash/internal/model"
)

// LoadFile reads the CSV at path. A missing file yields an empty bootstrap,
// not an error.
func LoadFile(path string, schema field.Schema) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("bootstrap csv not found, starting empty", "path", path)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return Load(f, schema)
}

// Load parses CSV content. Malformed lines are skipped with a warning and
// never abort the load.
func Load(r io.Reader, schema field.Schema) ([]model.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var raw [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("skipping malformed csv line", "error", err)
			continue
		}
		raw = append(raw, record)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	cols, dataStart := resolveColumns(raw, schema)

	var rows []model.Row
	for _, record := range raw[dataStart:] {
		if blankRecord(record) || labelRecord(record, cols, schema) {
			continue
		}
		row := make(model.Row, len(schema.Fields))
		for _, f := range schema.Fields {
			row[f.Name] = cell(record, cols[f.Name])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// resolveColumns maps each logical field to its column index. When the
// second line resolves every key field, it holds the real labels and data
// starts on line three.
func resolveColumns(raw [][]string, schema field.Schema) (map[string]int, int) {
	cols := make(map[string]int, len(schema.Fields))
	for _, f := range schema.Fields {
		cols[f.Name] = columnIndex(raw[0], f.Aliases)
	}
	dataStart := 1

	if len(raw) > 1 {
		keysOnSecond := true
		second := make(map[string]int, len(schema.Fields))
		for _, f := range schema.Fields {
			second[f.Name] = columnIndex(raw[1], f.Aliases)
		}
		for _, name := range schema.KeyFields {
			if second[name] < 0 {
				keysOnSecond = false
				break
			}
		}
		if keysOnSecond && len(schema.KeyFields) > 0 {
			for name, idx := range second {
				if idx >= 0 {
					cols[name] = idx
				}
			}
			dataStart = 2
		}
	}

	return cols, dataStart
}

func columnIndex(header []string, aliases []string) int {
	lookup := make(map[string]int, len(header))
	for i, c := range header {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			lookup[strings.ToLower(trimmed)] = i
		}
	}
	for _, alias := range aliases {
		if idx, ok := lookup[strings.ToLower(alias)]; ok {
			return idx
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func blankRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// labelRecord detects repeated field-label rows: any key-field cell whose
// value is itself one of that field's aliases.
func labelRecord(record []string, cols map[string]int, schema field.Schema) bool {
	for _, name := range schema.KeyFields {
		f, ok := schema.Field(name)
		if !ok {
			continue
		}
		value := cell(record, cols[name])
		for _, alias := range f.Aliases {
			if strings.EqualFold(value, alias) {
				return true
			}
		}
	}
	return false
}
