package field

import (
	"fmt"
	"strings"

	"orderdash/internal/model"
)

// Logical field names shared by the CSV loader, webhook resolver and pipeline.
const (
	Prefix    = "prefix"
	RefNumber = "ref_number"
	Stage     = "stage"
	User      = "user"
	AddedTime = "added_time"

	OrderValue   = "order_value"
	DroppedOffBy = "dropped_off_by"
	DateTime     = "date_time"
)

// Field maps one logical field to the raw labels it may appear under.
// Inherit marks fields covered by the blank-row inheritance rule.
type Field struct {
	Name    string
	Aliases []string
	Inherit bool
}

// Schema is the ordered field list for one dashboard variant. KeyFields
// name the fields that form the group key, in key order.
type Schema struct {
	Fields    []Field
	KeyFields []string
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// InheritNames returns the fields subject to blank-row inheritance.
func (s Schema) InheritNames() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Inherit {
			names = append(names, f.Name)
		}
	}
	return names
}

// Resolve maps a flattened payload onto a Row via first-match alias lookup.
// Fields with no matching alias come out blank.
func (s Schema) Resolve(flat map[string]string) model.Row {
	row := make(model.Row, len(s.Fields))
	for _, f := range s.Fields {
		row[f.Name] = FirstValue(flat, f.Aliases)
	}
	return row
}

// FirstValue returns the trimmed value of the first alias present in flat
// with a non-blank value. Lookup is case-insensitive.
func FirstValue(flat map[string]string, aliases []string) string {
	lowered := make(map[string]string, len(flat))
	for k, v := range flat {
		lowered[strings.ToLower(k)] = v
	}
	for _, alias := range aliases {
		if v, ok := lowered[strings.ToLower(alias)]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// Flatten collapses an arbitrarily nested JSON value into string leaves.
// Nested object keys are recorded both under their dotted path and under
// the bare key, so alias lists keep matching when form builders wrap
// fields in envelope objects.
func Flatten(data any) map[string]string {
	out := make(map[string]string)
	flattenInto(data, "", out)
	return out
}

func flattenInto(data any, prefix string, out map[string]string) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			p := key
			if prefix != "" {
				p = prefix + "." + key
			}
			flattenInto(value, p, out)
			switch value.(type) {
			case map[string]any, []any:
			default:
				out[key] = stringify(value)
			}
		}
	case []any:
		for idx, value := range v {
			flattenInto(value, fmt.Sprintf("%s[%d]", prefix, idx), out)
		}
	default:
		out[prefix] = stringify(v)
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
