package model

// Row holds one ingested row, keyed by logical field name.
type Row map[string]string

func (r Row) Get(name string) string {
	return r[name]
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
