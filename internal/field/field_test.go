package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orderdash/internal/field"
)

func TestFirstValue(t *testing.T) {
	t.Parallel()

	flat := map[string]string{
		"Ref Number": "  1001  ",
		"Status":     "",
		"stage":      "In Transit",
	}

	t.Run("first matching alias wins, trimmed", func(t *testing.T) {
		t.Parallel()
		got := field.FirstValue(flat, []string{"Reference Number", "Ref Number", "ref_number"})
		assert.Equal(t, "1001", got)
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1001", field.FirstValue(flat, []string{"REF NUMBER"}))
	})

	t.Run("blank values are skipped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "In Transit", field.FirstValue(flat, []string{"Status", "Stage"}))
	})

	t.Run("no alias present", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", field.FirstValue(flat, []string{"Prefix"}))
	})
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"Prefix": "A",
		"form": map[string]any{
			"Ref Number": "1001",
			"count":      float64(2),
		},
		"tags": []any{"x", "y"},
	}

	flat := field.Flatten(payload)

	// nested keys are reachable both by dotted path and bare key
	assert.Equal(t, "1001", flat["form.Ref Number"])
	assert.Equal(t, "1001", flat["Ref Number"])
	assert.Equal(t, "A", flat["Prefix"])
	assert.Equal(t, "2", flat["count"])
	assert.Equal(t, "x", flat["tags[0]"])
	assert.Equal(t, "y", flat["tags[1]"])
}

func TestSchemaResolve(t *testing.T) {
	t.Parallel()

	schema := field.Schema{
		Fields: []field.Field{
			{Name: field.Prefix, Aliases: []string{"Prefix"}},
			{Name: field.RefNumber, Aliases: []string{"Ref Number", "ref_number"}},
			{Name: field.User, Aliases: []string{"USER", "User"}, Inherit: true},
			{Name: field.Stage, Aliases: []string{"Stage"}, Inherit: true},
		},
		KeyFields: []string{field.Prefix, field.RefNumber},
	}

	row := schema.Resolve(map[string]string{
		"ref_number": "7",
		"User":       " alice ",
	})

	assert.Equal(t, "7", row.Get(field.RefNumber))
	assert.Equal(t, "alice", row.Get(field.User))
	// fields with no recognized alias come out blank, not missing
	assert.Equal(t, "", row.Get(field.Prefix))
	assert.Equal(t, "", row.Get(field.Stage))

	assert.Equal(t, []string{field.User, field.Stage}, schema.InheritNames())
}
