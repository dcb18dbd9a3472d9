package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/domain/schema"
)

func derivedField(id, formula string, parents ...string) schema.Field {
	return schema.Field{
		ID:      id,
		Type:    schema.FieldTypeText,
		Label:   id,
		Derived: true,
		Parents: parents,
		Formula: formula,
	}
}

func TestRecomputeDerived(t *testing.T) {
	fields := []schema.Field{
		{ID: "a", Type: schema.FieldTypeNumber, Label: "a"},
		{ID: "b", Type: schema.FieldTypeNumber, Label: "b"},
		derivedField("sum", "{{a}} + {{b}}", "a", "b"),
	}
	values := map[string]any{"a": float64(2), "b": float64(3)}

	merged := application.RecomputeDerived(fields, values)
	assert.Equal(t, float64(5), merged["sum"])
	assert.Equal(t, float64(2), merged["a"])

	// the input snapshot is not mutated
	_, ok := values["sum"]
	assert.False(t, ok)
}

func TestRecomputeDerivedUsesPrePassSnapshot(t *testing.T) {
	// "second" derives from "first", which is itself derived. Within one
	// pass, "second" must see first's value from the snapshot, not the
	// value first was just given.
	fields := []schema.Field{
		{ID: "n", Type: schema.FieldTypeNumber, Label: "n"},
		derivedField("first", "{{n}} * 2", "n"),
		derivedField("second", "{{first}} + 1", "first"),
	}

	values := map[string]any{"n": float64(5), "first": float64(0)}
	merged := application.RecomputeDerived(fields, values)
	assert.Equal(t, float64(10), merged["first"])
	assert.Equal(t, float64(1), merged["second"]) // stale first (0) + 1

	// next pass converges
	merged = application.RecomputeDerived(fields, merged)
	assert.Equal(t, float64(11), merged["second"])
}

func TestRecomputeDerivedCycleConverges(t *testing.T) {
	fields := []schema.Field{
		derivedField("a", "{{b}} + 0", "b"),
		derivedField("b", "{{a}} + 0", "a"),
	}
	values := map[string]any{"a": float64(1), "b": float64(2)}

	merged := application.RecomputeDerived(fields, values)
	assert.Equal(t, float64(2), merged["a"])
	assert.Equal(t, float64(1), merged["b"])

	// a second pass swaps back; each pass terminates, nothing loops
	merged = application.RecomputeDerived(fields, merged)
	assert.Equal(t, float64(1), merged["a"])
	assert.Equal(t, float64(2), merged["b"])
}

func TestRecomputeDerivedErrorMarker(t *testing.T) {
	fields := []schema.Field{
		derivedField("bad", "1 +"),
		derivedField("unsafe", "while(1)"),
		derivedField("good", "1 + 1"),
	}
	merged := application.RecomputeDerived(fields, map[string]any{})

	assert.Equal(t, float64(2), merged["good"])
	assert.Equal(t, "Err: Unsafe expression", merged["unsafe"])
	bad, _ := merged["bad"].(string)
	assert.Contains(t, bad, "Err: ")
}

func TestPreviewServiceFlow(t *testing.T) {
	svc, _ := setupDraft(t)
	preview := application.NewPreviewService(svc)

	name, err := svc.AddField(schema.CreateFieldDTO{Type: schema.FieldTypeText})
	require.NoError(t, err)
	boxes, err := svc.AddField(schema.CreateFieldDTO{Type: schema.FieldTypeCheckbox})
	require.NoError(t, err)
	_, err = svc.UpdateField(name.ID, schema.UpdateFieldDTO{Label: "Name", Required: true})
	require.NoError(t, err)
	_, err = svc.UpdateField(boxes.ID, schema.UpdateFieldDTO{Label: "Tags"})
	require.NoError(t, err)

	values, err := preview.InitialValues()
	require.NoError(t, err)
	assert.Equal(t, "", values[name.ID])

	errs, err := preview.Validate(values)
	require.NoError(t, err)
	assert.Equal(t, "Required", errs[name.ID])

	values[name.ID] = "x"
	errs, err = preview.Validate(values)
	require.NoError(t, err)
	assert.NotContains(t, errs, name.ID)
}
