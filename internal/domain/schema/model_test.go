package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldDefaults(t *testing.T) {
	text := NewField(FieldTypeText)
	assert.NotEmpty(t, text.ID)
	assert.Equal(t, "text label", text.Label)
	assert.False(t, text.Required)
	assert.Equal(t, "", text.DefaultValue)
	assert.Nil(t, text.Options)
	assert.Empty(t, text.Parents)
	assert.Equal(t, "", text.Formula)

	sel := NewField(FieldTypeSelect)
	assert.Equal(t, []string{"Option 1", "Option 2"}, sel.Options)
	radio := NewField(FieldTypeRadio)
	assert.Equal(t, []string{"Option 1", "Option 2"}, radio.Options)
	box := NewField(FieldTypeCheckbox)
	assert.Nil(t, box.Options)

	assert.NotEqual(t, text.ID, sel.ID)
}

func TestNormalizeOptions(t *testing.T) {
	sel := NewField(FieldTypeSelect)
	sel.Options = []string{}
	sel.Normalize()
	assert.Equal(t, []string{"Option 1"}, sel.Options)

	// a populated list is left alone
	radio := NewField(FieldTypeRadio)
	radio.Options = []string{"Yes", "No"}
	radio.Normalize()
	assert.Equal(t, []string{"Yes", "No"}, radio.Options)

	// non-choice types are never touched
	text := NewField(FieldTypeText)
	text.Options = []string{}
	text.Normalize()
	assert.Empty(t, text.Options)
}

func TestHasSelfParent(t *testing.T) {
	f := NewField(FieldTypeText)
	assert.False(t, f.HasSelfParent())
	f.Parents = []string{"other", f.ID}
	assert.True(t, f.HasSelfParent())
}

func TestCloneFieldsIsDeep(t *testing.T) {
	orig := []Field{NewField(FieldTypeSelect)}
	orig[0].DefaultValue = []any{"a"}

	cloned, err := CloneFields(orig)
	require.NoError(t, err)
	require.Len(t, cloned, 1)

	cloned[0].Options[0] = "mutated"
	assert.Equal(t, "Option 1", orig[0].Options[0])

	arr, ok := cloned[0].DefaultValue.([]any)
	require.True(t, ok)
	arr[0] = "mutated"
	assert.Equal(t, "a", orig[0].DefaultValue.([]any)[0])
}

func TestCloneFieldsNil(t *testing.T) {
	cloned, err := CloneFields(nil)
	require.NoError(t, err)
	assert.NotNil(t, cloned)
	assert.Empty(t, cloned)
}

func TestIsValidFieldType(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeText, FieldTypeNumber, FieldTypeTextarea, FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate} {
		assert.True(t, IsValidFieldType(ft), string(ft))
	}
	assert.False(t, IsValidFieldType("slider"))
	assert.False(t, IsValidFieldType(""))
}
