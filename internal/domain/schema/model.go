package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
)

var fieldTypes = map[FieldType]bool{
	FieldTypeText:     true,
	FieldTypeNumber:   true,
	FieldTypeTextarea: true,
	FieldTypeSelect:   true,
	FieldTypeRadio:    true,
	FieldTypeCheckbox: true,
	FieldTypeDate:     true,
}

// IsValidFieldType reports whether t is one of the seven supported types.
func IsValidFieldType(t FieldType) bool {
	return fieldTypes[t]
}

// ValidationRules holds the optional per-field constraints. A nil or
// zero-valued MinLength/MaxLength means the rule is absent.
type ValidationRules struct {
	MinLength    *int `json:"minLength,omitempty"`
	MaxLength    *int `json:"maxLength,omitempty"`
	Email        bool `json:"email,omitempty"`
	PasswordRule bool `json:"passwordRule,omitempty"`
}

// Field is a single form control definition. ID is generated at creation
// time and never changes afterward.
type Field struct {
	ID           string          `json:"id"`
	Type         FieldType       `json:"type"`
	Label        string          `json:"label"`
	Required     bool            `json:"required"`
	DefaultValue any             `json:"defaultValue,omitempty"`
	Options      []string        `json:"options,omitempty"`
	Validation   ValidationRules `json:"validation"`
	Derived      bool            `json:"derived,omitempty"`
	Parents      []string        `json:"parents,omitempty"`
	Formula      string          `json:"formula,omitempty"`
}

// NewField creates a field of the given type with the builder's defaults.
func NewField(t FieldType) Field {
	f := Field{
		ID:           uuid.New().String(),
		Type:         t,
		Label:        fmt.Sprintf("%s label", t),
		Required:     false,
		DefaultValue: "",
		Parents:      []string{},
		Formula:      "",
	}
	if t == FieldTypeSelect || t == FieldTypeRadio {
		f.Options = []string{"Option 1", "Option 2"}
	}
	return f
}

// Normalize applies the save-time fixups the field editor performs: a
// select or radio field whose option list was emptied gets a single
// placeholder option back.
func (f *Field) Normalize() {
	if (f.Type == FieldTypeSelect || f.Type == FieldTypeRadio) && f.Options != nil && len(f.Options) == 0 {
		f.Options = []string{"Option 1"}
	}
}

// HasSelfParent reports whether the field lists its own id as a parent.
func (f *Field) HasSelfParent() bool {
	for _, p := range f.Parents {
		if p == f.ID {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy of the field.
func (f Field) Clone() Field {
	out, err := CloneFields([]Field{f})
	if err != nil || len(out) != 1 {
		return f
	}
	return out[0]
}

// FormSchema is the ordered field sequence being edited, plus identity.
// CreatedAt is epoch milliseconds.
type FormSchema struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CreatedAt int64   `json:"createdAt"`
	Fields    []Field `json:"fields"`
}

// NewFormSchema returns a fresh empty draft schema.
func NewFormSchema() FormSchema {
	return FormSchema{
		ID:        uuid.New().String(),
		Name:      "Untitled",
		CreatedAt: time.Now().UnixMilli(),
		Fields:    []Field{},
	}
}

// PersistedForm is a saved snapshot of a form schema. It is an independent
// copy, never aliased to a live draft.
type PersistedForm struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CreatedAt int64   `json:"createdAt"`
	Fields    []Field `json:"fields"`
}

// CloneFields deep-copies a field list through a JSON round-trip, so that
// nested option slices and defaultValue arrays are never shared.
func CloneFields(fields []Field) ([]Field, error) {
	if fields == nil {
		return []Field{}, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	out := make([]Field, 0, len(fields))
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
