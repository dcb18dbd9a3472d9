package schema

// CreateFieldDTO adds a new field of the given type to the draft. The id
// and the remaining attributes are seeded server-side.
type CreateFieldDTO struct {
	Type FieldType `json:"type" binding:"required"`
}

// UpdateFieldDTO carries the full replacement definition of an existing
// field. The id in the URL wins over any id in the body.
type UpdateFieldDTO struct {
	Label        string          `json:"label"`
	Required     bool            `json:"required"`
	DefaultValue any             `json:"defaultValue"`
	Options      []string        `json:"options"`
	Validation   ValidationRules `json:"validation"`
	Derived      bool            `json:"derived"`
	Parents      []string        `json:"parents"`
	Formula      string          `json:"formula"`
}

type ReorderFieldsDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type SaveFormDTO struct {
	Name string `json:"name" binding:"required"`
}

// EvaluateDTO feeds the formula evaluator directly, outside of a draft.
type EvaluateDTO struct {
	Formula string         `json:"formula"`
	Values  map[string]any `json:"values"`
}

// PreviewValuesDTO is a snapshot of the preview's current values.
type PreviewValuesDTO struct {
	Values map[string]any `json:"values"`
}
