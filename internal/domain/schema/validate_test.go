package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestValidateRequired(t *testing.T) {
	f := Field{ID: "name", Type: FieldTypeText, Required: true}

	assert.Equal(t, "Required", ValidateValue(f, ""))
	assert.Equal(t, "Required", ValidateValue(f, nil))
	assert.Equal(t, "", ValidateValue(f, "x"))

	boxes := Field{ID: "tags", Type: FieldTypeCheckbox, Required: true}
	assert.Equal(t, "Required", ValidateValue(boxes, []any{}))
	assert.Equal(t, "", ValidateValue(boxes, []any{"a"}))
}

func TestValidateLengths(t *testing.T) {
	f := Field{
		ID:         "bio",
		Type:       FieldTypeTextarea,
		Validation: ValidationRules{MinLength: intPtr(3), MaxLength: intPtr(5)},
	}
	assert.Equal(t, "Min length 3", ValidateValue(f, "ab"))
	assert.Equal(t, "", ValidateValue(f, "abcd"))
	assert.Equal(t, "Max length 5", ValidateValue(f, "abcdef"))

	// zero-valued bounds behave as absent
	zero := Field{ID: "z", Type: FieldTypeText, Validation: ValidationRules{MinLength: intPtr(0)}}
	assert.Equal(t, "", ValidateValue(zero, ""))

	// non-string values skip the length rules entirely
	num := Field{ID: "n", Type: FieldTypeNumber, Validation: ValidationRules{MinLength: intPtr(3)}}
	assert.Equal(t, "", ValidateValue(num, float64(1)))
}

func TestValidateEmail(t *testing.T) {
	f := Field{ID: "mail", Type: FieldTypeText, Validation: ValidationRules{Email: true}}
	assert.Equal(t, "", ValidateValue(f, "a@b.co"))
	assert.Equal(t, "Invalid email", ValidateValue(f, "not-an-email"))
	assert.Equal(t, "Invalid email", ValidateValue(f, "a b@c.d"))
	// required is off, but the email rule still fires on the empty string
	assert.Equal(t, "Invalid email", ValidateValue(f, ""))
}

func TestValidatePasswordRule(t *testing.T) {
	f := Field{ID: "pw", Type: FieldTypeText, Validation: ValidationRules{PasswordRule: true}}
	assert.Equal(t, "", ValidateValue(f, "abcdefg1"))
	assert.Equal(t, "Password must be ≥8 chars and include a number", ValidateValue(f, "short1"))
	assert.Equal(t, "Password must be ≥8 chars and include a number", ValidateValue(f, "nodigitshere"))
}

func TestValidateLaterRuleOverwrites(t *testing.T) {
	// both minLength and the password rule fail: the password message,
	// checked last, is the one reported
	f := Field{
		ID:         "pw",
		Type:       FieldTypeText,
		Validation: ValidationRules{MinLength: intPtr(10), PasswordRule: true},
	}
	assert.Equal(t, "Password must be ≥8 chars and include a number", ValidateValue(f, "abc"))

	// required wins outright and short-circuits the rest
	f.Required = true
	assert.Equal(t, "Required", ValidateValue(f, ""))
}

func TestValidateAll(t *testing.T) {
	fields := []Field{
		{ID: "name", Type: FieldTypeText, Required: true},
		{ID: "mail", Type: FieldTypeText, Validation: ValidationRules{Email: true}},
	}
	errs := ValidateAll(fields, map[string]any{"name": "", "mail": "a@b.co"})
	assert.Equal(t, map[string]string{"name": "Required"}, errs)
}

func TestInitialValues(t *testing.T) {
	name := NewField(FieldTypeText)
	boxes := NewField(FieldTypeCheckbox)
	boxes.DefaultValue = nil
	date := NewField(FieldTypeDate)
	date.DefaultValue = "2024-01-01"

	values := InitialValues([]Field{name, boxes, date})
	assert.Equal(t, "", values[name.ID])
	assert.Equal(t, []any{}, values[boxes.ID])
	assert.Equal(t, "2024-01-01", values[date.ID])
}
