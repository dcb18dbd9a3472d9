package schema

import (
	"fmt"
	"regexp"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe = regexp.MustCompile(`\d`)
)

// ValidateValue checks a single field's current value against the field's
// rules and returns the error message to show, or "" when the value passes.
// Rules run in a fixed order: required short-circuits, and every later rule
// that fires overwrites the message of the one before it. The length, email
// and password rules only apply to string values.
func ValidateValue(f Field, v any) string {
	if f.Required && isEmptyValue(v) {
		return "Required"
	}

	msg := ""
	s, isString := v.(string)
	if f.Validation.MinLength != nil && *f.Validation.MinLength != 0 && isString {
		if len(s) < *f.Validation.MinLength {
			msg = fmt.Sprintf("Min length %d", *f.Validation.MinLength)
		}
	}
	if f.Validation.MaxLength != nil && *f.Validation.MaxLength != 0 && isString {
		if len(s) > *f.Validation.MaxLength {
			msg = fmt.Sprintf("Max length %d", *f.Validation.MaxLength)
		}
	}
	if f.Validation.Email && isString {
		if !emailRe.MatchString(s) {
			msg = "Invalid email"
		}
	}
	if f.Validation.PasswordRule && isString {
		if len(s) < 8 || !digitRe.MatchString(s) {
			msg = "Password must be ≥8 chars and include a number"
		}
	}
	return msg
}

// ValidateAll returns one message per failing field, keyed by field id.
func ValidateAll(fields []Field, values map[string]any) map[string]string {
	errs := map[string]string{}
	for _, f := range fields {
		if msg := ValidateValue(f, values[f.ID]); msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// InitialValues seeds a preview value map from field defaults: checkbox
// fields with no default start as an empty selection, everything else as
// the empty string.
func InitialValues(fields []Field) map[string]any {
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		switch {
		case f.DefaultValue != nil:
			values[f.ID] = f.DefaultValue
		case f.Type == FieldTypeCheckbox:
			values[f.ID] = []any{}
		default:
			values[f.ID] = ""
		}
	}
	return values
}
