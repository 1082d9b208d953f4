package form

import "fmt"

// FieldValidation holds validation rules for a text field.
type FieldValidation struct {
	Required  bool
	MaxLength int
	// Check, when set, runs on non-empty values and returns an error
	// message or "".
	Check func(string) string
}

// ValidateText checks a text value against the validation rules.
func (v FieldValidation) ValidateText(value string) string {
	if v.Required && value == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	if v.MaxLength > 0 && len(value) > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}
	if v.Check != nil {
		return v.Check(value)
	}
	return ""
}
