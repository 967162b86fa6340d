// Package forms holds the per-entity input validation. Each form parses
// the posted values, validates against the repositories, and accumulates
// field-level error messages; handlers re-render the form with those
// messages and the entered values when validation fails.
package forms

const (
	msgRequired      = "This field is required"
	msgPasswordShort = "Password must be at least 3 characters long"
	msgPasswordMatch = "Passwords do not match"

	// bcrypt operates on at most 72 bytes of input
	maxPasswordLen = 72

	minPasswordLen = 3
)

// Errors maps a field name to its messages. The empty key holds
// form-level (non-field) errors.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Any() bool { return len(e) > 0 }

// Field returns the messages for one field, nil when the field is clean.
func (e Errors) Field(field string) []string { return e[field] }
