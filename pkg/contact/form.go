package contact

import (
	"fmt"
	"strings"
)

// Field names one of the three form inputs.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// ParseField maps an HTML input name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(name))); f {
	case FieldName, FieldEmail, FieldMessage:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Form holds the text typed into the contact form.
// Values are freeform and never validated by this package.
type Form struct {
	Name    string
	Email   string
	Message string
}

// Value returns the current value of a field.
func (f Form) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}

// With returns a copy of the form with one field replaced.
func (f Form) With(field Field, value string) Form {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// Missing returns the fields that are empty. Whitespace counts as a value,
// as it does for a browser's required attribute.
// The calling surface uses it to enforce the "all fields required" rule.
func (f Form) Missing() []Field {
	var missing []Field
	for _, field := range Fields {
		if f.Value(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool {
	return f == Form{}
}
