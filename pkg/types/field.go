package types

import "fmt"

// FieldKind is the input kind of a form field.
type FieldKind string

// Field kinds understood by the form controller.
const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldSelect   FieldKind = "select"
	FieldFile     FieldKind = "file"
	FieldBoolean  FieldKind = "boolean"
)

// validFieldKinds is the set of recognized field kinds.
var validFieldKinds = map[FieldKind]bool{
	FieldText:     true,
	FieldTextarea: true,
	FieldNumber:   true,
	FieldDate:     true,
	FieldSelect:   true,
	FieldFile:     true,
	FieldBoolean:  true,
}

// DateLayout is the wire format of date fields.
const DateLayout = "2006-01-02"

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Validator checks one field value and returns an error message, or "" when
// the value is acceptable.
type Validator func(value any) string

// FieldConfig describes one form field. It carries no behavior beyond its
// default value and an optional validator.
type FieldConfig struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option
	Default  any
	Validate Validator
}

// DisplayLabel returns Label, falling back to Key.
func (f FieldConfig) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// DefaultValue returns the value a create draft starts with: the explicit
// Default when set, otherwise a kind-based zero (empty string for text-like
// kinds, false for booleans, the first option for selects, nil for numbers).
func (f FieldConfig) DefaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind {
	case FieldBoolean:
		return false
	case FieldSelect:
		if len(f.Options) > 0 {
			return f.Options[0].Value
		}
		return ""
	case FieldNumber:
		return nil
	default:
		return ""
	}
}

// HasOption reports whether value is one of the select options.
func (f FieldConfig) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Check validates the descriptor itself. supported lists the fields the
// entity type carries; a nil set skips that check.
func (f FieldConfig) Check(supported map[string]bool) error {
	if f.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidFieldConfig)
	}
	if !validFieldKinds[f.Kind] {
		return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidFieldConfig, f.Key, f.Kind)
	}
	if f.Kind == FieldSelect && len(f.Options) == 0 {
		return fmt.Errorf("%w: select field %q has no options", ErrInvalidFieldConfig, f.Key)
	}
	if supported != nil && !supported[f.Key] {
		return fmt.Errorf("%w: field %q is not supported by the entity", ErrInvalidFieldConfig, f.Key)
	}
	return nil
}

// CheckFields runs Check on every field and rejects duplicate keys.
func CheckFields(fields []FieldConfig, supported map[string]bool) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if err := f.Check(supported); err != nil {
			return err
		}
		if seen[f.Key] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidFieldConfig, f.Key)
		}
		seen[f.Key] = true
	}
	return nil
}
