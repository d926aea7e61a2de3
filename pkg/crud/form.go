package crud

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// FormState is the draft exposed to a page.
type FormState struct {
	Values       types.Values
	Errors       map[string]string
	IsSubmitting bool
}

// Form owns the mutable draft of the create and edit modals. The draft is
// independent of the store until a submit commits it.
type Form struct {
	fields     []types.FieldConfig
	byKey      map[string]types.FieldConfig
	values     types.Values
	initial    types.Values
	errors     map[string]string
	submitting bool
}

// NewForm returns a form over the given field configuration.
func NewForm(fields []types.FieldConfig) *Form {
	byKey := make(map[string]types.FieldConfig, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}
	return &Form{
		fields: fields,
		byKey:  byKey,
		values: types.Values{},
		errors: map[string]string{},
	}
}

// Fields returns the field configuration.
func (f *Form) Fields() []types.FieldConfig { return f.fields }

// Defaults returns the values a create draft starts with.
func (f *Form) Defaults() types.Values {
	out := make(types.Values, len(f.fields))
	for _, fc := range f.fields {
		out[fc.Key] = fc.DefaultValue()
	}
	return out
}

// Project returns the configured fields that e carries. Fields e lacks are
// left out, so submitting an unchanged edit draft merges nothing new.
func (f *Form) Project(e interface{ Field(string) (any, bool) }) types.Values {
	out := make(types.Values, len(f.fields))
	for _, fc := range f.fields {
		if v, ok := e.Field(fc.Key); ok {
			out[fc.Key] = v
		}
	}
	return out
}

// Open starts a fresh draft with the given values.
func (f *Form) Open(values types.Values) {
	f.values = values.Clone()
	f.initial = values.Clone()
	f.errors = map[string]string{}
	f.submitting = false
}

// Discard drops the draft.
func (f *Form) Discard() { f.Open(nil) }

// State returns a copy of the draft.
func (f *Form) State() FormState {
	return FormState{
		Values:       f.values.Clone(),
		Errors:       maps.Clone(f.errors),
		IsSubmitting: f.submitting,
	}
}

// Values returns a copy of the draft values.
func (f *Form) Values() types.Values { return f.values.Clone() }

// UpdateField sets one draft value and clears its error. Returns
// ErrUnknownField for keys outside the field configuration.
func (f *Form) UpdateField(key string, value any) error {
	if _, ok := f.byKey[key]; !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownField, key)
	}
	f.values[key] = value
	delete(f.errors, key)
	return nil
}

// SetFormData replaces the draft values and clears all errors. Unknown keys
// are rejected before anything changes.
func (f *Form) SetFormData(values types.Values) error {
	for k := range values {
		if _, ok := f.byKey[k]; !ok {
			return fmt.Errorf("%w: %q", types.ErrUnknownField, k)
		}
	}
	f.values = values.Clone()
	f.errors = map[string]string{}
	return nil
}

// Reset restores the values the draft was opened with.
func (f *Form) Reset() {
	f.values = f.initial.Clone()
	f.errors = map[string]string{}
}

// Validate checks every field, records the errors on the draft and returns
// them. An empty map means the draft may be submitted.
func (f *Form) Validate() map[string]string {
	errs := map[string]string{}
	for _, fc := range f.fields {
		if msg := validateField(fc, f.values[fc.Key]); msg != "" {
			errs[fc.Key] = msg
		}
	}
	f.errors = errs
	return maps.Clone(errs)
}

// IsSubmitting reports whether a submit is in flight.
func (f *Form) IsSubmitting() bool { return f.submitting }

func (f *Form) setSubmitting(v bool) { f.submitting = v }

// validateField applies the required check, the kind check and then the
// custom validator. Custom validators only see non-blank values.
func validateField(fc types.FieldConfig, v any) string {
	label := fc.DisplayLabel()
	if isBlank(v) {
		if fc.Required {
			return label + " is required"
		}
		return ""
	}
	switch fc.Kind {
	case types.FieldNumber:
		if _, ok := asNumber(v); !ok {
			return label + " must be a number"
		}
	case types.FieldDate:
		if s, ok := v.(string); ok {
			if _, err := time.Parse(types.DateLayout, s); err != nil {
				return label + " must be a date (YYYY-MM-DD)"
			}
		}
	case types.FieldSelect:
		if !fc.HasOption(fmt.Sprint(v)) {
			return label + " has an unknown option"
		}
	case types.FieldBoolean:
		if _, ok := v.(bool); !ok {
			return label + " must be true or false"
		}
	}
	if fc.Validate != nil {
		return fc.Validate(v)
	}
	return ""
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	}
	return false
}

func asNumber(v any) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}
