package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func TestForm_Validate(t *testing.T) {
	fields := append(amenityFields(),
		types.FieldConfig{Key: "opens", Label: "Opens", Kind: types.FieldDate},
		types.FieldConfig{Key: "code", Kind: types.FieldText, Validate: func(v any) string {
			if s, _ := v.(string); len(s) != 3 {
				return "code must be 3 characters"
			}
			return ""
		}},
	)

	tests := []struct {
		name   string
		values types.Values
		want   map[string]string
	}{
		{
			name:   "valid",
			values: types.Values{"name": "Pool", "category": "spa", "capacity": "12", "opens": "2026-05-01", "code": "POO"},
			want:   map[string]string{},
		},
		{
			name:   "required blank",
			values: types.Values{"name": "   "},
			want:   map[string]string{"name": "Name is required"},
		},
		{
			name:   "bad number",
			values: types.Values{"name": "Pool", "capacity": "lots"},
			want:   map[string]string{"capacity": "Capacity must be a number"},
		},
		{
			name:   "unknown option",
			values: types.Values{"name": "Pool", "category": "casino"},
			want:   map[string]string{"category": "Category has an unknown option"},
		},
		{
			name:   "bad date",
			values: types.Values{"name": "Pool", "opens": "01/05/2026"},
			want:   map[string]string{"opens": "Opens must be a date (YYYY-MM-DD)"},
		},
		{
			name:   "custom validator",
			values: types.Values{"name": "Pool", "code": "TOOLONG"},
			want:   map[string]string{"code": "code must be 3 characters"},
		},
		{
			name:   "custom validator skips blank values",
			values: types.Values{"name": "Pool", "code": ""},
			want:   map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm(fields)
			f.Open(tt.values)
			assert.Equal(t, tt.want, f.Validate())
			assert.Equal(t, tt.want, f.State().Errors)
		})
	}
}

func TestForm_UpdateFieldClearsItsError(t *testing.T) {
	f := NewForm(amenityFields())
	f.Open(types.Values{"name": "", "capacity": "x"})
	require.Len(t, f.Validate(), 2)

	require.NoError(t, f.UpdateField("name", "Pool"))
	errs := f.State().Errors
	assert.NotContains(t, errs, "name")
	assert.Contains(t, errs, "capacity")

	assert.ErrorIs(t, f.UpdateField("colour", "red"), types.ErrUnknownField)
}

func TestForm_SetFormDataAndReset(t *testing.T) {
	f := NewForm(amenityFields())
	f.Open(types.Values{"name": "Pool"})
	f.Validate()

	require.NoError(t, f.SetFormData(types.Values{"name": "Gym", "capacity": 5}))
	assert.Equal(t, types.Values{"name": "Gym", "capacity": 5}, f.Values())
	assert.Empty(t, f.State().Errors)

	err := f.SetFormData(types.Values{"name": "Spa", "colour": "red"})
	assert.ErrorIs(t, err, types.ErrUnknownField)
	assert.Equal(t, "Gym", f.Values()["name"], "rejected data changes nothing")

	f.Reset()
	assert.Equal(t, types.Values{"name": "Pool"}, f.Values())
}

func TestForm_StateIsACopy(t *testing.T) {
	f := NewForm(amenityFields())
	f.Open(types.Values{"name": "Pool"})

	st := f.State()
	st.Values["name"] = "changed"
	assert.Equal(t, "Pool", f.Values()["name"])
}
