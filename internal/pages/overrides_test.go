package pages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

const sampleOverrides = `
pages:
  amenities:
    title: Guest facilities
    search_fields: [name, category, opening_hours]
    fields:
      - key: capacity
        required: true
        validate: value >= 1 && value <= 500
        message: Capacity must be between 1 and 500
      - key: is_featured
        label: Featured
        kind: boolean
  tasks:
    filter_field: priority
`

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), OverridesFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverrides(t *testing.T) {
	o, err := LoadOverrides(writeOverrides(t, sampleOverrides))
	require.NoError(t, err)
	require.Contains(t, o.Pages, "amenities")
	am := o.Pages["amenities"]
	assert.Equal(t, "Guest facilities", am.Title)
	require.Len(t, am.Fields, 2)
	require.NotNil(t, am.Fields[0].Required)
	assert.True(t, *am.Fields[0].Required)
	assert.Equal(t, "priority", o.Pages["tasks"].FilterField)
}

func TestLoadOverrides_MissingFileIsEmpty(t *testing.T) {
	o, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, o.Pages)
}

func TestLoadOverrides_EmptyFile(t *testing.T) {
	o, err := LoadOverrides(writeOverrides(t, ""))
	require.NoError(t, err)
	assert.Empty(t, o.Pages)
}

func TestLoadOverrides_UnknownKeyRejected(t *testing.T) {
	_, err := LoadOverrides(writeOverrides(t, "pages:\n  amenities:\n    titel: typo\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	o, err := LoadOverrides(writeOverrides(t, sampleOverrides))
	require.NoError(t, err)

	base := Builtin()
	r, err := base.Apply(o)
	require.NoError(t, err)

	am, err := r.Get(types.TableAmenities)
	require.NoError(t, err)
	assert.Equal(t, "Guest facilities", am.Title)
	assert.Equal(t, []string{"name", "category", "opening_hours"}, am.SearchFields)

	capacity, ok := am.Field("capacity")
	require.True(t, ok)
	assert.True(t, capacity.Required)
	assert.Equal(t, "Capacity", capacity.Label, "unset attributes are kept")
	require.NotNil(t, capacity.Validate)
	assert.Equal(t, "Capacity must be between 1 and 500", capacity.Validate(float64(900)))
	assert.Empty(t, capacity.Validate(float64(40)))

	featured, ok := am.Field("is_featured")
	require.True(t, ok, "new field appended")
	assert.Equal(t, types.FieldBoolean, featured.Kind)

	tasks, err := r.Get(types.TableTasks)
	require.NoError(t, err)
	assert.Equal(t, "priority", tasks.FilterField)

	orig, err := base.Get(types.TableAmenities)
	require.NoError(t, err)
	assert.Equal(t, "Amenities", orig.Title, "base registry untouched")
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "unknown page",
			yaml:    "pages:\n  minibar:\n    title: Minibar\n",
			wantErr: types.ErrUnknownPage,
		},
		{
			name:    "bad rule",
			yaml:    "pages:\n  amenities:\n    fields:\n      - key: capacity\n        validate: \"value >>\"\n",
			wantErr: types.ErrInvalidRule,
		},
		{
			name:    "field not a column",
			yaml:    "pages:\n  amenities:\n    fields:\n      - key: colour\n",
			wantErr: types.ErrInvalidFieldConfig,
		},
		{
			name:    "select without options",
			yaml:    "pages:\n  tasks:\n    fields:\n      - key: room_number\n        kind: select\n",
			wantErr: types.ErrInvalidFieldConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := LoadOverrides(writeOverrides(t, tt.yaml))
			require.NoError(t, err)
			_, err = Builtin().Apply(o)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
