package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func TestBuiltin_CoversStandardTables(t *testing.T) {
	r := Builtin()
	assert.Equal(t, types.StandardTableNames, r.Names())

	for _, p := range r.Pages() {
		t.Run(p.Name, func(t *testing.T) {
			assert.NoError(t, p.Check())
			assert.NotEmpty(t, p.Title)
			assert.NotEmpty(t, p.Fields)
			assert.NotEmpty(t, p.SearchFields)
		})
	}
}

func TestBuiltin_PageFlags(t *testing.T) {
	r := Builtin()

	orders, err := r.Get(types.TableShopOrders)
	require.NoError(t, err)
	assert.True(t, orders.ReadOnlyCreate)

	absences, err := r.Get(types.TableAbsenceRequests)
	require.NoError(t, err)
	assert.True(t, absences.ScopedDelete)

	amenities, err := r.Get(types.TableAmenities)
	require.NoError(t, err)
	assert.True(t, amenities.CanToggle("is_active"))
	assert.True(t, amenities.CanToggle("is_featured"))
	assert.False(t, amenities.CanToggle("name"))

	tasks, err := r.Get(types.TableTasks)
	require.NoError(t, err)
	assert.False(t, tasks.CanToggle("is_active"), "pages without a status field have no status toggle")
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := Builtin().Get("minibar")
	assert.ErrorIs(t, err, types.ErrUnknownPage)
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := Builtin()
	p, err := r.Get(types.TableStaff)
	require.NoError(t, err)
	p.Fields[0].Label = "changed"

	again, err := r.Get(types.TableStaff)
	require.NoError(t, err)
	assert.Equal(t, "First name", again.Fields[0].Label)
}

func TestNewRegistry_Rejects(t *testing.T) {
	base := Page{
		Name:    "notes",
		Columns: []string{"body"},
		Fields:  []types.FieldConfig{{Key: "body", Kind: types.FieldText}},
	}

	tests := []struct {
		name  string
		pages []Page
	}{
		{"field outside columns", []Page{func() Page {
			p := base
			p.Fields = []types.FieldConfig{{Key: "colour", Kind: types.FieldText}}
			return p
		}()}},
		{"search field outside columns", []Page{func() Page {
			p := base
			p.SearchFields = []string{"title"}
			return p
		}()}},
		{"toggle outside columns", []Page{func() Page {
			p := base
			p.Toggles = []string{"is_pinned"}
			return p
		}()}},
		{"duplicate page", []Page{base, base}},
		{"no name", []Page{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.pages...)
			assert.ErrorIs(t, err, types.ErrInvalidFieldConfig)
		})
	}
}

func TestCoerce(t *testing.T) {
	p, err := Builtin().Get(types.TableAmenities)
	require.NoError(t, err)

	got := Coerce(p, types.Values{
		"name":      " Pool ",
		"capacity":  "12",
		"is_active": "false",
		"extra":     "7",
	})
	assert.Equal(t, types.Values{
		"name":      " Pool ",
		"capacity":  float64(12),
		"is_active": false,
		"extra":     "7",
	}, got)

	got = Coerce(p, types.Values{"capacity": "many", "is_active": "maybe"})
	assert.Equal(t, "many", got["capacity"], "unparseable input is left for validation")
	assert.Equal(t, "maybe", got["is_active"])

	got = Coerce(p, types.Values{"capacity": "  "})
	assert.Nil(t, got["capacity"])
}
