// Package pages defines the console pages: which table each one edits, its
// form fields, what search and filter look at, and how drafts become
// backend writes. Build wires a page to a crud engine over a backend table.
package pages

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Page is the static definition of one console page.
type Page struct {
	// Name is the page and table name.
	Name  string
	Title string
	// Columns lists every field records of this page carry. Form fields,
	// search fields, the filter field and toggles must be columns.
	Columns      []string
	Fields       []types.FieldConfig
	SearchFields []string
	FilterField  string
	StatusField  string
	// Toggles are the boolean columns that can be flipped outside a modal.
	Toggles []string
	// ReadOnlyCreate pages get new rows from guests; a create from the
	// console is sent but not shown until the next refetch.
	ReadOnlyCreate bool
	// ScopedDelete adds the hotel id to delete payloads.
	ScopedDelete bool
	// Defaults are layered over new drafts before they reach the store.
	Defaults types.Values
	Sort     crud.SortBy
}

// columnSet returns Columns plus the identity and scope fields.
func (p Page) columnSet() map[string]bool {
	set := make(map[string]bool, len(p.Columns)+2)
	for _, c := range p.Columns {
		set[c] = true
	}
	set[types.DefaultIDKey] = true
	set[types.HotelField] = true
	return set
}

// Check validates the page definition.
func (p Page) Check() error {
	if p.Name == "" {
		return fmt.Errorf("%w: page without name", types.ErrInvalidFieldConfig)
	}
	cols := p.columnSet()
	if err := types.CheckFields(p.Fields, cols); err != nil {
		return fmt.Errorf("page %s: %w", p.Name, err)
	}
	named := slices.Concat(p.SearchFields, p.Toggles)
	if p.FilterField != "" {
		named = append(named, p.FilterField)
	}
	if p.StatusField != "" {
		named = append(named, p.StatusField)
	}
	for _, key := range named {
		if !cols[key] {
			return fmt.Errorf("page %s: %w: %q is not a column", p.Name, types.ErrInvalidFieldConfig, key)
		}
	}
	return nil
}

// Field returns the form field with the given key.
func (p Page) Field(key string) (types.FieldConfig, bool) {
	i := slices.IndexFunc(p.Fields, func(f types.FieldConfig) bool { return f.Key == key })
	if i < 0 {
		return types.FieldConfig{}, false
	}
	return p.Fields[i], true
}

// CanToggle reports whether field may be flipped outside a modal.
func (p Page) CanToggle(field string) bool {
	return (p.StatusField != "" && field == p.StatusField) || slices.Contains(p.Toggles, field)
}

// clone copies the slices and maps a caller could mutate.
func (p Page) clone() Page {
	p.Columns = slices.Clone(p.Columns)
	p.Fields = slices.Clone(p.Fields)
	p.SearchFields = slices.Clone(p.SearchFields)
	p.Toggles = slices.Clone(p.Toggles)
	p.Defaults = p.Defaults.Clone()
	return p
}

// Registry holds the known pages in display order.
type Registry struct {
	order []string
	pages map[string]Page
}

// NewRegistry checks and registers pages. Names must be unique.
func NewRegistry(pages ...Page) (*Registry, error) {
	r := &Registry{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if err := p.Check(); err != nil {
			return nil, err
		}
		if _, dup := r.pages[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate page %q", types.ErrInvalidFieldConfig, p.Name)
		}
		r.pages[p.Name] = p.clone()
		r.order = append(r.order, p.Name)
	}
	return r, nil
}

// Get returns the named page.
func (r *Registry) Get(name string) (Page, error) {
	p, ok := r.pages[name]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", types.ErrUnknownPage, name)
	}
	return p.clone(), nil
}

// Names returns the page names in display order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// Pages returns every page in display order.
func (r *Registry) Pages() []Page {
	out := make([]Page, len(r.order))
	for i, name := range r.order {
		out[i] = r.pages[name].clone()
	}
	return out
}
