package crud

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// ViewMode selects how a page renders its rows.
type ViewMode string

// View modes.
const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// ParseViewMode validates a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewList, ViewGrid:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidViewMode, s)
}

// DefaultFilterField is the field the filter value is matched against when
// the adapter does not name one.
const DefaultFilterField = "status"

// SortBy orders a projection by one field. The zero value keeps store order.
type SortBy struct {
	Field string
	Desc  bool
}

// SearchParams is the input of Search besides the entities themselves.
type SearchParams struct {
	// Term is matched case-insensitively as a substring of any Fields value.
	Term string
	// Fields lists the keys eligible for substring search.
	Fields []string
	// FilterValue, when non-empty, must equal the FilterField value.
	FilterValue string
	FilterField string
	Sort        SortBy
}

// Search returns the entities matching both the search term and the filter
// value, in their original relative order unless p.Sort names a field. The
// input slice is not modified.
func Search[E types.Entity[E]](entities []E, p SearchParams) []E {
	term := strings.ToLower(strings.TrimSpace(p.Term))
	filterField := p.FilterField
	if filterField == "" {
		filterField = DefaultFilterField
	}

	out := make([]E, 0, len(entities))
	for _, e := range entities {
		if term != "" && !matchesTerm(e, term, p.Fields) {
			continue
		}
		if p.FilterValue != "" && !matchesFilter(e, filterField, p.FilterValue) {
			continue
		}
		out = append(out, e)
	}

	if p.Sort.Field != "" {
		slices.SortStableFunc(out, func(a, b E) int {
			av, _ := a.Field(p.Sort.Field)
			bv, _ := b.Field(p.Sort.Field)
			c := compareValues(av, bv)
			if p.Sort.Desc {
				return -c
			}
			return c
		})
	}
	return out
}

func matchesTerm[E types.Entity[E]](e E, term string, fields []string) bool {
	for _, key := range fields {
		v, ok := e.Field(key)
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), term) {
			return true
		}
	}
	return false
}

func matchesFilter[E types.Entity[E]](e E, field, want string) bool {
	v, ok := e.Field(field)
	if !ok || v == nil {
		return false
	}
	return fmt.Sprint(v) == want
}

// compareValues orders nil first, then numbers numerically, times
// chronologically, booleans false before true, and everything else by its
// string form.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
