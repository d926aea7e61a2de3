package crud

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// DefaultStatusField is the boolean field HandleStatusToggle flips when the
// adapter does not name one.
const DefaultStatusField = "is_active"

// Payload transforms turn a draft into the remote operation's input.
type (
	CreateTransform func(scope types.Scope, draft types.Values) types.Values
	UpdateTransform func(scope types.Scope, id types.ID, draft types.Values) types.Values
	DeleteTransform func(scope types.Scope, id types.ID) types.Values
	// Formatter returns fields layered over a draft before the optimistic
	// insert or merge (timestamps, default status).
	Formatter func(scope types.Scope, draft types.Values) types.Values
)

// Adapter is the per-page configuration of an engine: what the form edits,
// what search looks at, how drafts become payloads, and where they go.
type Adapter[E types.Entity[E]] struct {
	Fields       []types.FieldConfig
	SearchFields []string
	// FilterField is matched by the filter value. Default DefaultFilterField.
	FilterField string
	// StatusField is flipped by HandleStatusToggle. Default DefaultStatusField.
	StatusField string
	// IDKey is the identity field of drafts and payloads. Default "id".
	IDKey string
	// ReadOnlyCreate pages (orders, requests raised by guests) never insert
	// optimistically; new rows appear only after a refetch.
	ReadOnlyCreate bool

	Remote Remote[E]
	// Build turns draft values into an entity. Required.
	Build func(values types.Values) (E, error)
	// NewID supplies a provisional identity for drafts without one.
	// Default: UUID v7.
	NewID func() types.ID

	TransformCreate     CreateTransform
	TransformUpdate     UpdateTransform
	TransformDelete     DeleteTransform
	FormatNewEntity     Formatter
	FormatUpdatedEntity Formatter
}

// withDefaults fills optional members and checks the required ones.
func (a Adapter[E]) withDefaults() (Adapter[E], error) {
	if a.Remote == nil {
		return a, fmt.Errorf("%w: remote is required", types.ErrInvalidAdapter)
	}
	if a.Build == nil {
		return a, fmt.Errorf("%w: build function is required", types.ErrInvalidAdapter)
	}
	if err := types.CheckFields(a.Fields, nil); err != nil {
		return a, err
	}
	if a.IDKey == "" {
		a.IDKey = types.DefaultIDKey
	}
	if a.FilterField == "" {
		a.FilterField = DefaultFilterField
	}
	if a.StatusField == "" {
		a.StatusField = DefaultStatusField
	}
	if a.NewID == nil {
		a.NewID = newUUIDv7
	}
	idKey := a.IDKey
	if a.TransformCreate == nil {
		a.TransformCreate = func(_ types.Scope, draft types.Values) types.Values {
			return draft.Clone()
		}
	}
	if a.TransformUpdate == nil {
		a.TransformUpdate = func(_ types.Scope, id types.ID, draft types.Values) types.Values {
			return draft.With(types.Values{idKey: string(id)})
		}
	}
	if a.TransformDelete == nil {
		a.TransformDelete = func(_ types.Scope, id types.ID) types.Values {
			return types.Values{idKey: string(id)}
		}
	}
	return a, nil
}

// format applies f when set.
func format(f Formatter, scope types.Scope, draft types.Values) types.Values {
	if f == nil {
		return draft.Clone()
	}
	return draft.With(f(scope, draft))
}

func newUUIDv7() types.ID {
	id, err := uuid.NewV7()
	if err != nil {
		return types.ID(uuid.New().String())
	}
	return types.ID(id.String())
}
