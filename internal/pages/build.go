package pages

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Build fetches the page's records from table and returns an engine wired
// to write back to it. opts are applied after the page's own settings.
func Build(ctx context.Context, p Page, table types.Table, scope types.Scope, log *slog.Logger, opts ...crud.Option) (*crud.Engine[types.Record], error) {
	if log == nil {
		log = slog.Default()
	}
	remote := &tableRemote{table: table, page: p}
	initial, err := remote.Fetch(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", p.Name, err)
	}
	base := []crud.Option{
		crud.WithLogger(log.With("page", p.Name)),
		crud.WithScope(scope),
		crud.WithSort(p.Sort),
	}
	return crud.New(Adapter(p, remote), initial, append(base, opts...)...)
}

// Adapter returns the mutation adapter of page p over remote.
func Adapter(p Page, remote crud.Remote[types.Record]) crud.Adapter[types.Record] {
	return crud.Adapter[types.Record]{
		Fields:         p.Fields,
		SearchFields:   p.SearchFields,
		FilterField:    p.FilterField,
		StatusField:    p.StatusField,
		ReadOnlyCreate: p.ReadOnlyCreate,
		Remote:         remote,
		Build: func(v types.Values) (types.Record, error) {
			return types.NewRecord("", v), nil
		},
		TransformCreate: func(scope types.Scope, draft types.Values) types.Values {
			return scope.Stamp(Coerce(p, draft))
		},
		TransformUpdate: func(_ types.Scope, id types.ID, draft types.Values) types.Values {
			return Coerce(p, draft).With(types.Values{types.DefaultIDKey: string(id)})
		},
		TransformDelete: func(scope types.Scope, id types.ID) types.Values {
			payload := types.Values{types.DefaultIDKey: string(id)}
			if p.ScopedDelete {
				payload = scope.Stamp(payload)
			}
			return payload
		},
		FormatNewEntity: func(scope types.Scope, draft types.Values) types.Values {
			now := time.Now().UTC().Format(time.RFC3339)
			out := p.Defaults.With(Coerce(p, draft))
			out["created_at"] = now
			out["updated_at"] = now
			return scope.Stamp(out)
		},
		FormatUpdatedEntity: func(_ types.Scope, draft types.Values) types.Values {
			out := Coerce(p, draft)
			out["updated_at"] = time.Now().UTC().Format(time.RFC3339)
			return out
		},
	}
}

// tableRemote is the crud.Remote of a page backed by a datastore table.
// Records are scoped to the engine's hotel when one is set.
type tableRemote struct {
	table types.Table
	page  Page
}

var _ crud.Remote[types.Record] = (*tableRemote)(nil)

func (r *tableRemote) Fetch(ctx context.Context, scope types.Scope) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter := types.Filter{}
	if scope.HotelID != "" {
		filter[types.HotelField] = scope.HotelID
	}
	rows, err := r.table.Fetch(filter)
	if err != nil {
		return nil, err
	}
	out := make([]types.Record, len(rows))
	for i, row := range rows {
		out[i] = types.NewRecord("", row)
	}
	return out, nil
}

func (r *tableRemote) Create(ctx context.Context, payload types.Values) (types.Record, error) {
	if err := ctx.Err(); err != nil {
		return types.Record{}, err
	}
	id, err := r.table.Set("", payload)
	if err != nil {
		return types.Record{}, err
	}
	return r.get(id)
}

// Update writes payload over an existing record. Unlike Table.Set it never
// creates: a record deleted meanwhile reports ErrNotFound.
func (r *tableRemote) Update(ctx context.Context, payload types.Values) (types.Record, error) {
	if err := ctx.Err(); err != nil {
		return types.Record{}, err
	}
	id, err := types.IDFrom(payload[types.DefaultIDKey])
	if err != nil {
		return types.Record{}, err
	}
	if _, err := r.table.Get(id); err != nil {
		return types.Record{}, err
	}
	if _, err := r.table.Set(id, payload); err != nil {
		return types.Record{}, err
	}
	return r.get(id)
}

// Delete removes the record named by payload. For scoped pages the record
// must belong to the payload's hotel; otherwise it is reported not found.
func (r *tableRemote) Delete(ctx context.Context, payload types.Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := types.IDFrom(payload[types.DefaultIDKey])
	if err != nil {
		return err
	}
	if hotel, ok := payload[types.HotelField]; ok && r.page.ScopedDelete {
		cur, err := r.table.Get(id)
		if err != nil {
			return err
		}
		if fmt.Sprint(cur[types.HotelField]) != fmt.Sprint(hotel) {
			return fmt.Errorf("%s %s in hotel %v: %w", r.page.Name, id, hotel, types.ErrNotFound)
		}
	}
	return r.table.Delete(id)
}

func (r *tableRemote) get(id types.ID) (types.Record, error) {
	v, err := r.table.Get(id)
	if err != nil {
		return types.Record{}, err
	}
	return types.NewRecord("", v), nil
}
