package crud

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

var errBoom = errors.New("boom")

// fakeRemote records every call. When gate is set, mutating calls announce
// themselves on started and wait for gate before answering.
type fakeRemote struct {
	mu      sync.Mutex
	data    []types.Record
	creates []types.Values
	updates []types.Values
	deletes []types.Values
	fetches int
	err     error

	gate    chan struct{}
	started chan struct{}
}

func (r *fakeRemote) wait(ctx context.Context) error {
	if r.gate == nil {
		return nil
	}
	r.started <- struct{}{}
	select {
	case <-r.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *fakeRemote) Fetch(_ context.Context, _ types.Scope) ([]types.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.err != nil {
		return nil, r.err
	}
	return append([]types.Record(nil), r.data...), nil
}

func (r *fakeRemote) Create(ctx context.Context, payload types.Values) (types.Record, error) {
	if err := r.wait(ctx); err != nil {
		return types.Record{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates = append(r.creates, payload)
	if r.err != nil {
		return types.Record{}, r.err
	}
	return types.NewRecord("", payload), nil
}

func (r *fakeRemote) Update(ctx context.Context, payload types.Values) (types.Record, error) {
	if err := r.wait(ctx); err != nil {
		return types.Record{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, payload)
	if r.err != nil {
		return types.Record{}, r.err
	}
	return types.NewRecord("", payload), nil
}

func (r *fakeRemote) Delete(ctx context.Context, payload types.Values) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, payload)
	return r.err
}

func (r *fakeRemote) calls() (creates, updates, deletes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.creates), len(r.updates), len(r.deletes)
}

func gatedRemote() *fakeRemote {
	return &fakeRemote{gate: make(chan struct{}), started: make(chan struct{}, 4)}
}

func amenityFields() []types.FieldConfig {
	return []types.FieldConfig{
		{Key: "name", Label: "Name", Kind: types.FieldText, Required: true},
		{Key: "category", Label: "Category", Kind: types.FieldSelect, Options: []types.Option{
			{Value: "spa", Label: "Spa"},
			{Value: "fitness", Label: "Fitness"},
		}},
		{Key: "capacity", Label: "Capacity", Kind: types.FieldNumber},
		{Key: "is_active", Label: "Active", Kind: types.FieldBoolean},
	}
}

func amenityAdapter(remote Remote[types.Record]) Adapter[types.Record] {
	return Adapter[types.Record]{
		Fields:       amenityFields(),
		SearchFields: []string{"name", "category"},
		FilterField:  "category",
		Remote:       remote,
		Build: func(v types.Values) (types.Record, error) {
			return types.NewRecord("", v), nil
		},
	}
}

func rec(v types.Values) types.Record { return types.NewRecord("", v) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAmenityEngine(t *testing.T, remote Remote[types.Record], initial []types.Record, opts ...Option) *Engine[types.Record] {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := New(amenityAdapter(remote), initial, opts...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func pool() types.Record {
	return rec(types.Values{"id": 1, "name": "Pool", "category": "spa", "is_active": true})
}

func ids(rs []types.Record) []types.ID {
	out := make([]types.ID, len(rs))
	for i, r := range rs {
		out[i] = r.EntityID()
	}
	return out
}
