package crud

import (
	"context"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Remote is the system of record behind an engine. Every call may block and
// may fail; the engine never holds its lock across one.
type Remote[E any] interface {
	// Fetch returns the full collection visible in scope.
	Fetch(ctx context.Context, scope types.Scope) ([]E, error)
	// Create stores a new entity and returns its canonical form.
	Create(ctx context.Context, payload types.Values) (E, error)
	// Update applies payload to an existing entity and returns its canonical form.
	Update(ctx context.Context, payload types.Values) (E, error)
	// Delete removes the entity named by payload.
	Delete(ctx context.Context, payload types.Values) error
}

// RemoteFuncs adapts plain functions to Remote. A nil function reports
// ErrUnsupported.
type RemoteFuncs[E any] struct {
	FetchFunc  func(ctx context.Context, scope types.Scope) ([]E, error)
	CreateFunc func(ctx context.Context, payload types.Values) (E, error)
	UpdateFunc func(ctx context.Context, payload types.Values) (E, error)
	DeleteFunc func(ctx context.Context, payload types.Values) error
}

var _ Remote[types.Record] = RemoteFuncs[types.Record]{}

func (r RemoteFuncs[E]) Fetch(ctx context.Context, scope types.Scope) ([]E, error) {
	if r.FetchFunc == nil {
		return nil, types.ErrUnsupported
	}
	return r.FetchFunc(ctx, scope)
}

func (r RemoteFuncs[E]) Create(ctx context.Context, payload types.Values) (E, error) {
	if r.CreateFunc == nil {
		var zero E
		return zero, types.ErrUnsupported
	}
	return r.CreateFunc(ctx, payload)
}

func (r RemoteFuncs[E]) Update(ctx context.Context, payload types.Values) (E, error) {
	if r.UpdateFunc == nil {
		var zero E
		return zero, types.ErrUnsupported
	}
	return r.UpdateFunc(ctx, payload)
}

func (r RemoteFuncs[E]) Delete(ctx context.Context, payload types.Values) error {
	if r.DeleteFunc == nil {
		return types.ErrUnsupported
	}
	return r.DeleteFunc(ctx, payload)
}
