package pages

import (
	"context"

	"github.com/mesh-intelligence/frontdesk/internal/sqlite"
	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// ChangeSource publishes backend writes per table.
type ChangeSource interface {
	Subscribe(table string) (<-chan sqlite.ChangeEvent, func())
}

// Watch refetches engine after every change to table until ctx is done or
// the source closes the subscription. Bursts of changes that arrive while a
// refetch runs collapse into one more refetch.
func Watch(ctx context.Context, src ChangeSource, table string, engine *crud.Engine[types.Record]) error {
	events, cancel := src.Subscribe(table)
	defer cancel()

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		for range events {
			select {
			case signals <- struct{}{}:
			default:
			}
		}
	}()
	return engine.RefetchOn(ctx, signals)
}
