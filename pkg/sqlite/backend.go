// Package sqlite exposes the SQLite datastore to programs outside this
// module while the implementation stays internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/frontdesk/internal/sqlite"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// NewBackend creates a detached SQLite datastore logging to log, or to
// slog.Default() when log is nil.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/frontdesk",
//	})
//	defer store.Detach()
func NewBackend(log *slog.Logger) types.Datastore {
	return sqlite.NewBackend(sqlite.WithLogger(log))
}
