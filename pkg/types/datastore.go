package types

import "errors"

// Datastore is the backend-agnostic system of record behind the console.
// Callers attach to a backend, access tables by name, and detach when done.
type Datastore interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a configured table.
	GetTable(name string) (Table, error)

	// Attach connects to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, table operations return ErrDetached.
	Detach() error
}

// Datastore lifecycle errors.
var (
	ErrDetached        = errors.New("datastore is detached")
	ErrAlreadyAttached = errors.New("datastore is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
