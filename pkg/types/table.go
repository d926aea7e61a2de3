package types

import "errors"

// Filter selects records in Table.Fetch. Keys are field names matched for
// equality; the reserved keys "limit" and "offset" take int values.
type Filter map[string]any

// Reserved filter keys.
const (
	FilterLimit  = "limit"
	FilterOffset = "offset"
)

// Table provides uniform CRUD operations over the records of one page.
// Records travel as Values; the identity field is always DefaultIDKey.
type Table interface {
	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id ID) (Values, error)

	// Set creates or updates a record. When id is empty the record's own
	// identity field is used, and when that is empty too a new UUID v7 is
	// generated. Updating shallow-merges data into the stored record.
	// Returns the actual ID used.
	Set(id ID, data Values) (ID, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id ID) error

	// Fetch returns all records matching the filter, newest first. An empty
	// filter returns every record in the table.
	Fetch(filter Filter) ([]Values, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)
