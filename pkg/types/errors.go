package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Engine errors.
var (
	ErrValidation       = errors.New("validation failed")
	ErrRemote           = errors.New("remote operation failed")
	ErrIdentityConflict = errors.New("entity identity already present")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNoModalTarget    = errors.New("modal has no target entity")
	ErrModalMismatch    = errors.New("modal is not open for this action")
	ErrEngineClosed     = errors.New("engine is closed")
	ErrUnknownField     = errors.New("unknown form field")
	ErrInvalidPageSize  = errors.New("page size must be positive")
	ErrInvalidViewMode  = errors.New("invalid view mode")
	ErrInvalidAdapter   = errors.New("invalid mutation adapter")
	ErrUnsupported      = errors.New("operation not supported")
)

// Configuration errors.
var (
	ErrInvalidFieldConfig = errors.New("invalid field config")
	ErrInvalidRule        = errors.New("invalid validation rule")
	ErrUnknownPage        = errors.New("unknown page")
)

// Remote operation names carried by RemoteError.
const (
	OpFetch  = "fetch"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ValidationError reports field-level problems found before any remote call.
// Fields maps field key to message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := e.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Keys returns the failing field keys in sorted order.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RemoteError wraps a failed remote create, update, delete or fetch. It
// matches both ErrRemote and the underlying cause under errors.Is.
type RemoteError struct {
	Op  string
	ID  ID
	Err error
}

func (e *RemoteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remote %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *RemoteError) Unwrap() []error { return []error{ErrRemote, e.Err} }
