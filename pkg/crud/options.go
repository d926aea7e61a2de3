package crud

import (
	"log/slog"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// settings are the engine knobs that do not depend on the entity type.
type settings struct {
	log      *slog.Logger
	scope    types.Scope
	pageSize int
	rollback RollbackPolicy
	strict   bool
	sort     SortBy
	mode     ViewMode
}

func defaultSettings() settings {
	return settings{
		log:      slog.Default(),
		pageSize: DefaultPageSize,
		rollback: RollbackNone,
		mode:     ViewList,
	}
}

// Option configures an Engine.
type Option func(*settings)

// WithLogger sets the engine logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithScope sets the scope handed to every transform and to Fetch.
func WithScope(scope types.Scope) Option {
	return func(s *settings) { s.scope = scope }
}

// WithPageSize sets the initial page size.
func WithPageSize(n int) Option {
	return func(s *settings) { s.pageSize = n }
}

// WithRollback sets what happens to optimistic changes on remote failure.
func WithRollback(p RollbackPolicy) Option {
	return func(s *settings) { s.rollback = p }
}

// WithStrict makes an identity conflict on optimistic insert fail the
// submit. Without it the conflict is logged and the insert skipped.
func WithStrict(strict bool) Option {
	return func(s *settings) { s.strict = strict }
}

// WithSort sets the initial projection order.
func WithSort(sort SortBy) Option {
	return func(s *settings) { s.sort = sort }
}

// WithViewMode sets the initial view mode.
func WithViewMode(m ViewMode) Option {
	return func(s *settings) { s.mode = m }
}
