package crud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Engine is one page's CRUD state: the entity store, the search, filter and
// pagination state over it, the open modal and its form draft. All methods
// are safe for concurrent use. The lock is never held across a Remote call.
type Engine[E types.Entity[E]] struct {
	mu      sync.Mutex
	adapter Adapter[E]
	cfg     settings
	log     *slog.Logger

	store   *Store[E]
	modal   *Modal[E]
	form    *Form
	journal *journal[E]

	term        string
	filterValue string
	mode        ViewMode
	sort        SortBy
	currentPage int
	pageSize    int

	// inflight holds identities with a mutation awaiting the remote.
	inflight map[types.ID]bool

	// version bumps on every change to the store or the query; filtered is
	// the projection computed at filteredVersion.
	version         uint64
	filtered        []E
	filteredVersion uint64

	closed bool
}

// New wires an engine from a page adapter and the initially fetched data.
func New[E types.Entity[E]](adapter Adapter[E], initial []E, opts ...Option) (*Engine[E], error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.pageSize < 1 {
		return nil, types.ErrInvalidPageSize
	}
	if _, err := ParseViewMode(string(cfg.mode)); err != nil {
		return nil, err
	}
	if _, err := ParseRollbackPolicy(string(cfg.rollback)); err != nil {
		return nil, err
	}
	a, err := adapter.withDefaults()
	if err != nil {
		return nil, err
	}

	e := &Engine[E]{
		adapter:     a,
		cfg:         cfg,
		log:         cfg.log,
		store:       NewStore[E](cfg.log),
		modal:       NewModal[E](cfg.log),
		form:        NewForm(a.Fields),
		journal:     newJournal[E](cfg.log),
		mode:        cfg.mode,
		sort:        cfg.sort,
		currentPage: 1,
		pageSize:    cfg.pageSize,
		inflight:    make(map[types.ID]bool),
	}
	e.store.Replace(initial)
	e.touch()
	return e, nil
}

// Scope returns the scope the engine was built with.
func (e *Engine[E]) Scope() types.Scope { return e.cfg.scope }

// Data returns the whole collection in store order.
func (e *Engine[E]) Data() []E {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.All()
}

// ByID returns one entity from the store.
func (e *Engine[E]) ByID(id types.ID) (E, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.ByID(id)
}

// Search and filter.

func (e *Engine[E]) SearchTerm() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.term
}

func (e *Engine[E]) SetSearchTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = term
	e.touch()
}

func (e *Engine[E]) FilterValue() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filterValue
}

func (e *Engine[E]) SetFilterValue(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filterValue = v
	e.touch()
}

func (e *Engine[E]) Mode() ViewMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine[E]) SetViewMode(m ViewMode) error {
	if _, err := ParseViewMode(string(m)); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = m
	return nil
}

func (e *Engine[E]) SetSort(sort SortBy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sort = sort
	e.touch()
}

// FilteredData returns the searched and filtered collection.
func (e *Engine[E]) FilteredData() []E {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.filteredLocked())
}

// Pagination.

func (e *Engine[E]) Pagination() Pagination {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.filteredLocked())
	return Pagination{
		CurrentPage: e.currentPage,
		TotalPages:  TotalPages(n, e.pageSize),
		PageSize:    e.pageSize,
		TotalItems:  n,
	}
}

// GoToPage moves to page, clamped into range.
func (e *Engine[E]) GoToPage(page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentPage = ClampPage(page, TotalPages(len(e.filteredLocked()), e.pageSize))
}

// SetPageSize changes the page size and clamps the current page.
func (e *Engine[E]) SetPageSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", types.ErrInvalidPageSize, n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pageSize = n
	e.currentPage = ClampPage(e.currentPage, TotalPages(len(e.filteredLocked()), n))
	return nil
}

// PageItems returns the filtered entities on the current page.
func (e *Engine[E]) PageItems() []E {
	e.mu.Lock()
	defer e.mu.Unlock()
	data := e.filteredLocked()
	w := Paginate(len(data), e.currentPage, e.pageSize)
	return slices.Clone(data[w.Start:w.End])
}

// Modal.

func (e *Engine[E]) Modal() ModalState[E] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modal.State()
}

// OpenCreateModal opens the create modal with a draft of field defaults.
func (e *Engine[E]) OpenCreateModal() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modal.OpenCreate()
	e.form.Open(e.form.Defaults())
}

// OpenEditModal opens the edit modal with a draft projected from target.
func (e *Engine[E]) OpenEditModal(target E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modal.OpenEdit(target)
	e.form.Open(e.form.Project(target))
}

func (e *Engine[E]) OpenDeleteModal(target E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modal.OpenDelete(target)
	e.form.Discard()
}

func (e *Engine[E]) OpenDetailModal(target E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modal.OpenDetail(target)
	e.form.Discard()
}

// CloseModal closes the open modal and drops its draft. It is a no-op when
// no modal is open.
func (e *Engine[E]) CloseModal() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.modal.Close() {
		e.form.Discard()
	}
}

// Form.

func (e *Engine[E]) Form() FormState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.State()
}

func (e *Engine[E]) Fields() []types.FieldConfig { return e.adapter.Fields }

func (e *Engine[E]) UpdateField(key string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.UpdateField(key, value)
}

func (e *Engine[E]) SetFormData(values types.Values) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.SetFormData(values)
}

func (e *Engine[E]) ResetForm() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form.Reset()
}

// Reconciliation.

// Refetch loads the full collection from the remote and replaces the store
// with it. Results that arrive after Close are dropped.
func (e *Engine[E]) Refetch(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return types.ErrEngineClosed
	}
	scope := e.cfg.scope
	e.mu.Unlock()

	data, err := e.adapter.Remote.Fetch(ctx, scope)
	if err != nil {
		return &types.RemoteError{Op: types.OpFetch, Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		e.log.Debug("refetch result dropped after close")
		return nil
	}
	e.store.Replace(data)
	e.touch()
	e.log.Debug("collection refetched", "count", e.store.Len())
	return nil
}

// RefetchOn refetches once per signal until ctx is done or signals is
// closed. Fetch failures are logged and the loop continues.
func (e *Engine[E]) RefetchOn(ctx context.Context, signals <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			err := e.Refetch(ctx)
			switch {
			case errors.Is(err, types.ErrEngineClosed):
				return nil
			case err != nil:
				e.log.Warn("refetch failed", "error", err)
			}
		}
	}
}

// Reconcile replaces the store with data fetched elsewhere. The last write
// to the store wins over any optimistic change still in flight.
func (e *Engine[E]) Reconcile(data []E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.store.Replace(data)
	e.touch()
}

// Close disposes the engine. Mutations still awaiting the remote complete
// for their callers but no longer touch the store.
func (e *Engine[E]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.journal.entries = nil
}

// touch invalidates the projection and re-clamps the current page. The
// caller must hold e.mu.
func (e *Engine[E]) touch() {
	e.version++
	total := TotalPages(len(e.filteredLocked()), e.pageSize)
	e.currentPage = ClampPage(e.currentPage, total)
}

// filteredLocked returns the memoized projection. The caller must hold e.mu
// and must not modify the result.
func (e *Engine[E]) filteredLocked() []E {
	if e.filtered != nil && e.filteredVersion == e.version {
		return e.filtered
	}
	e.filtered = Search(e.store.All(), SearchParams{
		Term:        e.term,
		Fields:      e.adapter.SearchFields,
		FilterValue: e.filterValue,
		FilterField: e.adapter.FilterField,
		Sort:        e.sort,
	})
	e.filteredVersion = e.version
	return e.filtered
}
