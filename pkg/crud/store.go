package crud

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Store is the authoritative in-memory collection of one engine. Insertion
// order is preserved for deterministic projections. Store is not safe for
// concurrent use; the owning Engine serializes access.
type Store[E types.Entity[E]] struct {
	order []types.ID
	byID  map[types.ID]E
	log   *slog.Logger

	// generation counts Replace calls so a rollback can tell whether its
	// snapshot predates a refetch.
	generation uint64
}

// NewStore returns an empty store. A nil logger means slog.Default().
func NewStore[E types.Entity[E]](log *slog.Logger) *Store[E] {
	if log == nil {
		log = slog.Default()
	}
	return &Store[E]{byID: make(map[types.ID]E), log: log}
}

// All returns the entities in insertion order. The slice is a copy.
func (s *Store[E]) All() []E {
	out := make([]E, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of entities.
func (s *Store[E]) Len() int { return len(s.order) }

// ByID returns the entity with the given identity.
func (s *Store[E]) ByID(id types.ID) (E, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Insert appends a new entity. Returns ErrInvalidID for an entity without
// identity and ErrIdentityConflict when the identity is already present.
func (s *Store[E]) Insert(e E) error {
	id := e.EntityID()
	if id == "" {
		return types.ErrInvalidID
	}
	if _, ok := s.byID[id]; ok {
		return fmt.Errorf("insert %s: %w", id, types.ErrIdentityConflict)
	}
	s.byID[id] = e
	s.order = append(s.order, id)
	return nil
}

// Merge shallow-merges partial into the entity with the given identity and
// returns the result. Returns ErrNotFound if the identity is absent.
func (s *Store[E]) Merge(id types.ID, partial types.Values) (E, error) {
	cur, ok := s.byID[id]
	if !ok {
		var zero E
		return zero, fmt.Errorf("merge %s: %w", id, types.ErrNotFound)
	}
	next := cur.Merge(partial)
	s.byID[id] = next
	return next, nil
}

// Remove deletes the entity with the given identity and reports whether it
// was present. Removing an absent identity is a logged no-op.
func (s *Store[E]) Remove(id types.ID) bool {
	if _, ok := s.byID[id]; !ok {
		s.log.Debug("remove of absent entity ignored", "id", id)
		return false
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(x types.ID) bool { return x == id })
	return true
}

// Replace swaps the whole collection, as a refetch does. Entities without an
// identity, and later duplicates of an identity, are dropped and logged.
func (s *Store[E]) Replace(entities []E) {
	s.order = make([]types.ID, 0, len(entities))
	s.byID = make(map[types.ID]E, len(entities))
	for _, e := range entities {
		id := e.EntityID()
		if id == "" {
			s.log.Warn("entity without identity dropped")
			continue
		}
		if _, dup := s.byID[id]; dup {
			s.log.Warn("duplicate entity dropped", "id", id)
			continue
		}
		s.byID[id] = e
		s.order = append(s.order, id)
	}
	s.generation++
}

// position returns the index of id in insertion order, or -1.
func (s *Store[E]) position(id types.ID) int {
	return slices.Index(s.order, id)
}

// put stores e under its identity. A new identity is placed at pos, clamped
// to the collection bounds; an existing one is overwritten in place.
func (s *Store[E]) put(e E, pos int) {
	id := e.EntityID()
	if _, ok := s.byID[id]; ok {
		s.byID[id] = e
		return
	}
	pos = max(0, min(pos, len(s.order)))
	s.byID[id] = e
	s.order = slices.Insert(s.order, pos, id)
}
