package crud

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// RollbackPolicy decides what happens to an optimistic change when its
// remote call fails.
type RollbackPolicy string

const (
	// RollbackNone leaves the optimistic change in place; the store stays
	// out of step with the remote until the next refetch.
	RollbackNone RollbackPolicy = "none"
	// RollbackRestore puts back the pre-mutation state of the entity.
	RollbackRestore RollbackPolicy = "restore"
)

// ParseRollbackPolicy validates a policy name. Empty means RollbackNone.
func ParseRollbackPolicy(s string) (RollbackPolicy, error) {
	switch p := RollbackPolicy(s); p {
	case "":
		return RollbackNone, nil
	case RollbackNone, RollbackRestore:
		return p, nil
	}
	return "", fmt.Errorf("unknown rollback policy %q", s)
}

// snapshot is the pre-mutation state of one entity.
type snapshot[E types.Entity[E]] struct {
	id         types.ID
	prev       E
	existed    bool
	pos        int
	generation uint64
}

// journal keeps one snapshot per in-flight mutation, keyed by operation id.
type journal[E types.Entity[E]] struct {
	entries map[uuid.UUID]snapshot[E]
	log     *slog.Logger
}

func newJournal[E types.Entity[E]](log *slog.Logger) *journal[E] {
	return &journal[E]{entries: make(map[uuid.UUID]snapshot[E]), log: log}
}

// record snapshots id before a mutation and returns the operation id.
func (j *journal[E]) record(s *Store[E], id types.ID) uuid.UUID {
	op, err := uuid.NewV7()
	if err != nil {
		op = uuid.New()
	}
	prev, existed := s.ByID(id)
	j.entries[op] = snapshot[E]{
		id:         id,
		prev:       prev,
		existed:    existed,
		pos:        s.position(id),
		generation: s.generation,
	}
	return op
}

// forget drops the snapshot of a settled operation.
func (j *journal[E]) forget(op uuid.UUID) { delete(j.entries, op) }

// restore puts the snapshot of op back into s. A snapshot taken before the
// last Replace is stale and is dropped instead: refetched data wins.
func (j *journal[E]) restore(s *Store[E], op uuid.UUID) {
	snap, ok := j.entries[op]
	if !ok {
		return
	}
	delete(j.entries, op)
	if snap.generation != s.generation {
		j.log.Info("rollback skipped after refetch", "op", op, "id", snap.id)
		return
	}
	if !snap.existed {
		s.Remove(snap.id)
		j.log.Debug("rolled back optimistic insert", "op", op, "id", snap.id)
		return
	}
	s.put(snap.prev, snap.pos)
	j.log.Debug("restored entity", "op", op, "id", snap.id)
}

// pending returns the number of unsettled operations.
func (j *journal[E]) pending() int { return len(j.entries) }
