package crud

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// mutation tracks one optimistic change from apply to settle.
type mutation struct {
	op      uuid.UUID
	id      types.ID
	applied bool
	// modal is set for submits driven by a modal; session is the modal
	// session that submit belongs to.
	modal   bool
	session uint64
}

// HandleCreateSubmit validates the create draft, inserts the provisional
// entity and sends the create to the remote. On success the modal closes
// and the remote's entity is returned. The store is not reconciled with it.
func (e *Engine[E]) HandleCreateSubmit(ctx context.Context) (E, error) {
	var zero E
	e.mu.Lock()
	if err := e.checkSubmit(ModalCreate); err != nil {
		e.mu.Unlock()
		return zero, err
	}
	if errs := e.form.Validate(); len(errs) > 0 {
		e.mu.Unlock()
		return zero, &types.ValidationError{Fields: errs}
	}

	a := e.adapter
	scope := e.cfg.scope
	draft := e.form.Values()
	m := mutation{modal: true, session: e.modal.session}

	if !a.ReadOnlyCreate {
		id, err := types.IDFrom(draft[a.IDKey])
		if err != nil {
			id = a.NewID()
			draft[a.IDKey] = string(id)
		}
		if e.inflight[id] {
			e.mu.Unlock()
			return zero, inProgress(id)
		}
		entity, err := a.Build(format(a.FormatNewEntity, scope, draft))
		if err != nil {
			e.mu.Unlock()
			return zero, fmt.Errorf("build provisional entity: %w", err)
		}
		m.id = id
		m.op = e.journal.record(e.store, id)
		if err := e.store.Insert(entity); err != nil {
			e.journal.forget(m.op)
			if e.cfg.strict {
				e.mu.Unlock()
				return zero, err
			}
			e.log.Error("optimistic insert skipped", "id", id, "error", err)
		} else {
			m.applied = true
			e.touch()
		}
	}

	payload := a.TransformCreate(scope, draft)
	e.begin(m)
	e.mu.Unlock()

	created, err := a.Remote.Create(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.settle(m, err)
	if err != nil {
		return zero, &types.RemoteError{Op: types.OpCreate, ID: m.id, Err: err}
	}
	e.log.Info("entity created", "id", created.EntityID())
	return created, nil
}

// HandleEditSubmit validates the edit draft, merges it into the target and
// sends the update to the remote.
func (e *Engine[E]) HandleEditSubmit(ctx context.Context) (E, error) {
	var zero E
	e.mu.Lock()
	if err := e.checkSubmit(ModalEdit); err != nil {
		e.mu.Unlock()
		return zero, err
	}
	target := e.modal.State().Target
	if target == nil {
		e.mu.Unlock()
		return zero, types.ErrNoModalTarget
	}
	id := (*target).EntityID()
	if e.inflight[id] {
		e.mu.Unlock()
		return zero, inProgress(id)
	}
	if errs := e.form.Validate(); len(errs) > 0 {
		e.mu.Unlock()
		return zero, &types.ValidationError{Fields: errs}
	}

	a := e.adapter
	scope := e.cfg.scope
	draft := e.form.Values()
	m := mutation{id: id, modal: true, session: e.modal.session}
	e.apply(&m, format(a.FormatUpdatedEntity, scope, draft))

	payload := a.TransformUpdate(scope, id, draft)
	e.begin(m)
	e.mu.Unlock()

	updated, err := a.Remote.Update(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.settle(m, err)
	if err != nil {
		return zero, &types.RemoteError{Op: types.OpUpdate, ID: id, Err: err}
	}
	e.log.Info("entity updated", "id", id)
	return updated, nil
}

// HandleDeleteConfirm removes the delete modal's target and sends the
// delete to the remote.
func (e *Engine[E]) HandleDeleteConfirm(ctx context.Context) error {
	e.mu.Lock()
	if err := e.checkSubmit(ModalDelete); err != nil {
		e.mu.Unlock()
		return err
	}
	target := e.modal.State().Target
	if target == nil {
		e.mu.Unlock()
		return types.ErrNoModalTarget
	}
	id := (*target).EntityID()
	if e.inflight[id] {
		e.mu.Unlock()
		return inProgress(id)
	}

	a := e.adapter
	m := mutation{id: id, modal: true, session: e.modal.session}
	m.op = e.journal.record(e.store, id)
	if e.store.Remove(id) {
		m.applied = true
		e.touch()
	} else {
		e.journal.forget(m.op)
	}

	payload := a.TransformDelete(e.cfg.scope, id)
	e.begin(m)
	e.mu.Unlock()

	err := a.Remote.Delete(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.settle(m, err)
	if err != nil {
		return &types.RemoteError{Op: types.OpDelete, ID: id, Err: err}
	}
	e.log.Info("entity deleted", "id", id)
	return nil
}

// HandleStatusToggle sets the adapter's status field of one entity.
func (e *Engine[E]) HandleStatusToggle(ctx context.Context, id types.ID, value bool) error {
	return e.HandleFieldToggle(ctx, id, value, e.adapter.StatusField)
}

// HandleFieldToggle sets one boolean field of one entity, outside of any
// modal.
func (e *Engine[E]) HandleFieldToggle(ctx context.Context, id types.ID, value bool, field string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return types.ErrEngineClosed
	}
	if e.inflight[id] {
		e.mu.Unlock()
		return inProgress(id)
	}

	a := e.adapter
	partial := types.Values{field: value}
	m := mutation{id: id}
	e.apply(&m, partial)

	payload := a.TransformUpdate(e.cfg.scope, id, partial)
	e.begin(m)
	e.mu.Unlock()

	_, err := a.Remote.Update(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.settle(m, err)
	if err != nil {
		return &types.RemoteError{Op: types.OpUpdate, ID: id, Err: err}
	}
	e.log.Debug("field toggled", "id", id, "field", field, "value", value)
	return nil
}

// inProgress wraps ErrSubmitInProgress with the identity.
func inProgress(id types.ID) error {
	return fmt.Errorf("%s: %w", id, types.ErrSubmitInProgress)
}

// checkSubmit rejects a modal submit that cannot start. The caller must hold
// e.mu.
func (e *Engine[E]) checkSubmit(mode ModalMode) error {
	switch {
	case e.closed:
		return types.ErrEngineClosed
	case e.modal.State().Mode != mode:
		return fmt.Errorf("%w: want %s, open %s", types.ErrModalMismatch, mode, e.modal.State().Mode)
	case e.form.IsSubmitting():
		return types.ErrSubmitInProgress
	}
	return nil
}

// apply merges partial into m.id and records the snapshot. A stale identity
// is skipped. The caller must hold e.mu.
func (e *Engine[E]) apply(m *mutation, partial types.Values) {
	m.op = e.journal.record(e.store, m.id)
	if _, err := e.store.Merge(m.id, partial); err != nil {
		e.journal.forget(m.op)
		e.log.Debug("optimistic merge skipped", "id", m.id, "error", err)
		return
	}
	m.applied = true
	e.touch()
}

// begin marks m in flight. The caller must hold e.mu.
func (e *Engine[E]) begin(m mutation) {
	if m.id != "" {
		e.inflight[m.id] = true
	}
	if m.modal {
		e.form.setSubmitting(true)
	}
}

// settle ends m after the remote answered with err. After Close the store
// is left alone. The caller must hold e.mu.
func (e *Engine[E]) settle(m mutation, err error) {
	delete(e.inflight, m.id)
	current := m.modal && e.modal.session == m.session
	if current {
		e.form.setSubmitting(false)
	}
	if e.closed {
		return
	}
	if m.applied {
		if err != nil && e.cfg.rollback == RollbackRestore {
			e.journal.restore(e.store, m.op)
			e.touch()
		} else {
			e.journal.forget(m.op)
		}
	}
	if err == nil && current {
		e.modal.Close()
		e.form.Discard()
	}
}
