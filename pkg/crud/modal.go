package crud

import (
	"log/slog"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// ModalMode names the modal that is open.
type ModalMode string

// Modal modes. ModalNone is both the initial and the terminal state.
const (
	ModalNone   ModalMode = "none"
	ModalCreate ModalMode = "create"
	ModalEdit   ModalMode = "edit"
	ModalDelete ModalMode = "delete"
	ModalDetail ModalMode = "detail"
)

// ModalState is the open modal and the entity it targets. Target is nil
// exactly when Mode is ModalNone or ModalCreate.
type ModalState[E types.Entity[E]] struct {
	Mode   ModalMode
	Target *E
}

// IsOpen reports whether any modal is open.
func (s ModalState[E]) IsOpen() bool { return s.Mode != ModalNone }

// Modal tracks which modal is open. Opening a modal while another one is open
// replaces it; the replacement is logged, since it discards a draft.
type Modal[E types.Entity[E]] struct {
	state ModalState[E]
	log   *slog.Logger

	// session increments on every transition so an in-flight submit can tell
	// whether the modal it belongs to is still the open one.
	session uint64
}

// NewModal returns a closed modal. A nil logger means slog.Default().
func NewModal[E types.Entity[E]](log *slog.Logger) *Modal[E] {
	if log == nil {
		log = slog.Default()
	}
	return &Modal[E]{state: ModalState[E]{Mode: ModalNone}, log: log}
}

// State returns the current state.
func (m *Modal[E]) State() ModalState[E] { return m.state }

// OpenCreate opens the create modal.
func (m *Modal[E]) OpenCreate() { m.open(ModalCreate, nil) }

// OpenEdit opens the edit modal for e.
func (m *Modal[E]) OpenEdit(e E) { m.open(ModalEdit, &e) }

// OpenDelete opens the delete confirmation for e.
func (m *Modal[E]) OpenDelete(e E) { m.open(ModalDelete, &e) }

// OpenDetail opens the read-only detail view for e.
func (m *Modal[E]) OpenDetail(e E) { m.open(ModalDetail, &e) }

// Close returns to ModalNone and reports whether a modal was open. Closing
// an already closed modal changes nothing.
func (m *Modal[E]) Close() bool {
	if m.state.Mode == ModalNone {
		return false
	}
	m.state = ModalState[E]{Mode: ModalNone}
	m.session++
	return true
}

func (m *Modal[E]) open(mode ModalMode, target *E) {
	if prev := m.state.Mode; prev != ModalNone {
		attrs := []any{"previous", prev, "next", mode}
		if m.state.Target != nil {
			attrs = append(attrs, "previous_id", (*m.state.Target).EntityID())
		}
		m.log.Warn("modal replaced while open", attrs...)
	}
	m.state = ModalState[E]{Mode: mode, Target: target}
	m.session++
}
