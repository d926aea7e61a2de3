package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func TestModal_Transitions(t *testing.T) {
	m := NewModal[types.Record](quietLogger())
	assert.Equal(t, ModalNone, m.State().Mode)
	assert.False(t, m.State().IsOpen())

	m.OpenCreate()
	assert.Equal(t, ModalCreate, m.State().Mode)
	assert.Nil(t, m.State().Target)

	assert.True(t, m.Close())
	assert.Equal(t, ModalNone, m.State().Mode)

	m.OpenEdit(pool())
	require.NotNil(t, m.State().Target)
	assert.Equal(t, types.ID("1"), m.State().Target.EntityID())
}

func TestModal_CloseWhenClosedIsNoop(t *testing.T) {
	m := NewModal[types.Record](quietLogger())
	session := m.session

	assert.False(t, m.Close())
	assert.False(t, m.Close())
	assert.Equal(t, session, m.session)
	assert.Equal(t, ModalNone, m.State().Mode)
}

func TestModal_OpenReplacesOpenModal(t *testing.T) {
	m := NewModal[types.Record](quietLogger())
	m.OpenEdit(pool())
	first := m.session

	m.OpenDelete(pool())
	assert.Equal(t, ModalDelete, m.State().Mode)
	assert.Greater(t, m.session, first)
}

func TestEngine_OpenModalSeedsDraft(t *testing.T) {
	e := newAmenityEngine(t, &fakeRemote{}, []types.Record{pool()})

	e.OpenCreateModal()
	assert.Equal(t, types.Values{
		"name":      "",
		"category":  "spa",
		"capacity":  nil,
		"is_active": false,
	}, e.Form().Values)

	e.OpenEditModal(pool())
	assert.Equal(t, types.Values{
		"name":      "Pool",
		"category":  "spa",
		"is_active": true,
	}, e.Form().Values)

	e.OpenDetailModal(pool())
	assert.Empty(t, e.Form().Values)

	e.CloseModal()
	e.CloseModal()
	assert.Equal(t, ModalNone, e.Modal().Mode)
}
