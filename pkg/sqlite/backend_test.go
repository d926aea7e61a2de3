package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func TestNewBackend(t *testing.T) {
	store := NewBackend(nil)
	_, err := store.GetTable(types.TableTasks)
	assert.ErrorIs(t, err, types.ErrDetached)

	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	tasks, err := store.GetTable(types.TableTasks)
	require.NoError(t, err)
	id, err := tasks.Set("", types.Values{"title": "Check minibar"})
	require.NoError(t, err)

	got, err := tasks.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Check minibar", got["title"])
	assert.Equal(t, string(id), got["id"])
}
