package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func TestSubscribe_ReceivesWritesForItsTable(t *testing.T) {
	b, _ := attached(t)
	events, cancel := b.Subscribe(types.TableTasks)
	defer cancel()

	tasks := mustTable(t, b, types.TableTasks)
	staff := mustTable(t, b, types.TableStaff)

	id, err := tasks.Set("", types.Values{"title": "Fix lamp"})
	require.NoError(t, err)
	_, err = staff.Set("", types.Values{"name": "Ana"})
	require.NoError(t, err)
	_, err = tasks.Set(id, types.Values{"status": "done"})
	require.NoError(t, err)
	require.NoError(t, tasks.Delete(id))

	want := []ChangeEvent{
		{Table: types.TableTasks, Op: types.OpCreate, ID: id},
		{Table: types.TableTasks, Op: types.OpUpdate, ID: id},
		{Table: types.TableTasks, Op: types.OpDelete, ID: id},
	}
	for _, w := range want {
		select {
		case got := <-events:
			assert.Equal(t, w, got)
		default:
			t.Fatalf("missing event %+v", w)
		}
	}
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestSubscribe_AllTables(t *testing.T) {
	b, _ := attached(t)
	events, cancel := b.Subscribe("")
	defer cancel()

	_, err := mustTable(t, b, types.TableStaff).Set("s1", types.Values{"name": "Ana"})
	require.NoError(t, err)

	ev := <-events
	assert.Equal(t, types.TableStaff, ev.Table)
}

func TestSubscribe_FailedWritePublishesNothing(t *testing.T) {
	b, _ := attached(t)
	events, cancel := b.Subscribe("")
	defer cancel()

	assert.ErrorIs(t, mustTable(t, b, types.TableTasks).Delete("missing"), types.ErrNotFound)
	assert.Empty(t, events)
}

func TestSubscribe_SlowSubscriberDropsEvents(t *testing.T) {
	b, _ := attached(t)
	events, cancel := b.Subscribe(types.TableTasks)
	defer cancel()

	tbl := mustTable(t, b, types.TableTasks)
	for range subscriberBuffer + 5 {
		_, err := tbl.Set("", types.Values{"title": "x"})
		require.NoError(t, err, "writes never block on subscribers")
	}
	assert.Len(t, events, subscriberBuffer)
}

func TestSubscribe_CancelAndDetachClose(t *testing.T) {
	b, _ := attached(t)

	events, cancel := b.Subscribe("")
	cancel()
	cancel()
	_, open := <-events
	assert.False(t, open, "cancel closes the channel")

	other, cancelOther := b.Subscribe("")
	defer cancelOther()
	require.NoError(t, b.Detach())
	_, open = <-other
	assert.False(t, open, "detach closes the channel")
}
