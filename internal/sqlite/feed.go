package sqlite

import (
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// ChangeEvent announces one committed write. Op is types.OpCreate,
// types.OpUpdate or types.OpDelete.
type ChangeEvent struct {
	Table string
	Op    string
	ID    types.ID
}

// subscriberBuffer is the channel capacity of each subscription.
const subscriberBuffer = 16

type subscription struct {
	table string
	ch    chan ChangeEvent
}

// feed fans change events out to subscribers. Delivery is best effort: a
// subscriber whose buffer is full misses the event.
type feed struct {
	mu     sync.Mutex
	next   int
	subs   map[int]subscription
	log    *slog.Logger
	closed bool
}

func newFeed(log *slog.Logger) *feed {
	return &feed{subs: make(map[int]subscription), log: log}
}

// subscribe registers a subscriber for table, or for every table when table
// is empty. The returned func cancels the subscription and closes the
// channel; calling it more than once is safe.
func (f *feed) subscribe(table string) (<-chan ChangeEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan ChangeEvent, subscriberBuffer)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	key := f.next
	f.next++
	f.subs[key] = subscription{table: table, ch: ch}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if sub, ok := f.subs[key]; ok {
				delete(f.subs, key)
				close(sub.ch)
			}
		})
	}
}

func (f *feed) publish(ev ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.table != "" && sub.table != ev.Table {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			f.log.Debug("change event dropped for slow subscriber", "table", ev.Table, "id", ev.ID)
		}
	}
}

// close ends every subscription. Later subscriptions get a closed channel.
func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, sub := range f.subs {
		close(sub.ch)
		delete(f.subs, key)
	}
	f.closed = true
}

// reopen allows subscriptions again after a re-Attach.
func (f *feed) reopen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = false
}
