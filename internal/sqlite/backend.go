// Package sqlite implements the console datastore on SQLite. JSONL files,
// one per table, are the source of truth; the SQLite database is rebuilt
// from them at Attach and serves every query.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// dbFile is the SQLite database inside DataDir. It is disposable.
const dbFile = "frontdesk.db"

// Compile-time interface check.
var _ types.Datastore = (*Backend)(nil)

// Backend implements types.Datastore.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]*Table
	log      *slog.Logger
	feed     *feed

	syncStrategy string
	// dirty holds tables whose JSONL file is behind the database under the
	// on_close strategy.
	dirty map[string]bool
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBackend creates a detached backend. Call Attach to use it.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]*Table),
		dirty:  make(map[string]bool),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.feed = newFeed(b.log)
	return b
}

// GetTable returns the table with the given name.
// Returns ErrDetached before Attach and ErrTableNotFound for names the
// config does not list.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrTableNotFound, name)
	}
	return t, nil
}

// TableNames returns the attached table names in order.
func (b *Backend) TableNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.tables))
	for name := range b.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attach validates config, creates DataDir, and rebuilds the database from
// the JSONL files. Missing JSONL files are created empty.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	for _, suffix := range []string{"", "-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// One connection serializes writers and keeps the pragma state.
	db.SetMaxOpenConns(1)
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	names := config.TableNames()
	for _, name := range names {
		if err := ensureJSONL(dataDir, name); err != nil {
			db.Close()
			return err
		}
	}
	if err := loadAllJSONL(db, dataDir, names, b.log); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.syncStrategy = config.EffectiveSyncStrategy()
	b.dirty = make(map[string]bool)
	b.tables = make(map[string]*Table, len(names))
	for _, name := range names {
		b.tables[name] = &Table{name: name, backend: b}
	}
	b.feed.reopen()
	b.attached = true
	b.log.Debug("datastore attached", "data_dir", dataDir, "tables", len(names), "sync", b.syncStrategy)
	return nil
}

// Detach flushes deferred JSONL writes, closes the database and ends every
// change subscription. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.flushLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.attached = false
	b.tables = make(map[string]*Table)
	b.feed.close()
	b.log.Debug("datastore detached")
	return nil
}

// Subscribe returns a channel of change events for table, or for every
// table when table is empty, and a func that cancels the subscription.
// Events are dropped for subscribers that fall behind. The channel is
// closed by cancel or by Detach.
func (b *Backend) Subscribe(table string) (<-chan ChangeEvent, func()) {
	return b.feed.subscribe(table)
}

// persistLocked brings the JSONL file of table up to date, or marks it dirty
// under on_close. The caller must hold b.mu for writing.
func (b *Backend) persistLocked(table string) error {
	if b.syncStrategy == types.SyncOnClose {
		b.dirty[table] = true
		return nil
	}
	return b.writeTableLocked(table)
}

// flushLocked writes every dirty table. The caller must hold b.mu for
// writing.
func (b *Backend) flushLocked() error {
	names := make([]string, 0, len(b.dirty))
	for name := range b.dirty {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := b.writeTableLocked(name); err != nil {
			return err
		}
		delete(b.dirty, name)
	}
	return nil
}

// writeTableLocked rewrites the JSONL file of table from the database,
// oldest record first.
func (b *Backend) writeTableLocked(table string) error {
	rows, err := b.db.Query(
		"SELECT body FROM records WHERE table_name = ? ORDER BY created_at, record_id", table)
	if err != nil {
		return fmt.Errorf("reading %s for persist: %w", table, err)
	}
	defer rows.Close()

	var lines []json.RawMessage
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scanning %s for persist: %w", table, err)
		}
		lines = append(lines, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading %s for persist: %w", table, err)
	}
	if err := writeJSONL(jsonlPath(b.config.DataDir, table), lines); err != nil {
		return fmt.Errorf("persisting %s.jsonl: %w", table, err)
	}
	return nil
}
