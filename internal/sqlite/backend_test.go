package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func testConfig(dir string) types.Config {
	return types.Config{Backend: types.BackendSQLite, DataDir: dir}
}

// attached returns a backend attached to a fresh temp dir.
func attached(t *testing.T, cfg ...func(*types.Config)) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	config := testConfig(dir)
	for _, f := range cfg {
		f(&config)
	}
	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func mustTable(t *testing.T, b *Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	if err != nil {
		t.Fatalf("GetTable(%q) failed: %v", name, err)
	}
	return tbl
}

func TestBackend_Attach(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"empty backend", types.Config{}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres"}, types.ErrBackendUnknown},
		{"unknown sync", types.Config{Backend: types.BackendSQLite, SyncStrategy: "batch"}, types.ErrSyncStrategyUnknown},
		{"bad table name", types.Config{Backend: types.BackendSQLite, Tables: []string{"../etc"}}, types.ErrTableNameInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.DataDir = t.TempDir()
			err := NewBackend().Attach(tt.config)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Attach error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackend_AttachCreatesDataDirAndFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	if err := b.Attach(testConfig(dir)); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	for _, name := range types.StandardTableNames {
		info, err := os.Stat(filepath.Join(dir, name+".jsonl"))
		if err != nil {
			t.Errorf("expected %s.jsonl to exist: %v", name, err)
			continue
		}
		if info.Size() != 0 {
			t.Errorf("expected %s.jsonl to be empty, got %d bytes", name, info.Size())
		}
	}
}

func TestBackend_AttachTwice(t *testing.T) {
	b, dir := attached(t)
	if err := b.Attach(testConfig(dir)); !errors.Is(err, types.ErrAlreadyAttached) {
		t.Errorf("second Attach error = %v, want ErrAlreadyAttached", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attached(t)
	tbl := mustTable(t, b, types.TableTasks)

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should succeed, got %v", err)
	}
	if _, err := b.GetTable(types.TableTasks); !errors.Is(err, types.ErrDetached) {
		t.Errorf("GetTable after Detach = %v, want ErrDetached", err)
	}
	if _, err := tbl.Fetch(nil); !errors.Is(err, types.ErrDetached) {
		t.Errorf("Fetch after Detach = %v, want ErrDetached", err)
	}
	if _, err := tbl.Set("", types.Values{"title": "x"}); !errors.Is(err, types.ErrDetached) {
		t.Errorf("Set after Detach = %v, want ErrDetached", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b, _ := attached(t, func(c *types.Config) { c.Tables = []string{"tasks", "notes"} })

	if _, err := b.GetTable("notes"); err != nil {
		t.Errorf("GetTable(notes) failed: %v", err)
	}
	if _, err := b.GetTable(types.TableAmenities); !errors.Is(err, types.ErrTableNotFound) {
		t.Errorf("GetTable(amenities) = %v, want ErrTableNotFound", err)
	}
	got := b.TableNames()
	if len(got) != 2 || got[0] != "notes" || got[1] != "tasks" {
		t.Errorf("TableNames = %v, want [notes tasks]", got)
	}
}

func TestBackend_ReattachReloadsJSONL(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	if err := b.Attach(testConfig(dir)); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	tbl := mustTable(t, b, types.TableStaff)
	id, err := tbl.Set("", types.Values{"name": "Ana", "hotel_id": "h1", "is_active": true})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	b2 := NewBackend()
	if err := b2.Attach(testConfig(dir)); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()

	got, err := mustTable(t, b2, types.TableStaff).Get(id)
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	if got["name"] != "Ana" || got["is_active"] != true || got["hotel_id"] != "h1" {
		t.Errorf("reloaded record = %v", got)
	}
}

func TestBackend_SyncOnCloseDefersWrites(t *testing.T) {
	b, dir := attached(t, func(c *types.Config) { c.SyncStrategy = types.SyncOnClose })
	tbl := mustTable(t, b, types.TableTasks)

	if _, err := tbl.Set("t1", types.Values{"title": "Fix lamp"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	path := filepath.Join(dir, "tasks.jsonl")
	if data, _ := os.ReadFile(path); len(data) != 0 {
		t.Fatalf("expected no JSONL write before Detach, got %q", data)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	lines, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("expected 1 line after Detach, got %d", len(lines))
	}
}
