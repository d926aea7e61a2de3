package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_SkipsRecordsWithoutIdentity(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "amenities.jsonl"), strings.Join([]string{
		`{"id":1,"name":"Pool","created_at":"2026-01-02T10:00:00Z"}`,
		`{"name":"no id"}`,
		`{"id":"","name":"blank id"}`,
		`{"id":1,"name":"duplicate"}`,
		`{"id":"spa","name":"Spa","future_field":{"nested":true}}`,
	}, "\n"))

	b := NewBackend()
	if err := b.Attach(testConfig(dir)); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	tbl := mustTable(t, b, types.TableAmenities)
	all, err := tbl.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(all), all)
	}

	pool, err := tbl.Get("1")
	if err != nil {
		t.Fatalf("Get(1) failed: %v", err)
	}
	if pool["name"] != "Pool" {
		t.Errorf("first occurrence should win, got %v", pool["name"])
	}
	if pool["created_at"] != "2026-01-02T10:00:00.000000000Z" {
		t.Errorf("created_at not normalized: %v", pool["created_at"])
	}

	spa, err := tbl.Get("spa")
	if err != nil {
		t.Fatalf("Get(spa) failed: %v", err)
	}
	if _, ok := spa["future_field"]; !ok {
		t.Error("unknown fields should be kept")
	}
}

func TestLoad_UpdatedAtDefaultsToCreatedAt(t *testing.T) {
	r, err := rowFromJSONL([]byte(`{"id":"a","created_at":"2026-03-04"}`), "2026-10-16T00:00:00.000000000Z")
	if err != nil {
		t.Fatalf("rowFromJSONL failed: %v", err)
	}
	if r.createdAt != "2026-03-04T00:00:00.000000000Z" {
		t.Errorf("createdAt = %q", r.createdAt)
	}
	if r.updatedAt != r.createdAt {
		t.Errorf("updatedAt = %q, want %q", r.updatedAt, r.createdAt)
	}
}

func TestLoad_MissingTimestampsUseNow(t *testing.T) {
	now := "2026-10-16T00:00:00.000000000Z"
	r, err := rowFromJSONL([]byte(`{"id":"a","hotel_id":"h9"}`), now)
	if err != nil {
		t.Fatalf("rowFromJSONL failed: %v", err)
	}
	if r.createdAt != now || r.updatedAt != now {
		t.Errorf("timestamps = %q/%q, want %q", r.createdAt, r.updatedAt, now)
	}
	if r.hotelID == nil || *r.hotelID != "h9" {
		t.Errorf("hotelID = %v, want h9", r.hotelID)
	}
}
