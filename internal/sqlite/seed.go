package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Seed inserts records into table when the table is empty and persists its
// JSONL file. Seeding is all or nothing. A table that already holds records
// is left alone and Seed reports 0.
func (b *Backend) Seed(table string, records []types.Values) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrDetached
	}
	if _, ok := b.tables[table]; !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrTableNotFound, table)
	}

	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM records WHERE table_name = ?", table).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	if count > 0 || len(records) == 0 {
		return 0, nil
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := stamp(time.Now())
	ids := make([]types.ID, 0, len(records))
	for _, rec := range records {
		id, err := types.IDFrom(rec[types.DefaultIDKey])
		if err != nil {
			v7, err := uuid.NewV7()
			if err != nil {
				return 0, fmt.Errorf("generating UUID v7: %w", err)
			}
			id = types.ID(v7.String())
		}
		values := rec.Clone()
		values[types.DefaultIDKey] = string(id)
		created := normalizeTime(values[fieldCreatedAt], now)
		values[fieldCreatedAt] = created
		values[fieldUpdatedAt] = normalizeTime(values[fieldUpdatedAt], created)

		r, err := newRow(id, values)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(insertRecordSQL, table, string(id), r.hotelID, r.body, r.createdAt, r.updatedAt); err != nil {
			return 0, fmt.Errorf("seeding %s %s: %w", table, id, err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}

	if err := b.persistLocked(table); err != nil {
		return 0, fmt.Errorf("persisting seeded %s: %w", table, err)
	}
	for _, id := range ids {
		b.feed.publish(ChangeEvent{Table: table, Op: types.OpCreate, ID: id})
	}
	b.log.Info("table seeded", "table", table, "records", len(ids))
	return len(ids), nil
}
