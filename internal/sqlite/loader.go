package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

const insertRecordSQL = `INSERT INTO records
    (table_name, record_id, hotel_id, body, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?)`

// loadAllJSONL rebuilds the records table from the JSONL file of every
// table. Loading is transactional: all tables load or none do. Lines that
// are malformed, lack an identity, or repeat one are skipped and logged.
func loadAllJSONL(db *sql.DB, dataDir string, tables []string, log *slog.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertRecordSQL)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	now := stamp(time.Now())
	for _, table := range tables {
		lines, err := readJSONL(jsonlPath(dataDir, table))
		if err != nil {
			return err
		}
		loaded := 0
		for i, line := range lines {
			r, err := rowFromJSONL(line, now)
			if err != nil {
				log.Warn("skipping JSONL record", "table", table, "line", i+1, "error", err)
				continue
			}
			if _, err := stmt.Exec(table, string(r.id), r.hotelID, r.body, r.createdAt, r.updatedAt); err != nil {
				log.Warn("skipping JSONL record", "table", table, "line", i+1, "id", r.id, "error", err)
				continue
			}
			loaded++
		}
		log.Debug("table loaded", "table", table, "records", loaded)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// rowFromJSONL decodes one JSONL line. Missing timestamps default to now;
// unknown fields are kept.
func rowFromJSONL(line json.RawMessage, now string) (row, error) {
	values, err := decodeBody(line)
	if err != nil {
		return row{}, err
	}
	id, err := types.IDFrom(values[types.DefaultIDKey])
	if err != nil {
		return row{}, err
	}
	values[fieldCreatedAt] = normalizeTime(values[fieldCreatedAt], now)
	values[fieldUpdatedAt] = normalizeTime(values[fieldUpdatedAt], values[fieldCreatedAt].(string))
	return newRow(id, values)
}
