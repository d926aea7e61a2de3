package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Compile-time interface check.
var _ types.Table = (*Table)(nil)

// Table is one page's records. Every write commits to SQLite, persists the
// table's JSONL file per the sync strategy, and publishes a ChangeEvent.
type Table struct {
	name    string
	backend *Backend
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// filterKeyPattern restricts filter keys to plain field names; they are
// spliced into a JSON path.
var filterKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Get returns the record with the given ID.
func (t *Table) Get(id types.ID) (types.Values, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	body, err := t.bodyLocked(id)
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

// Set creates or updates a record. With an empty id the record's own "id"
// field is used, and a UUID v7 is generated when that is missing too. An
// existing record is shallow-merged with data; its created_at is kept.
func (t *Table) Set(id types.ID, data types.Values) (types.ID, error) {
	if data == nil {
		return "", types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrDetached
	}

	if id == "" {
		if own, err := types.IDFrom(data[types.DefaultIDKey]); err == nil {
			id = own
		} else {
			v7, err := uuid.NewV7()
			if err != nil {
				return "", fmt.Errorf("generating UUID v7: %w", err)
			}
			id = types.ID(v7.String())
		}
	}

	now := stamp(time.Now())
	op := types.OpUpdate
	var values types.Values
	body, err := t.bodyLocked(id)
	switch {
	case errors.Is(err, types.ErrNotFound):
		op = types.OpCreate
		values = data.Clone()
		if own, err := types.IDFrom(values[types.DefaultIDKey]); err != nil || own != id {
			values[types.DefaultIDKey] = string(id)
		}
		values[fieldCreatedAt] = normalizeTime(values[fieldCreatedAt], now)
	case err != nil:
		return "", err
	default:
		cur, err := decodeBody(body)
		if err != nil {
			return "", err
		}
		values = types.NewRecord("", cur).Merge(data).Values()
		values[fieldCreatedAt] = cur[fieldCreatedAt]
	}
	values[fieldUpdatedAt] = now

	r, err := newRow(id, values)
	if err != nil {
		return "", err
	}
	if op == types.OpCreate {
		_, err = b.db.Exec(insertRecordSQL, t.name, string(id), r.hotelID, r.body, r.createdAt, r.updatedAt)
	} else {
		_, err = b.db.Exec(
			"UPDATE records SET hotel_id = ?, body = ?, updated_at = ? WHERE table_name = ? AND record_id = ?",
			r.hotelID, r.body, r.updatedAt, t.name, string(id))
	}
	if err != nil {
		return "", fmt.Errorf("writing %s %s: %w", t.name, id, err)
	}
	if err := b.persistLocked(t.name); err != nil {
		return "", err
	}
	b.feed.publish(ChangeEvent{Table: t.name, Op: op, ID: id})
	return id, nil
}

// Delete removes the record with the given ID.
func (t *Table) Delete(id types.ID) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrDetached
	}

	res, err := b.db.Exec("DELETE FROM records WHERE table_name = ? AND record_id = ?", t.name, string(id))
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.name, id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.name, id, err)
	} else if n == 0 {
		return fmt.Errorf("%s %s: %w", t.name, id, types.ErrNotFound)
	}
	if err := b.persistLocked(t.name); err != nil {
		return err
	}
	b.feed.publish(ChangeEvent{Table: t.name, Op: types.OpDelete, ID: id})
	return nil
}

// Fetch returns the records whose fields equal every filter value, newest
// first. "limit" and "offset" page the result. Filter values must be
// strings, booleans, numbers or IDs.
func (t *Table) Fetch(filter types.Filter) ([]types.Values, error) {
	query, args, err := t.buildFetch(filter)
	if err != nil {
		return nil, err
	}

	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", t.name, err)
	}
	defer rows.Close()

	out := []types.Values{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.name, err)
		}
		v, err := decodeBody(body)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// buildFetch turns a filter into SQL. Keys are applied in sorted order so
// equal filters produce equal queries.
func (t *Table) buildFetch(filter types.Filter) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("SELECT body FROM records WHERE table_name = ?")
	args := []any{t.name}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		if k != types.FilterLimit && k != types.FilterOffset {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !filterKeyPattern.MatchString(k) {
			return "", nil, fmt.Errorf("%w: key %q", types.ErrInvalidFilter, k)
		}
		arg, err := filterArg(filter[k])
		if err != nil {
			return "", nil, fmt.Errorf("%w: key %q", err, k)
		}
		if k == types.HotelField {
			sb.WriteString(" AND hotel_id = ?")
			args = append(args, fmt.Sprint(arg))
			continue
		}
		fmt.Fprintf(&sb, " AND json_extract(body, '$.%s') = ?", k)
		args = append(args, arg)
	}
	sb.WriteString(" ORDER BY created_at DESC, record_id DESC")

	limit, err := intFilter(filter, types.FilterLimit, -1)
	if err != nil {
		return "", nil, err
	}
	offset, err := intFilter(filter, types.FilterOffset, 0)
	if err != nil {
		return "", nil, err
	}
	if limit >= 0 || offset > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, offset)
	}
	return sb.String(), args, nil
}

// filterArg converts a filter value to what json_extract yields for it.
// SQLite has no boolean type, so booleans compare as 0 and 1.
func filterArg(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case types.ID:
		return string(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case int, int32, int64, float64:
		return x, nil
	}
	return nil, types.ErrInvalidFilter
}

func intFilter(filter types.Filter, key string, def int) (int, error) {
	v, ok := filter[key]
	if !ok {
		return def, nil
	}
	n, ok := v.(int)
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative int", types.ErrInvalidFilter, key)
	}
	return n, nil
}

// bodyLocked reads the stored body of id. The caller must hold b.mu.
func (t *Table) bodyLocked(id types.ID) ([]byte, error) {
	var body []byte
	err := t.backend.db.QueryRow(
		"SELECT body FROM records WHERE table_name = ? AND record_id = ?", t.name, string(id),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", t.name, id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.name, id, err)
	}
	return body, nil
}
