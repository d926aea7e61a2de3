package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Fields the backend maintains on every record.
const (
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// row is one record as stored in SQLite.
type row struct {
	id        types.ID
	hotelID   *string
	body      []byte
	createdAt string
	updatedAt string
}

// newRow encodes values, which must already carry the identity and both
// timestamps.
func newRow(id types.ID, values types.Values) (row, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return row{}, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	r := row{
		id:        id,
		body:      body,
		createdAt: stringField(values, fieldCreatedAt),
		updatedAt: stringField(values, fieldUpdatedAt),
	}
	if v, ok := values[types.HotelField]; ok && v != nil {
		s := fmt.Sprint(v)
		r.hotelID = &s
	}
	return r, nil
}

// decodeBody parses a stored record body.
func decodeBody(body []byte) (types.Values, error) {
	var v types.Values
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if v == nil {
		v = types.Values{}
	}
	return v, nil
}

// stamp formats t for the timestamp columns.
func stamp(t time.Time) string { return t.UTC().Format(timeLayout) }

// normalizeTime rewrites a timestamp from a JSONL file into the stored
// layout, falling back to def for anything unparseable.
func normalizeTime(v any, def string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	for _, layout := range []string{timeLayout, time.RFC3339Nano, types.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return stamp(t)
		}
	}
	return def
}

func stringField(v types.Values, key string) string {
	s, _ := v[key].(string)
	return s
}
