package types

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
	"strings"
)

// DefaultIDKey is the identity field used by pages that do not name one.
const DefaultIDKey = "id"

// ID is the canonical string form of an entity identity key. Integer keys
// are stored in base 10 so string and integer identities share one map.
type ID string

// String returns the identity as a plain string.
func (id ID) String() string { return string(id) }

// IDFrom converts a raw identity value into an ID. Strings are used as they
// are (surrounding space trimmed), integer kinds are formatted in base 10 and
// JSON numbers are accepted when integral. Returns ErrInvalidID otherwise.
func IDFrom(v any) (ID, error) {
	switch x := v.(type) {
	case ID:
		return nonEmptyID(string(x))
	case string:
		return nonEmptyID(x)
	case int:
		return ID(strconv.Itoa(x)), nil
	case int32:
		return ID(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return ID(strconv.FormatInt(x, 10)), nil
	case uint:
		return ID(strconv.FormatUint(uint64(x), 10)), nil
	case uint32:
		return ID(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return ID(strconv.FormatUint(x, 10)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return "", ErrInvalidID
		}
		return ID(strconv.FormatInt(int64(x), 10)), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return ID(strconv.FormatInt(n, 10)), nil
		}
		return "", ErrInvalidID
	default:
		return "", ErrInvalidID
	}
}

func nonEmptyID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidID
	}
	return ID(s), nil
}

// Values maps field names to field values. It is the shape of form drafts,
// partial updates and remote payloads.
type Values map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// With returns a copy of v with every key of partial applied on top.
func (v Values) With(partial Values) Values {
	out := v.Clone()
	maps.Copy(out, partial)
	return out
}

// Entity is the capability the CRUD engine needs from a record: an identity,
// read access to named fields, and a copy-on-write shallow merge. Merge must
// not change the identity.
type Entity[E any] interface {
	EntityID() ID
	Field(key string) (any, bool)
	Merge(partial Values) E
}

// Record is a map-backed entity whose identity lives in one designated field.
// Records are immutable values; Merge returns a new Record.
type Record struct {
	idKey  string
	values Values
}

// Compile-time check: Record satisfies the engine's entity constraint.
var _ Entity[Record] = Record{}

// NewRecord builds a Record over a copy of values. An empty idKey means
// DefaultIDKey.
func NewRecord(idKey string, values Values) Record {
	if idKey == "" {
		idKey = DefaultIDKey
	}
	return Record{idKey: idKey, values: values.Clone()}
}

// EntityID returns the record identity, or "" if the identity field is
// missing or unusable.
func (r Record) EntityID() ID {
	id, err := IDFrom(r.values[r.key()])
	if err != nil {
		return ""
	}
	return id
}

// IDKey returns the name of the identity field.
func (r Record) IDKey() string { return r.key() }

// Field returns the value stored under key.
func (r Record) Field(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Values returns a copy of all fields.
func (r Record) Values() Values { return r.values.Clone() }

// Merge returns a copy with partial applied. The identity field is never
// overwritten.
func (r Record) Merge(partial Values) Record {
	out := Record{idKey: r.idKey, values: r.values.Clone()}
	for k, v := range partial {
		if k == r.key() {
			continue
		}
		out.values[k] = v
	}
	return out
}

// MarshalJSON encodes the record as its plain field map.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.values)
}

// UnmarshalJSON decodes a plain field map, keeping the record's identity key.
func (r *Record) UnmarshalJSON(data []byte) error {
	var v Values
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = NewRecord(r.idKey, v)
	return nil
}

func (r Record) key() string {
	if r.idKey == "" {
		return DefaultIDKey
	}
	return r.idKey
}
