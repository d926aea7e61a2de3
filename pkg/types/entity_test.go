package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFrom(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    ID
		wantErr error
	}{
		{name: "string", in: "amenity-1", want: "amenity-1"},
		{name: "string trimmed", in: "  7 ", want: "7"},
		{name: "int", in: 42, want: "42"},
		{name: "int64", in: int64(-3), want: "-3"},
		{name: "integral float from JSON", in: float64(12), want: "12"},
		{name: "json number", in: json.Number("99"), want: "99"},
		{name: "fractional float rejected", in: 1.5, wantErr: ErrInvalidID},
		{name: "empty string rejected", in: "", wantErr: ErrInvalidID},
		{name: "nil rejected", in: nil, wantErr: ErrInvalidID},
		{name: "bool rejected", in: true, wantErr: ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IDFrom(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordMergeKeepsIdentity(t *testing.T) {
	r := NewRecord("", Values{"id": 1, "name": "Pool", "is_active": true})

	merged := r.Merge(Values{"id": 99, "is_active": false, "category": "spa"})

	assert.Equal(t, ID("1"), merged.EntityID())
	assert.Equal(t, Values{"id": 1, "name": "Pool", "is_active": false, "category": "spa"}, merged.Values())
	// The original record is untouched.
	assert.Equal(t, true, r.Values()["is_active"])
}

func TestRecordValuesIsACopy(t *testing.T) {
	src := Values{"id": "a", "name": "Gym"}
	r := NewRecord("id", src)
	src["name"] = "changed"

	v := r.Values()
	v["name"] = "also changed"

	name, ok := r.Field("name")
	require.True(t, ok)
	assert.Equal(t, "Gym", name)
}

func TestRecordCustomIDKey(t *testing.T) {
	r := NewRecord("staff_id", Values{"staff_id": "s-1", "id": "ignored"})
	assert.Equal(t, ID("s-1"), r.EntityID())
	assert.Equal(t, "staff_id", r.IDKey())
}

func TestRecordMarshalJSON(t *testing.T) {
	r := NewRecord("", Values{"id": "x", "n": 2})
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","n":2}`, string(data))

	data, err = json.Marshal(Record{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestRecordUnmarshalJSON(t *testing.T) {
	var recs []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"a","n":2},{"id":7}]`), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, ID("a"), recs[0].EntityID())
	v, ok := recs[0].Field("n")
	assert.True(t, ok)
	assert.Equal(t, float64(2), v)
	assert.Equal(t, ID("7"), recs[1].EntityID())
}

func TestScopeStamp(t *testing.T) {
	payload := Values{"name": "Pool"}
	stamped := Scope{HotelID: "h-1"}.Stamp(payload)
	assert.Equal(t, "h-1", stamped[HotelField])
	assert.NotContains(t, payload, HotelField)

	assert.Equal(t, payload, Scope{}.Stamp(payload))
}

func TestErrorsMatchSentinels(t *testing.T) {
	cause := errors.New("connection reset")
	var err error = &RemoteError{Op: OpDelete, ID: "1", Err: cause}
	assert.ErrorIs(t, err, ErrRemote)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "remote delete 1: connection reset", err.Error())

	err = fmt.Errorf("submit: %w", &ValidationError{Fields: map[string]string{"name": "Name is required", "a": "bad"}})
	assert.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation failed: a: bad; name: Name is required", verr.Error())
}
