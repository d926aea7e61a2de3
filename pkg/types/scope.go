package types

// Scope is the tenant context handed to every payload transform. It replaces
// a process-wide "current hotel" value: each engine is built with its scope.
type Scope struct {
	HotelID string `json:"hotel_id" yaml:"hotel_id"`
}

// HotelField is the payload field that carries Scope.HotelID.
const HotelField = "hotel_id"

// Stamp returns a copy of payload with the scope fields set. An empty scope
// leaves the payload unchanged.
func (s Scope) Stamp(payload Values) Values {
	out := payload.Clone()
	if s.HotelID != "" {
		out[HotelField] = s.HotelID
	}
	return out
}
