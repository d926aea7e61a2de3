package pages

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Coerce converts text input to the types the page's fields expect: numbers
// to float64, booleans to bool, blank numbers to nil. Values that do not
// parse are kept as given so form validation can report them. Keys that are
// not form fields pass through.
func Coerce(p Page, values types.Values) types.Values {
	out := values.Clone()
	for k, v := range out {
		f, ok := p.Field(k)
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			continue
		}
		s = strings.TrimSpace(s)
		switch f.Kind {
		case types.FieldNumber:
			if s == "" {
				out[k] = nil
			} else if n, err := strconv.ParseFloat(s, 64); err == nil {
				out[k] = n
			}
		case types.FieldBoolean:
			if b, err := strconv.ParseBool(s); err == nil {
				out[k] = b
			}
		}
	}
	return out
}
