package convert

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
)

// Enum maps a single integer input column to strings via Values. Go's type
// system already forbids non-integer keys or non-string values at
// construction, satisfying §4.9's "constructor rejects non-integer keys or
// non-string values" by construction rather than by a runtime check.
type Enum struct {
	Values map[int64]string
}

// NewEnum validates and builds an Enum converter.
func NewEnum(values map[int64]string) (*Enum, error) {
	if len(values) == 0 {
		return nil, errs.ErrEnumBadConstruction
	}

	cp := make(map[int64]string, len(values))
	for k, v := range values {
		cp[k] = v
	}

	return &Enum{Values: cp}, nil
}

// Apply maps every value of the single input column through Values, failing
// if any value has no mapping.
func (e *Enum) Apply(inputs []column.Column) (column.Column, error) {
	if len(inputs) != 1 {
		return column.Column{}, fmt.Errorf("%w: enum takes exactly one input, got %d", errs.ErrConverterArity, len(inputs))
	}

	vals, ok := integerInt64(inputs[0])
	if !ok {
		return column.Column{}, fmt.Errorf("%w: enum requires an integer input column", errs.ErrConverterInputType)
	}

	out := make([]string, len(vals))
	for i, v := range vals {
		s, ok := e.Values[v]
		if !ok {
			return column.Column{}, fmt.Errorf("%w: %d", errs.ErrEnumMissingKey, v)
		}
		out[i] = s
	}

	return column.Column{Kind: column.String, String: out}, nil
}
