// Package convert implements the converter pipeline (C9): ordered,
// many-input-to-one-output transforms applied to decoded column arrays
// (polynomial, linear, enum, datetime, stringify), plus a Binding mechanism
// for attaching them to a definition.
package convert

import (
	"github.com/CCSDSPy/ccsdspy/column"
)

// Converter is the escape hatch for user-defined transforms: anything that
// can read N parallel columns of common length and produce one new column.
// The four built-ins below (Polynomial, Enum, Datetime, Stringify) are the
// closed, spec-defined set; user converters implement the same interface.
type Converter interface {
	Apply(inputs []column.Column) (column.Column, error)
}

func numericFloat64(c column.Column) ([]float64, bool) {
	switch c.Kind {
	case column.Uint:
		out := make([]float64, len(c.Uint))
		for i, v := range c.Uint {
			out[i] = float64(v)
		}
		return out, true
	case column.Int:
		out := make([]float64, len(c.Int))
		for i, v := range c.Int {
			out[i] = float64(v)
		}
		return out, true
	case column.Float32:
		out := make([]float64, len(c.Float32))
		for i, v := range c.Float32 {
			out[i] = float64(v)
		}
		return out, true
	case column.Float64:
		return c.Float64, true
	default:
		return nil, false
	}
}

func integerInt64(c column.Column) ([]int64, bool) {
	switch c.Kind {
	case column.Uint:
		out := make([]int64, len(c.Uint))
		for i, v := range c.Uint {
			out[i] = int64(v)
		}
		return out, true
	case column.Int:
		return c.Int, true
	default:
		return nil, false
	}
}
