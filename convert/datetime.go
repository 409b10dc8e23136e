package convert

import (
	"fmt"
	"time"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
)

// Unit is one of the seven duration units §4.9 allows a Datetime converter
// to combine with a reference time.
type Unit uint8

const (
	Days Unit = iota
	Hours
	Minutes
	Seconds
	Milliseconds
	Microseconds
	Nanoseconds
)

// Duration converts a raw numeric offset v into a time.Duration in this
// unit.
func (u Unit) Duration(v float64) time.Duration {
	switch u {
	case Days:
		return time.Duration(v * float64(24*time.Hour))
	case Hours:
		return time.Duration(v * float64(time.Hour))
	case Minutes:
		return time.Duration(v * float64(time.Minute))
	case Seconds:
		return time.Duration(v * float64(time.Second))
	case Milliseconds:
		return time.Duration(v * float64(time.Millisecond))
	case Microseconds:
		return time.Duration(v * float64(time.Microsecond))
	case Nanoseconds:
		return time.Duration(v)
	default:
		return 0
	}
}

// Datetime reconstructs a timestamp column from Reference plus one offset
// column per Unit in Units, in the same time zone as Reference.
type Datetime struct {
	Reference time.Time
	Units     []Unit
}

// Apply sums each row's per-column offsets onto Reference.
func (d *Datetime) Apply(inputs []column.Column) (column.Column, error) {
	if len(inputs) != len(d.Units) {
		return column.Column{}, fmt.Errorf("%w: %d units, %d input columns", errs.ErrUnitMismatch, len(d.Units), len(inputs))
	}
	if len(inputs) == 0 {
		return column.Column{Kind: column.Time}, nil
	}

	cols := make([][]float64, len(inputs))
	n := -1
	for i, in := range inputs {
		vals, ok := numericFloat64(in)
		if !ok {
			return column.Column{}, fmt.Errorf("%w: datetime requires numeric input columns", errs.ErrConverterInputType)
		}
		if n == -1 {
			n = len(vals)
		} else if len(vals) != n {
			return column.Column{}, fmt.Errorf("%w: input columns have mismatched lengths", errs.ErrConverterArity)
		}
		cols[i] = vals
	}

	out := make([]time.Time, n)
	for row := 0; row < n; row++ {
		t := d.Reference
		for j, unit := range d.Units {
			t = t.Add(unit.Duration(cols[j][row]))
		}
		out[row] = t
	}

	return column.Column{Kind: column.Time, Time: out}, nil
}
