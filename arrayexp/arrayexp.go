// Package arrayexp implements array expansion and collapse (C4): turning a
// fixed-shape N-D array field into per-element scalar fields for decoding,
// and later reassembling the decoded scalar columns back into N-D arrays.
//
// Jagged arrays (Expand or SizedBy shapes) skip expansion entirely — they
// are decoded directly as jagged columns by the variable-length decoder.
package arrayexp

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/field"
)

// Ledger records how one Fixed-shape array field was expanded into scalar
// child fields, so Collapse can scatter decoded child columns back into a
// single N-D array and know where to reinsert it.
type Ledger struct {
	ArrayName  string
	Shape      []int
	DataType   field.DataType
	ChildNames []string // in row-major index order, whatever the field's Order
}

// Expand walks fields in order, replacing every Fixed-shape array with its
// flattened scalar children and recording a Ledger for each. Scalars and
// jagged (Expand/SizedBy) fields pass through unchanged.
func Expand(fields []field.Field) ([]field.Field, []Ledger, error) {
	expanded := make([]field.Field, 0, len(fields))
	var ledgers []Ledger

	for _, f := range fields {
		if f.Shape.Kind != field.Fixed {
			expanded = append(expanded, f)
			continue
		}

		children, names, err := expandOne(f)
		if err != nil {
			return nil, nil, err
		}

		expanded = append(expanded, children...)
		ledgers = append(ledgers, Ledger{
			ArrayName:  f.Name,
			Shape:      append([]int(nil), f.Shape.Dims...),
			DataType:   f.DataType,
			ChildNames: names,
		})
	}

	return expanded, ledgers, nil
}

func expandOne(f field.Field) ([]field.Field, []string, error) {
	n := f.Shape.NumElements()
	children := make([]field.Field, 0, n)
	names := make([]string, 0, n)

	indices := enumerateIndices(f.Shape.Dims, f.Order)
	for linear, idx := range indices {
		name := childName(f.Name, idx)

		var off *int
		if f.BitOffset != nil {
			v := *f.BitOffset + linear*f.BitLength
			off = &v
		}

		children = append(children, field.Field{
			Name:      name,
			DataType:  f.DataType,
			BitLength: f.BitLength,
			BitOffset: off,
			ByteOrder: f.ByteOrder,
		})
	}

	// Children are laid out in f.Order, but the ledger lists them row-major
	// so Collapse builds the (N_packets, *shape) row-major composite.
	for _, idx := range enumerateIndices(f.Shape.Dims, field.RowMajor) {
		names = append(names, childName(f.Name, idx))
	}

	return children, names, nil
}

func childName(base string, idx []int) string {
	s := base + "["
	for i, v := range idx {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(v)
	}
	return s + "]"
}

// enumerateIndices produces every N-D index combination for dims, in
// row-major or column-major flattening order.
func enumerateIndices(dims []int, order field.ArrayOrder) [][]int {
	n := 1
	for _, d := range dims {
		n *= d
	}

	out := make([][]int, 0, n)
	idx := make([]int, len(dims))

	advance := func() bool {
		if order == field.ColumnMajor {
			for i := 0; i < len(dims); i++ {
				idx[i]++
				if idx[i] < dims[i] {
					return true
				}
				idx[i] = 0
			}
			return false
		}

		for i := len(dims) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < dims[i] {
				return true
			}
			idx[i] = 0
		}
		return false
	}

	for i := 0; i < n; i++ {
		cp := append([]int(nil), idx...)
		out = append(out, cp)
		if i != n-1 {
			advance()
		}
	}

	return out
}

// Collapse reassembles every Ledger's scalar child columns back into a
// single N-D array column, deletes the children, and reinserts the
// composite column at the position of the earliest child.
func Collapse(ledgers []Ledger, cols *column.Set) error {
	for _, led := range ledgers {
		if err := collapseOne(led, cols); err != nil {
			return fmt.Errorf("collapsing array %q: %w", led.ArrayName, err)
		}
	}
	return nil
}

func collapseOne(led Ledger, cols *column.Set) error {
	if len(led.ChildNames) == 0 {
		return nil
	}

	earliestPos := -1
	for _, name := range led.ChildNames {
		if pos := cols.IndexOf(name); pos >= 0 && (earliestPos == -1 || pos < earliestPos) {
			earliestPos = pos
		}
	}

	var composite column.Column
	var npkts int

	switch led.DataType {
	case field.Uint:
		composite.Kind = column.Uint
		for _, name := range led.ChildNames {
			c, ok := cols.Get(name)
			if !ok {
				return fmt.Errorf("missing child column %q", name)
			}
			npkts = len(c.Uint)
			composite.Uint = append(composite.Uint, c.Uint...)
		}
	case field.Int:
		composite.Kind = column.Int
		for _, name := range led.ChildNames {
			c, ok := cols.Get(name)
			if !ok {
				return fmt.Errorf("missing child column %q", name)
			}
			npkts = len(c.Int)
			composite.Int = append(composite.Int, c.Int...)
		}
	case field.Float:
		if led.Shape != nil { // width determined per-field; both float widths land in Float64
		}
		composite.Kind = column.Float64
		for _, name := range led.ChildNames {
			c, ok := cols.Get(name)
			if !ok {
				return fmt.Errorf("missing child column %q", name)
			}
			switch c.Kind {
			case column.Float64:
				npkts = len(c.Float64)
				composite.Float64 = append(composite.Float64, c.Float64...)
			case column.Float32:
				npkts = len(c.Float32)
				for _, v := range c.Float32 {
					composite.Float64 = append(composite.Float64, float64(v))
				}
			}
		}
	case field.Str, field.Fill:
		composite.Kind = column.Bytes
		for _, name := range led.ChildNames {
			c, ok := cols.Get(name)
			if !ok {
				return fmt.Errorf("missing child column %q", name)
			}
			npkts = len(c.Bytes)
			composite.Bytes = append(composite.Bytes, c.Bytes...)
		}
	}

	// The flat slices above were appended per-child (column-of-children
	// order); reorder into (N_packets, *shape) row-major layout.
	composite = reshapePerPacket(composite, led, npkts)
	composite.Shape = led.Shape

	for _, name := range led.ChildNames {
		cols.Delete(name)
	}

	if earliestPos < 0 {
		earliestPos = cols.Len()
	}
	cols.InsertAt(earliestPos, led.ArrayName, composite)

	return nil
}

// Uncollapse is the encoder-side inverse of Collapse: given a column set
// holding composite (N_packets, *shape) arrays, it returns a new set where
// each composite is replaced by its flattened per-element scalar child
// columns, ready for the offset-planned bit packer. The input set is left
// untouched.
func Uncollapse(ledgers []Ledger, cols *column.Set) (*column.Set, error) {
	out := column.NewSet()
	skip := make(map[string]struct{}, len(ledgers))
	for _, led := range ledgers {
		skip[led.ArrayName] = struct{}{}
	}

	for _, name := range cols.Names() {
		if _, ok := skip[name]; ok {
			continue
		}
		c, _ := cols.Get(name)
		out.Set(name, c)
	}

	for _, led := range ledgers {
		composite, ok := cols.Get(led.ArrayName)
		if !ok {
			return nil, fmt.Errorf("missing composite array column %q", led.ArrayName)
		}
		if err := uncollapseOne(led, composite, out); err != nil {
			return nil, fmt.Errorf("uncollapsing array %q: %w", led.ArrayName, err)
		}
	}

	return out, nil
}

func uncollapseOne(led Ledger, composite column.Column, out *column.Set) error {
	nElems := len(led.ChildNames)
	if nElems == 0 {
		return nil
	}

	switch composite.Kind {
	case column.Uint:
		npkts := len(composite.Uint) / nElems
		for elem, name := range led.ChildNames {
			vals := make([]uint64, npkts)
			for pkt := 0; pkt < npkts; pkt++ {
				vals[pkt] = composite.Uint[pkt*nElems+elem]
			}
			out.Set(name, column.Column{Kind: column.Uint, Uint: vals})
		}
	case column.Int:
		npkts := len(composite.Int) / nElems
		for elem, name := range led.ChildNames {
			vals := make([]int64, npkts)
			for pkt := 0; pkt < npkts; pkt++ {
				vals[pkt] = composite.Int[pkt*nElems+elem]
			}
			out.Set(name, column.Column{Kind: column.Int, Int: vals})
		}
	case column.Float64:
		npkts := len(composite.Float64) / nElems
		for elem, name := range led.ChildNames {
			vals := make([]float64, npkts)
			for pkt := 0; pkt < npkts; pkt++ {
				vals[pkt] = composite.Float64[pkt*nElems+elem]
			}
			out.Set(name, column.Column{Kind: column.Float64, Float64: vals})
		}
	case column.Bytes:
		npkts := len(composite.Bytes) / nElems
		for elem, name := range led.ChildNames {
			vals := make([][]byte, npkts)
			for pkt := 0; pkt < npkts; pkt++ {
				vals[pkt] = composite.Bytes[pkt*nElems+elem]
			}
			out.Set(name, column.Column{Kind: column.Bytes, Bytes: vals})
		}
	}

	return nil
}

// reshapePerPacket transposes the per-child flat arrays (laid out as
// [child0_allPackets, child1_allPackets, ...]) into per-packet element
// order ([packet0_allElements, packet1_allElements, ...]), matching the
// (N_packets, *shape) row-major contract of §3.
func reshapePerPacket(c column.Column, led Ledger, npkts int) column.Column {
	nElems := len(led.ChildNames)
	if npkts == 0 || nElems == 0 {
		return c
	}

	switch c.Kind {
	case column.Uint:
		out := make([]uint64, npkts*nElems)
		for elem := 0; elem < nElems; elem++ {
			for pkt := 0; pkt < npkts; pkt++ {
				out[pkt*nElems+elem] = c.Uint[elem*npkts+pkt]
			}
		}
		c.Uint = out
	case column.Int:
		out := make([]int64, npkts*nElems)
		for elem := 0; elem < nElems; elem++ {
			for pkt := 0; pkt < npkts; pkt++ {
				out[pkt*nElems+elem] = c.Int[elem*npkts+pkt]
			}
		}
		c.Int = out
	case column.Float64:
		out := make([]float64, npkts*nElems)
		for elem := 0; elem < nElems; elem++ {
			for pkt := 0; pkt < npkts; pkt++ {
				out[pkt*nElems+elem] = c.Float64[elem*npkts+pkt]
			}
		}
		c.Float64 = out
	case column.Bytes:
		out := make([][]byte, npkts*nElems)
		for elem := 0; elem < nElems; elem++ {
			for pkt := 0; pkt < npkts; pkt++ {
				out[pkt*nElems+elem] = c.Bytes[elem*npkts+pkt]
			}
		}
		c.Bytes = out
	}

	return c
}
