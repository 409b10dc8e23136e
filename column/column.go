// Package column implements the typed column outputs the rest of the
// decoder produces: a mapping from field name to a homogeneous array of
// per-packet values (§3 Column outputs), represented as the tagged union
// DESIGN NOTES §9 calls for instead of a heterogeneous dictionary.
package column

import "time"

// Kind tags which field of a Column holds the live data.
type Kind uint8

const (
	Uint Kind = iota
	Int
	Float32
	Float64
	Bytes         // one fixed-width []byte per packet (str/fill fields)
	JaggedUint    // expand / size-by-name arrays of uint elements
	JaggedInt     // size-by-name arrays of int elements
	JaggedFloat64 // size-by-name arrays of float elements
	JaggedBytes   // size-by-name arrays of str/fill elements
	String        // converter output: enum / stringify
	JaggedString  // converter output: stringify of a jagged input
	Time          // converter output: datetime reconstruction
)

// Column is a single decoded or converted output array. Shape, when
// non-nil, records the per-packet N-D shape of a collapsed Fixed array
// (§4.4); the flat Uint/Int/Float* slice then has length N_packets *
// product(Shape), row-major over (N_packets, *Shape).
type Column struct {
	Kind  Kind
	Shape []int

	Uint    []uint64
	Int     []int64
	Float32 []float32
	Float64 []float64
	Bytes   [][]byte

	JaggedUint    [][]uint64
	JaggedInt     [][]int64
	JaggedFloat64 [][]float64
	JaggedBytes   [][]byte

	String       []string
	JaggedString [][]string
	Time         []time.Time
}

// Len returns the number of packets (or collapsed-array leading dimension
// entries) represented by the column.
func (c Column) Len() int {
	if len(c.Shape) > 0 {
		elems := 1
		for _, d := range c.Shape {
			elems *= d
		}
		flat := c
		flat.Shape = nil
		return flat.Len() / elems
	}

	switch c.Kind {
	case Uint:
		return len(c.Uint)
	case Int:
		return len(c.Int)
	case Float32:
		return len(c.Float32)
	case Float64:
		return len(c.Float64)
	case Bytes:
		return len(c.Bytes)
	case JaggedUint:
		return len(c.JaggedUint)
	case JaggedInt:
		return len(c.JaggedInt)
	case JaggedFloat64:
		return len(c.JaggedFloat64)
	case JaggedBytes:
		return len(c.JaggedBytes)
	case String:
		return len(c.String)
	case JaggedString:
		return len(c.JaggedString)
	case Time:
		return len(c.Time)
	default:
		return 0
	}
}

// Set is an insertion-ordered name -> Column map, matching the definition
// field order contract of §5 ("output column order equals definition
// order") while still allowing converters and array collapse to delete and
// reinsert entries at a specific position.
type Set struct {
	names []string
	cols  map[string]Column
}

// NewSet creates an empty, ordered column set.
func NewSet() *Set {
	return &Set{cols: make(map[string]Column)}
}

// Get looks up a column by name.
func (s *Set) Get(name string) (Column, bool) {
	c, ok := s.cols[name]
	return c, ok
}

// Set appends (or overwrites in place) a named column.
func (s *Set) Set(name string, c Column) {
	if _, exists := s.cols[name]; !exists {
		s.names = append(s.names, name)
	}
	s.cols[name] = c
}

// InsertAt inserts a new named column at position pos in the iteration
// order, shifting later entries back. Used by array collapse (C4) to
// reinsert a composite column at its earliest child's position.
func (s *Set) InsertAt(pos int, name string, c Column) {
	if _, exists := s.cols[name]; exists {
		s.cols[name] = c
		return
	}

	if pos < 0 {
		pos = 0
	}
	if pos > len(s.names) {
		pos = len(s.names)
	}

	s.names = append(s.names, "")
	copy(s.names[pos+1:], s.names[pos:])
	s.names[pos] = name
	s.cols[name] = c
}

// Delete removes a column by name, returning its former position (or -1 if
// absent).
func (s *Set) Delete(name string) int {
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			delete(s.cols, name)
			return i
		}
	}
	return -1
}

// IndexOf returns the current position of name in iteration order, or -1.
func (s *Set) IndexOf(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Names returns the columns in insertion/definition order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of columns in the set.
func (s *Set) Len() int { return len(s.names) }

// Map materializes the set as a plain map for callers that don't need
// ordering (e.g. the public top-level API).
func (s *Set) Map() map[string]Column {
	out := make(map[string]Column, len(s.cols))
	for k, v := range s.cols {
		out[k] = v
	}
	return out
}
