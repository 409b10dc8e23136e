package field

import (
	"strconv"
	"strings"

	"github.com/CCSDSPy/ccsdspy/internal/hash"
)

// Hash returns a stable content hash of a Definition's field list, used by
// the decoder to key its per-definition plan cache (expansion ledgers and
// offset layouts are pure functions of these fields, so two Definitions
// with equal Hash can share a cached plan instead of recomputing it).
func (d Definition) Hash() uint64 {
	var b strings.Builder
	b.WriteByte(byte(d.Kind))

	for _, f := range d.Fields {
		b.WriteString(f.Name)
		b.WriteByte(';')
		b.WriteByte(byte(f.DataType))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(f.BitLength))
		b.WriteByte(';')
		if f.BitOffset != nil {
			b.WriteString(strconv.Itoa(*f.BitOffset))
		}
		b.WriteByte(';')
		b.WriteByte(byte(f.ByteOrder.Kind))
		for _, d := range f.ByteOrder.Digits {
			b.WriteByte(d)
		}
		b.WriteByte(';')
		b.WriteByte(byte(f.Shape.Kind))
		for _, n := range f.Shape.Dims {
			b.WriteString(strconv.Itoa(n))
			b.WriteByte(',')
		}
		b.WriteString(f.Shape.Refer)
		b.WriteByte(';')
		b.WriteByte(byte(f.Order))
		b.WriteByte('|')
	}

	return hash.ID(b.String())
}
