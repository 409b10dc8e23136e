package encode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/arrayexp"
	"github.com/CCSDSPy/ccsdspy/bitio"
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/header"
	"github.com/CCSDSPy/ccsdspy/internal/pool"
	"github.com/CCSDSPy/ccsdspy/layout"
)

// Fixed packs cols into a byte stream of uniformly-sized packets per a
// FixedLength definition, the inverse of decode.Fixed.
func Fixed(def field.Definition, hdr HeaderFields, cols *column.Set) ([]byte, error) {
	if def.Kind != field.FixedLength {
		return nil, fmt.Errorf("%w: Fixed requires a FixedLength definition", errs.ErrInvalidDataType)
	}

	expanded, ledgers, err := arrayexp.Expand(def.Fields)
	if err != nil {
		return nil, err
	}

	uncollapsed, err := arrayexp.Uncollapse(ledgers, cols)
	if err != nil {
		return nil, err
	}

	n := len(hdr.SequenceCounts)
	if len(hdr.SequenceFlags) != n {
		return nil, fmt.Errorf("%w: sequence_flags and sequence_counts length mismatch", errs.ErrColumnLengthMismatch)
	}

	sumBits := 0
	for _, f := range expanded {
		sumBits += f.BitLength
	}
	if sumBits%8 != 0 {
		return nil, fmt.Errorf("%w: body is %d bits, not a whole number of bytes", errs.ErrOffsetOverflow, sumBits)
	}

	bodyBytes := sumBits / 8
	packetTotalBytes := header.Size + bodyBytes

	layouts, err := layout.PlanFixed(expanded, packetTotalBytes*8)
	if err != nil {
		return nil, err
	}

	for _, fl := range layouts {
		if fl.Field.DataType == field.Fill {
			continue
		}
		c, ok := uncollapsed.Get(fl.Field.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrMissingColumn, fl.Field.Name)
		}
		if c.Len() != n {
			return nil, fmt.Errorf("%w: field %q has %d rows, header arrays have %d", errs.ErrColumnLengthMismatch, fl.Field.Name, c.Len(), n)
		}
	}

	buf := pool.Get()
	defer pool.Put(buf)

	out := make([]byte, 0, n*packetTotalBytes)
	for p := 0; p < n; p++ {
		buf.Reset()
		buf.ExtendOrGrow(packetTotalBytes)
		pkt := buf.Bytes()

		h := hdr.header(p, uint16(bodyBytes-1))
		hb := h.Bytes()
		copy(pkt[:header.Size], hb[:])

		for _, fl := range layouts {
			if fl.Field.DataType == field.Fill {
				continue
			}
			if err := packField(pkt, fl, uncollapsed, p); err != nil {
				return nil, fmt.Errorf("packet %d field %q: %w", p, fl.Field.Name, err)
			}
		}

		out = append(out, pkt...)
	}

	return out, nil
}

func packField(pkt []byte, fl layout.FieldLayout, cols *column.Set, pktIdx int) error {
	f := fl.Field
	c, _ := cols.Get(f.Name)

	switch f.DataType {
	case field.Uint:
		v := c.Uint[pktIdx]
		if !fitsUint(v, f.BitLength) {
			return fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
		}
		return bitio.PackUint(pkt, fl.BitOffset, f.BitLength, f.ByteOrder, v)
	case field.Int:
		v := c.Int[pktIdx]
		if !fitsInt(v, f.BitLength) {
			return fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
		}
		return bitio.PackInt(pkt, fl.BitOffset, f.BitLength, f.ByteOrder, v)
	case field.Float:
		if f.BitLength == 32 {
			return bitio.PackFloat32(pkt, fl.BitOffset, f.ByteOrder, c.Float32[pktIdx])
		}
		return bitio.PackFloat64(pkt, fl.BitOffset, f.ByteOrder, c.Float64[pktIdx])
	case field.Str:
		return bitio.PackBytes(pkt, fl.BitOffset, f.BitLength, c.Bytes[pktIdx])
	default:
		return fmt.Errorf("%w: unsupported data type for encode", errs.ErrInvalidDataType)
	}
}
