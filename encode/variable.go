package encode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/arrayexp"
	"github.com/CCSDSPy/ccsdspy/bitio"
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/internal/pool"
	"github.com/CCSDSPy/ccsdspy/layout"
)

// Variable packs cols into a byte stream of independently-sized packets per
// a VariableLength definition, the inverse of decode.Variable. An expand
// array's element count is its jagged column row's length for that packet;
// a size-by-name array's referenced scalar field must already equal its
// own array column's row length.
func Variable(def field.Definition, hdr HeaderFields, cols *column.Set) ([]byte, error) {
	if def.Kind != field.VariableLength {
		return nil, fmt.Errorf("%w: Variable requires a VariableLength definition", errs.ErrInvalidDataType)
	}

	expanded, ledgers, err := arrayexp.Expand(def.Fields)
	if err != nil {
		return nil, err
	}

	uncollapsed, err := arrayexp.Uncollapse(ledgers, cols)
	if err != nil {
		return nil, err
	}

	plan, err := layout.PrepareVariable(expanded)
	if err != nil {
		return nil, err
	}

	n := len(hdr.SequenceCounts)
	if len(hdr.SequenceFlags) != n {
		return nil, fmt.Errorf("%w: sequence_flags and sequence_counts length mismatch", errs.ErrColumnLengthMismatch)
	}

	buf := pool.Get()
	defer pool.Put(buf)

	var out []byte
	for p := 0; p < n; p++ {
		body, err := buildBody(buf, plan, uncollapsed, p)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", p, err)
		}

		h := hdr.header(p, uint16(len(body)-1))
		hb := h.Bytes()

		out = append(out, hb[:]...)
		out = append(out, body...)
	}

	return out, nil
}

func buildBody(buf *pool.Buffer, plan layout.VariablePlan, cols *column.Set, pktIdx int) ([]byte, error) {
	prefix := plan.Prefix
	var expandField field.Field
	if plan.HasExpand {
		prefix = plan.Prefix[:plan.ExpandIndex]
		expandField = plan.Prefix[plan.ExpandIndex]
	}

	scalars := make(map[string]uint64)

	bits, err := sumSequentialBits(prefix, cols, pktIdx, scalars)
	if err != nil {
		return nil, err
	}

	expandElems := 0
	if plan.HasExpand {
		c, ok := cols.Get(expandField.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrMissingColumn, expandField.Name)
		}
		if pktIdx >= len(c.JaggedUint) {
			return nil, fmt.Errorf("%w: packet %d out of range for %q", errs.ErrColumnLengthMismatch, pktIdx, expandField.Name)
		}
		expandElems = len(c.JaggedUint[pktIdx])
		bits += expandElems * expandField.BitLength
	}

	suffixBits, err := sumSequentialBits(plan.Suffix, cols, pktIdx, scalars)
	if err != nil {
		return nil, err
	}
	bits += suffixBits

	if bits%8 != 0 {
		return nil, fmt.Errorf("%w: body is %d bits, not a whole number of bytes", errs.ErrAlignment, bits)
	}

	buf.Reset()
	buf.ExtendOrGrow(bits / 8)
	body := buf.Bytes()
	bitPos := 0

	bitPos, err = packSequential(prefix, cols, pktIdx, body, bitPos, scalars)
	if err != nil {
		return nil, err
	}

	if plan.HasExpand {
		c, _ := cols.Get(expandField.Name)
		row := c.JaggedUint[pktIdx]
		for _, v := range row {
			if !fitsUint(v, expandField.BitLength) {
				return nil, fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
			}
			if err := bitio.PackUint(body, bitPos, expandField.BitLength, expandField.ByteOrder, v); err != nil {
				return nil, err
			}
			bitPos += expandField.BitLength
		}
	}

	if _, err := packSequential(plan.Suffix, cols, pktIdx, body, bitPos, scalars); err != nil {
		return nil, err
	}

	return body, nil
}

// sumSequentialBits computes the bit contribution of each field for one
// packet without writing anything, recording scalar values along the way so
// a later size-by-name field in the same pass can validate its count.
func sumSequentialBits(fields []field.Field, cols *column.Set, pktIdx int, scalars map[string]uint64) (int, error) {
	total := 0
	for _, f := range fields {
		if f.Shape.Kind == field.SizedBy {
			c, ok := cols.Get(f.Name)
			if !ok {
				return 0, fmt.Errorf("%w: %q", errs.ErrMissingColumn, f.Name)
			}
			count, bits, err := jaggedInfo(c, pktIdx, f)
			if err != nil {
				return 0, err
			}

			refVal, ok := scalars[f.Shape.Refer]
			if !ok {
				return 0, fmt.Errorf("%w: field %q references %q", errs.ErrMissingColumn, f.Name, f.Shape.Refer)
			}
			if refVal != uint64(count) {
				return 0, fmt.Errorf("%w: field %q declares %d, array has %d elements", errs.ErrSizeByValueMismatch, f.Shape.Refer, refVal, count)
			}

			total += bits
			continue
		}

		c, ok := cols.Get(f.Name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", errs.ErrMissingColumn, f.Name)
		}
		if f.DataType == field.Uint {
			v, err := scalarUint(c, pktIdx)
			if err != nil {
				return 0, err
			}
			scalars[f.Name] = v
		}

		total += f.BitLength
	}

	return total, nil
}

func packSequential(fields []field.Field, cols *column.Set, pktIdx int, body []byte, bitPos int, scalars map[string]uint64) (int, error) {
	for _, f := range fields {
		c, _ := cols.Get(f.Name)

		if f.Shape.Kind == field.SizedBy {
			switch f.DataType {
			case field.Uint:
				for _, v := range c.JaggedUint[pktIdx] {
					if !fitsUint(v, f.BitLength) {
						return 0, fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
					}
					if err := bitio.PackUint(body, bitPos, f.BitLength, f.ByteOrder, v); err != nil {
						return 0, err
					}
					bitPos += f.BitLength
				}
			case field.Int:
				for _, v := range c.JaggedInt[pktIdx] {
					if !fitsInt(v, f.BitLength) {
						return 0, fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
					}
					if err := bitio.PackInt(body, bitPos, f.BitLength, f.ByteOrder, v); err != nil {
						return 0, err
					}
					bitPos += f.BitLength
				}
			case field.Float:
				for _, v := range c.JaggedFloat64[pktIdx] {
					var err error
					if f.BitLength == 32 {
						err = bitio.PackFloat32(body, bitPos, f.ByteOrder, float32(v))
					} else {
						err = bitio.PackFloat64(body, bitPos, f.ByteOrder, v)
					}
					if err != nil {
						return 0, err
					}
					bitPos += f.BitLength
				}
			case field.Str, field.Fill:
				row := c.JaggedBytes[pktIdx]
				if err := bitio.PackBytes(body, bitPos, len(row)*8, row); err != nil {
					return 0, err
				}
				bitPos += len(row) * 8
			}
			continue
		}

		if err := packScalar(body, bitPos, f, c, pktIdx); err != nil {
			return 0, err
		}
		if f.DataType == field.Uint {
			scalars[f.Name] = c.Uint[pktIdx]
		}
		bitPos += f.BitLength
	}

	return bitPos, nil
}

func packScalar(body []byte, bitPos int, f field.Field, c column.Column, pktIdx int) error {
	switch f.DataType {
	case field.Uint:
		v := c.Uint[pktIdx]
		if !fitsUint(v, f.BitLength) {
			return fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
		}
		return bitio.PackUint(body, bitPos, f.BitLength, f.ByteOrder, v)
	case field.Int:
		v := c.Int[pktIdx]
		if !fitsInt(v, f.BitLength) {
			return fmt.Errorf("%w: value %d", errs.ErrValueOverflow, v)
		}
		return bitio.PackInt(body, bitPos, f.BitLength, f.ByteOrder, v)
	case field.Float:
		if f.BitLength == 32 {
			return bitio.PackFloat32(body, bitPos, f.ByteOrder, c.Float32[pktIdx])
		}
		return bitio.PackFloat64(body, bitPos, f.ByteOrder, c.Float64[pktIdx])
	case field.Str, field.Fill:
		return bitio.PackBytes(body, bitPos, f.BitLength, c.Bytes[pktIdx])
	default:
		return fmt.Errorf("%w: unsupported data type for encode", errs.ErrInvalidDataType)
	}
}

// jaggedInfo reports a size-by-name field's element count and total bit
// width for one packet. Str/Fill rows are stored as a single concatenated
// byte blob (not split per element), so their element count is derived
// from the blob's bit length instead of a slice length.
func jaggedInfo(c column.Column, pktIdx int, f field.Field) (count, bits int, err error) {
	switch c.Kind {
	case column.JaggedUint:
		n := len(c.JaggedUint[pktIdx])
		return n, n * f.BitLength, nil
	case column.JaggedInt:
		n := len(c.JaggedInt[pktIdx])
		return n, n * f.BitLength, nil
	case column.JaggedFloat64:
		n := len(c.JaggedFloat64[pktIdx])
		return n, n * f.BitLength, nil
	case column.JaggedBytes:
		bits = len(c.JaggedBytes[pktIdx]) * 8
		if f.BitLength == 0 {
			return 0, 0, fmt.Errorf("%w: field %q has zero bit_length", errs.ErrInvalidBitLength, f.Name)
		}
		return bits / f.BitLength, bits, nil
	default:
		return 0, 0, fmt.Errorf("%w: size-by-name field requires a jagged column", errs.ErrMissingColumn)
	}
}
