package decode

import (
	"github.com/CCSDSPy/ccsdspy/bitio"
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/field"
)

// jaggedAcc accumulates one Expand or SizedBy array field's per-packet
// element slice (or, for str/fill, a single concatenated byte blob per
// packet — array elements are never split back out of a fill/str run).
type jaggedAcc struct {
	f field.Field

	ju [][]uint64
	ji [][]int64
	jf [][]float64
	jb [][]byte
}

func newJaggedAcc(f field.Field) *jaggedAcc {
	return &jaggedAcc{f: f}
}

// decodeAt decodes count elements of the field's width starting at bitPos
// in pkt, appends the per-packet result, and returns the number of bits
// consumed.
func (a *jaggedAcc) decodeAt(pkt []byte, bitPos, count int) (int, error) {
	if count == 0 {
		a.appendEmpty()
		return 0, nil
	}

	switch a.f.DataType {
	case field.Uint:
		vals := make([]uint64, count)
		pos := bitPos
		for i := 0; i < count; i++ {
			v, err := bitio.ExtractUint(pkt, pos, a.f.BitLength, a.f.ByteOrder)
			if err != nil {
				return 0, err
			}
			vals[i] = v
			pos += a.f.BitLength
		}
		a.ju = append(a.ju, vals)
	case field.Int:
		vals := make([]int64, count)
		pos := bitPos
		for i := 0; i < count; i++ {
			v, err := bitio.ExtractInt(pkt, pos, a.f.BitLength, a.f.ByteOrder)
			if err != nil {
				return 0, err
			}
			vals[i] = v
			pos += a.f.BitLength
		}
		a.ji = append(a.ji, vals)
	case field.Float:
		vals := make([]float64, count)
		pos := bitPos
		for i := 0; i < count; i++ {
			if a.f.BitLength == 32 {
				v, err := bitio.ExtractFloat32(pkt, pos, a.f.ByteOrder)
				if err != nil {
					return 0, err
				}
				vals[i] = float64(v)
			} else {
				v, err := bitio.ExtractFloat64(pkt, pos, a.f.ByteOrder)
				if err != nil {
					return 0, err
				}
				vals[i] = v
			}
			pos += a.f.BitLength
		}
		a.jf = append(a.jf, vals)
	case field.Str, field.Fill:
		b, err := bitio.ExtractBytes(pkt, bitPos, count*a.f.BitLength)
		if err != nil {
			return 0, err
		}
		a.jb = append(a.jb, b)
	}

	return count * a.f.BitLength, nil
}

func (a *jaggedAcc) appendEmpty() {
	switch a.f.DataType {
	case field.Uint:
		a.ju = append(a.ju, []uint64{})
	case field.Int:
		a.ji = append(a.ji, []int64{})
	case field.Float:
		a.jf = append(a.jf, []float64{})
	case field.Str, field.Fill:
		a.jb = append(a.jb, []byte{})
	}
}

func (a *jaggedAcc) column() column.Column {
	switch a.f.DataType {
	case field.Uint:
		return column.Column{Kind: column.JaggedUint, JaggedUint: a.ju}
	case field.Int:
		return column.Column{Kind: column.JaggedInt, JaggedInt: a.ji}
	case field.Float:
		return column.Column{Kind: column.JaggedFloat64, JaggedFloat64: a.jf}
	case field.Str, field.Fill:
		return column.Column{Kind: column.JaggedBytes, JaggedBytes: a.jb}
	default:
		return column.Column{}
	}
}
