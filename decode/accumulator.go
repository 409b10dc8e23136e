package decode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/bitio"
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/field"
)

// fieldAcc accumulates one field's decoded values, one per packet, in a
// typed slice matching its DataType — avoiding an interface{} column
// representation during decode.
type fieldAcc struct {
	f field.Field

	u   []uint64
	i   []int64
	f32 []float32
	f64 []float64
	b   [][]byte
}

func newFieldAcc(f field.Field, n int) *fieldAcc {
	a := &fieldAcc{f: f}
	switch f.DataType {
	case field.Uint:
		a.u = make([]uint64, 0, n)
	case field.Int:
		a.i = make([]int64, 0, n)
	case field.Float:
		if f.BitLength == 32 {
			a.f32 = make([]float32, 0, n)
		} else {
			a.f64 = make([]float64, 0, n)
		}
	case field.Str, field.Fill:
		a.b = make([][]byte, 0, n)
	}
	return a
}

// decodeAt extracts this field's value out of one packet's bytes at
// bitOffset and appends it to the running column.
func (a *fieldAcc) decodeAt(pkt []byte, bitOffset int) error {
	switch a.f.DataType {
	case field.Uint:
		v, err := bitio.ExtractUint(pkt, bitOffset, a.f.BitLength, a.f.ByteOrder)
		if err != nil {
			return err
		}
		a.u = append(a.u, v)
	case field.Int:
		v, err := bitio.ExtractInt(pkt, bitOffset, a.f.BitLength, a.f.ByteOrder)
		if err != nil {
			return err
		}
		a.i = append(a.i, v)
	case field.Float:
		if a.f.BitLength == 32 {
			v, err := bitio.ExtractFloat32(pkt, bitOffset, a.f.ByteOrder)
			if err != nil {
				return err
			}
			a.f32 = append(a.f32, v)
		} else {
			v, err := bitio.ExtractFloat64(pkt, bitOffset, a.f.ByteOrder)
			if err != nil {
				return err
			}
			a.f64 = append(a.f64, v)
		}
	case field.Str, field.Fill:
		v, err := bitio.ExtractBytes(pkt, bitOffset, a.f.BitLength)
		if err != nil {
			return err
		}
		a.b = append(a.b, v)
	default:
		return fmt.Errorf("field %q: unsupported data type for decode", a.f.Name)
	}

	return nil
}

func (a *fieldAcc) column() column.Column {
	switch a.f.DataType {
	case field.Uint:
		return column.Column{Kind: column.Uint, Uint: a.u}
	case field.Int:
		return column.Column{Kind: column.Int, Int: a.i}
	case field.Float:
		if a.f.BitLength == 32 {
			return column.Column{Kind: column.Float32, Float32: a.f32}
		}
		return column.Column{Kind: column.Float64, Float64: a.f64}
	case field.Str, field.Fill:
		return column.Column{Kind: column.Bytes, Bytes: a.b}
	default:
		return column.Column{}
	}
}
