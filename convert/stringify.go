package convert

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
)

// Format selects the base StringifyBytes renders values in.
type Format uint8

const (
	Bin Format = iota
	Hex
	Oct
)

func (f Format) prefix() string {
	switch f {
	case Bin:
		return "0b"
	case Hex:
		return "0x"
	case Oct:
		return "0o"
	default:
		return ""
	}
}

func (f Format) base() int {
	switch f {
	case Bin:
		return 2
	case Hex:
		return 16
	case Oct:
		return 8
	default:
		return 10
	}
}

// Stringify formats integer or byte column values as bin/hex/oct text with
// the matching 0b/0x/0o prefix, per §4.9 StringifyBytes.
type Stringify struct {
	Format Format
}

// NewStringify validates the requested format.
func NewStringify(f Format) (*Stringify, error) {
	switch f {
	case Bin, Hex, Oct:
		return &Stringify{Format: f}, nil
	default:
		return nil, errs.ErrStringifyBadFormat
	}
}

func (s *Stringify) formatUint(v uint64) string {
	return s.Format.prefix() + strconv.FormatUint(v, s.Format.base())
}

func (s *Stringify) formatInt(v int64) string {
	if v < 0 {
		return "-" + s.formatUint(uint64(-v))
	}
	return s.formatUint(uint64(v))
}

func (s *Stringify) formatBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteString(s.Format.prefix())
	switch s.Format {
	case Hex:
		sb.WriteString(hex.EncodeToString(b))
	case Bin:
		for _, c := range b {
			fmt.Fprintf(&sb, "%08b", c)
		}
	case Oct:
		for _, c := range b {
			fmt.Fprintf(&sb, "%03o", c)
		}
	}
	return sb.String()
}

// Apply formats the single input column's values, preserving its shape:
// scalar in, scalar String out; jagged in, jagged String out.
func (s *Stringify) Apply(inputs []column.Column) (column.Column, error) {
	if len(inputs) != 1 {
		return column.Column{}, fmt.Errorf("%w: stringify takes exactly one input, got %d", errs.ErrConverterArity, len(inputs))
	}

	in := inputs[0]
	switch in.Kind {
	case column.Uint:
		out := make([]string, len(in.Uint))
		for i, v := range in.Uint {
			out[i] = s.formatUint(v)
		}
		return column.Column{Kind: column.String, String: out}, nil

	case column.Int:
		out := make([]string, len(in.Int))
		for i, v := range in.Int {
			out[i] = s.formatInt(v)
		}
		return column.Column{Kind: column.String, String: out}, nil

	case column.Bytes, column.JaggedBytes:
		blobs := in.Bytes
		if in.Kind == column.JaggedBytes {
			blobs = in.JaggedBytes
		}
		out := make([]string, len(blobs))
		for i, b := range blobs {
			out[i] = s.formatBytes(b)
		}
		return column.Column{Kind: column.String, String: out}, nil

	case column.JaggedUint:
		out := make([][]string, len(in.JaggedUint))
		for i, row := range in.JaggedUint {
			r := make([]string, len(row))
			for j, v := range row {
				r[j] = s.formatUint(v)
			}
			out[i] = r
		}
		return column.Column{Kind: column.JaggedString, JaggedString: out}, nil

	case column.JaggedInt:
		out := make([][]string, len(in.JaggedInt))
		for i, row := range in.JaggedInt {
			r := make([]string, len(row))
			for j, v := range row {
				r[j] = s.formatInt(v)
			}
			out[i] = r
		}
		return column.Column{Kind: column.JaggedString, JaggedString: out}, nil

	default:
		return column.Column{}, fmt.Errorf("%w: stringify does not support this column kind", errs.ErrConverterInputType)
	}
}
