// Package field implements the packet field model (C3): the in-memory
// representation of a packet definition used by every other component —
// ordered fields and arrays with data type, bit length, optional explicit
// bit offset, byte order, and array shape.
package field

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/permute"
)

// DataType is the closed set of scalar interpretations a field's bits may
// carry.
type DataType uint8

const (
	Uint DataType = iota
	Int
	Float
	Str
	Fill
)

func (d DataType) String() string {
	switch d {
	case Uint:
		return "uint"
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Fill:
		return "fill"
	default:
		return "unknown"
	}
}

// ByteOrderKind distinguishes the named byte orders from an arbitrary digit
// permutation.
type ByteOrderKind uint8

const (
	Big ByteOrderKind = iota
	Little
	Permuted
)

// ByteOrder is the sum type `Big | Little | Permutation(digits)` from
// DESIGN NOTES §9. Digits holds 1-based source-byte positions in assembly
// order when Kind == Permuted (e.g. "3412" -> []uint8{3,4,1,2}).
type ByteOrder struct {
	Kind   ByteOrderKind
	Digits []uint8
}

// BigEndian is the shared Big byte-order value.
var BigEndian = ByteOrder{Kind: Big}

// LittleEndian is the shared Little byte-order value.
var LittleEndian = ByteOrder{Kind: Little}

// Permutation builds a digit-permutation byte order from 1-based source
// byte positions, e.g. Permutation(3,4,1,2) for "3412".
func Permutation(digits ...uint8) ByteOrder {
	cp := make([]uint8, len(digits))
	copy(cp, digits)
	return ByteOrder{Kind: Permuted, Digits: cp}
}

// Width reports the number of bytes a permutation byte order covers.
func (b ByteOrder) Width() int {
	return len(b.Digits)
}

// ArrayShapeKind distinguishes the four forms §3 allows for array_shape.
type ArrayShapeKind uint8

const (
	Scalar ArrayShapeKind = iota // not an array
	Fixed                       // finite N-D tuple
	Expand                      // fills the body remainder
	SizedBy                     // element count from a preceding field
)

// ArrayShape is the sum type `Scalar | Fixed(shape) | Expand | SizedBy(name)`
// from DESIGN NOTES §9.
type ArrayShape struct {
	Kind  ArrayShapeKind
	Dims  []int  // valid when Kind == Fixed
	Refer string // valid when Kind == SizedBy: name of the earlier scalar field
}

// ArrayOrder controls how an N-D Fixed array's elements map onto a flat
// sequence of scalar fields during expansion (C4).
type ArrayOrder uint8

const (
	RowMajor ArrayOrder = iota
	ColumnMajor
)

// Field is a single named element of a packet definition: a scalar, or an
// array augmented with a non-Scalar ArrayShape.
type Field struct {
	Name       string
	DataType   DataType
	BitLength  int // per-element bit length for arrays
	BitOffset  *int
	ByteOrder  ByteOrder
	Shape      ArrayShape
	Order      ArrayOrder
}

// IsArray reports whether the field carries a non-scalar shape.
func (f Field) IsArray() bool { return f.Shape.Kind != Scalar }

// Validate enforces the per-field invariants of §3/§4.3.
func (f Field) Validate() error {
	if f.Name == "" {
		return errs.ErrEmptyFieldName
	}
	if f.BitLength < 1 {
		return fmt.Errorf("%w: field %q has bit_length %d", errs.ErrInvalidBitLength, f.Name, f.BitLength)
	}

	switch f.ByteOrder.Kind {
	case Big, Little:
	case Permuted:
		if err := permute.Validate(f.ByteOrder.Digits); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	default:
		return fmt.Errorf("%w: field %q", errs.ErrInvalidByteOrder, f.Name)
	}

	switch f.DataType {
	case Uint, Int:
		// no alignment constraint
	case Float:
		if f.BitLength != 32 && f.BitLength != 64 {
			return fmt.Errorf("%w: field %q is %d bits", errs.ErrInvalidFloatWidth, f.Name, f.BitLength)
		}
	case Str:
		if f.BitLength%8 != 0 {
			return fmt.Errorf("%w: field %q is %d bits", errs.ErrInvalidStrWidth, f.Name, f.BitLength)
		}
	case Fill:
		// opaque padding, no constraint
	default:
		return fmt.Errorf("%w: field %q", errs.ErrInvalidDataType, f.Name)
	}

	switch f.Shape.Kind {
	case Scalar:
	case Fixed:
		if len(f.Shape.Dims) == 0 {
			return fmt.Errorf("%w: field %q has empty fixed shape", errs.ErrInvalidArrayShape, f.Name)
		}
		for _, d := range f.Shape.Dims {
			if d <= 0 {
				return fmt.Errorf("%w: field %q has non-positive dimension", errs.ErrInvalidArrayShape, f.Name)
			}
		}
	case Expand:
		if f.DataType != Uint {
			return fmt.Errorf("%w: expand field %q must be uint", errs.ErrInvalidArrayShape, f.Name)
		}
	case SizedBy:
		if f.Shape.Refer == "" {
			return fmt.Errorf("%w: field %q has empty size-by-name reference", errs.ErrInvalidArrayShape, f.Name)
		}
	default:
		return fmt.Errorf("%w: field %q", errs.ErrInvalidArrayShape, f.Name)
	}

	return nil
}

// NumElements returns the product of a Fixed shape's dimensions.
func (s ArrayShape) NumElements() int {
	if s.Kind != Fixed {
		return 0
	}
	n := 1
	for _, d := range s.Dims {
		n *= d
	}
	return n
}
