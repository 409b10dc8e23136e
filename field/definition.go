package field

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/errs"
)

// Kind distinguishes fixed-length from variable-length packet definitions.
type Kind uint8

const (
	FixedLength Kind = iota
	VariableLength
)

// Definition is an ordered, immutable-after-construction packet layout: a
// sequence of fields plus the kind that governs which offset-planning and
// decoding strategy applies.
//
// Definitions are built once via NewDefinition and are safe to share across
// concurrent decode calls — decoding never mutates a Definition.
type Definition struct {
	Kind   Kind
	Fields []Field
}

// NewDefinition validates fields against the invariants of §3 and returns
// an immutable Definition.
//
//   - FixedLength: no field may carry a non-integer (Expand/SizedBy) shape.
//   - VariableLength: at most one Expand array; every SizedBy reference must
//     name a strictly earlier scalar field; no field may carry an explicit
//     bit_offset.
func NewDefinition(kind Kind, fields []Field) (Definition, error) {
	for i, f := range fields {
		if err := f.Validate(); err != nil {
			return Definition{}, fmt.Errorf("field %d: %w", i, err)
		}
	}

	switch kind {
	case FixedLength:
		if err := validateFixed(fields); err != nil {
			return Definition{}, err
		}
	case VariableLength:
		if err := validateVariable(fields); err != nil {
			return Definition{}, err
		}
	default:
		return Definition{}, fmt.Errorf("%w: unknown definition kind", errs.ErrInvalidDataType)
	}

	cp := make([]Field, len(fields))
	copy(cp, fields)

	return Definition{Kind: kind, Fields: cp}, nil
}

func validateFixed(fields []Field) error {
	for _, f := range fields {
		if f.Shape.Kind == Expand || f.Shape.Kind == SizedBy {
			return fmt.Errorf("%w: field %q", errs.ErrFixedArrayNonInt, f.Name)
		}
	}
	return nil
}

func validateVariable(fields []Field) error {
	seenNames := make(map[string]int, len(fields))
	expandCount := 0

	for i, f := range fields {
		if f.BitOffset != nil {
			return fmt.Errorf("%w: field %q", errs.ErrExplicitOffsetInVar, f.Name)
		}

		switch f.Shape.Kind {
		case Expand:
			expandCount++
			if expandCount > 1 {
				return fmt.Errorf("%w: field %q", errs.ErrMultipleExpand, f.Name)
			}
		case SizedBy:
			refIdx, ok := seenNames[f.Shape.Refer]
			if !ok || refIdx >= i {
				return fmt.Errorf("%w: field %q references %q", errs.ErrSizeByNameNotEarlier, f.Name, f.Shape.Refer)
			}
		}

		if f.Shape.Kind == Scalar {
			seenNames[f.Name] = i
		}
	}

	return nil
}

// FieldByName returns the field with the given name and its index, if any.
func (d Definition) FieldByName(name string) (Field, int, bool) {
	for i, f := range d.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}
