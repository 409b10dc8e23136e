// Package layout implements the offset planner (C5): for a field list,
// compute the bit offset of every field under the implicit-packing,
// explicit-override, and backtrack policy rules of spec §4.5.
package layout

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
)

// FieldLayout pairs a (possibly array-expanded, scalar) field with its
// planned starting bit offset within the packet.
type FieldLayout struct {
	Field     field.Field
	BitOffset int
}

// PlanFixed computes bit offsets for every field of a fixed-length
// definition's already-array-expanded scalar field list, given the total
// bit width of one packet (header + body).
//
// Implicit packing anchors the declared body to the packet tail when every
// field has an implicit offset; otherwise offsets start at bit 0 and the
// primary header occupies the first 48 bits explicitly, per §4.5.
func PlanFixed(fields []field.Field, packetTotalBits int) ([]FieldLayout, error) {
	allImplicit := true
	sumBits := 0
	for _, f := range fields {
		if f.BitOffset != nil {
			allImplicit = false
		}
		sumBits += f.BitLength
	}

	counter := 0
	if allImplicit {
		counter = packetTotalBits - sumBits
	}

	out := make([]FieldLayout, len(fields))
	for i, f := range fields {
		if f.BitOffset == nil {
			out[i] = FieldLayout{Field: f, BitOffset: counter}
			counter += f.BitLength
			continue
		}

		b := *f.BitOffset
		if b < counter {
			// Backtrack: explicit offset overlaps already-placed fields.
			// Treated as a definition bug the caller must diagnose, not a
			// rejection, since overlapping explicit offsets are sometimes
			// used deliberately to alias two fields onto the same bits.
			if b+f.BitLength > counter {
				counter = b + f.BitLength
			}
		} else {
			counter = b + f.BitLength
		}

		out[i] = FieldLayout{Field: f, BitOffset: b}
	}

	if allImplicit {
		if counter != packetTotalBits {
			return nil, fmt.Errorf("%w: implicit fields cover %d bits, packet is %d bits", errs.ErrDefinitionMismatch, counter, packetTotalBits)
		}
	} else if counter > packetTotalBits {
		return nil, fmt.Errorf("%w: fields extend to bit %d, packet is %d bits", errs.ErrOffsetOverflow, counter, packetTotalBits)
	}

	return out, nil
}

// VariablePlan splits an already-array-expanded variable-length field list
// into the portion before (and including) the single Expand field, if any,
// and the trailing fields after it. The trailing fields' bit lengths are
// summed once into SuffixTotalBits; the variable-length decoder (C7)
// subtracts that sum from the body's remaining bits to size the Expand
// field, then decodes the trailing fields in order right after it.
type VariablePlan struct {
	Prefix          []field.Field // fields up to and including Expand, in order
	HasExpand       bool
	ExpandIndex     int // index into Prefix of the Expand field, if HasExpand
	Suffix          []field.Field
	SuffixTotalBits int // sum of Suffix field bit lengths (fixed, array-expanded)
}

// PrepareVariable splits fields around the (at most one) Expand field and
// sums the trailing fixed fields' bit widths.
func PrepareVariable(fields []field.Field) (VariablePlan, error) {
	var plan VariablePlan

	expandAt := -1
	for i, f := range fields {
		if f.Shape.Kind == field.Expand {
			expandAt = i
			break
		}
	}

	if expandAt == -1 {
		plan.Prefix = fields
		return plan, nil
	}

	plan.HasExpand = true
	plan.Prefix = fields[:expandAt+1]
	plan.ExpandIndex = expandAt
	plan.Suffix = fields[expandAt+1:]

	for _, f := range plan.Suffix {
		if f.Shape.Kind == field.Expand {
			return plan, fmt.Errorf("%w: only one expand field is allowed", errs.ErrMultipleExpand)
		}
		plan.SuffixTotalBits += f.BitLength
	}

	return plan, nil
}
