package decode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/arrayexp"
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/stream"
)

// Variable decodes a byte stream of VariableLength-defined packets. Unlike
// Fixed, each packet is walked independently through stream.Iterator since
// its total length is carried in its own primary header.
//
// read_subset (WithFieldSubset) is applied after decoding here rather than
// by skipping bit math, because a size-by-name or expand field's position
// depends on the runtime value of an earlier field — every field must be
// decoded to keep later offsets correct, even when its column is discarded.
func Variable(def field.Definition, data []byte, opts ...Option) (*column.Set, []stream.Warning, error) {
	if def.Kind != field.VariableLength {
		return nil, nil, fmt.Errorf("%w: Variable requires a VariableLength definition", errs.ErrInvalidDataType)
	}

	o, err := buildOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := validateSubsetNames(def.Fields, o.Only); err != nil {
		return nil, nil, err
	}

	vp, err := planVariable(def)
	if err != nil {
		return nil, nil, err
	}
	plan := vp.plan

	it, err := stream.New(data, stream.WithIncludePrimaryHeader(true))
	if err != nil {
		return nil, nil, err
	}

	sAccs := make(map[string]*fieldAcc)
	jAccs := make(map[string]*jaggedAcc)
	var fieldOrder []string // first-seen order, scalars and jagged alike
	seen := make(map[string]struct{})

	track := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			fieldOrder = append(fieldOrder, name)
		}
	}

	var hdrAccs *headerAccs
	if o.IncludePrimaryHeader {
		hdrAccs = newHeaderAccs(0)
	}

	packetIndex := 0
	for {
		pkt, hdr, ok := it.Next()
		if !ok {
			break
		}

		if hdrAccs != nil {
			hdrAccs.append(hdr)
		}

		bodyTotalBits := (len(pkt) - 6) * 8
		bitPos := 48
		scalars := make(map[string]uint64)

		prefix := plan.Prefix
		if plan.HasExpand {
			prefix = plan.Prefix[:plan.ExpandIndex]
		}

		bitPos, err = decodeSequential(prefix, pkt, bitPos, scalars, sAccs, jAccs, track)
		if err != nil {
			return nil, nil, fmt.Errorf("packet %d: %w", packetIndex, err)
		}

		if plan.HasExpand {
			ef := plan.Prefix[plan.ExpandIndex]
			if (bitPos-48)%8 != 0 {
				return nil, nil, fmt.Errorf("packet %d field %q: %w", packetIndex, ef.Name, errs.ErrAlignment)
			}
			bitsRemaining := bodyTotalBits - (bitPos - 48) - plan.SuffixTotalBits
			if ef.BitLength == 0 || bitsRemaining < 0 || bitsRemaining%ef.BitLength != 0 {
				return nil, nil, fmt.Errorf("packet %d field %q: %w", packetIndex, ef.Name, errs.ErrExpandRemainder)
			}

			count := bitsRemaining / ef.BitLength
			ja := jAccs[ef.Name]
			if ja == nil {
				ja = newJaggedAcc(ef)
				jAccs[ef.Name] = ja
			}
			track(ef.Name)

			consumed, err := ja.decodeAt(pkt, bitPos, count)
			if err != nil {
				return nil, nil, fmt.Errorf("packet %d field %q: %w", packetIndex, ef.Name, err)
			}
			bitPos += consumed
		}

		if _, err := decodeSequential(plan.Suffix, pkt, bitPos, scalars, sAccs, jAccs, track); err != nil {
			return nil, nil, fmt.Errorf("packet %d: %w", packetIndex, err)
		}

		packetIndex++
	}

	cols := column.NewSet()
	if hdrAccs != nil {
		hdrAccs.insertInto(cols)
	}

	owner := childOwner(vp.ledgers)
	for _, name := range fieldOrder {
		if !wanted(o.Only, owner, name) {
			continue
		}
		if a, ok := sAccs[name]; ok {
			cols.Set(name, a.column())
			continue
		}
		if ja, ok := jAccs[name]; ok {
			cols.Set(name, ja.column())
		}
	}

	if err := arrayexp.Collapse(wantedLedgers(o.Only, vp.ledgers), cols); err != nil {
		return nil, it.Warnings(), err
	}

	return cols, it.Warnings(), nil
}

// decodeSequential walks fields in order starting at bitPos, decoding
// scalars directly and size-by-name arrays using the referenced field's
// already-decoded value, returning the bit position after the last field.
func decodeSequential(
	fields []field.Field,
	pkt []byte,
	bitPos int,
	scalars map[string]uint64,
	sAccs map[string]*fieldAcc,
	jAccs map[string]*jaggedAcc,
	track func(string),
) (int, error) {
	for _, f := range fields {
		track(f.Name)

		if f.Shape.Kind == field.SizedBy {
			count64, ok := scalars[f.Shape.Refer]
			if !ok {
				return bitPos, fmt.Errorf("%w: field %q references %q", errs.ErrSizeByColumnMissing, f.Name, f.Shape.Refer)
			}

			ja := jAccs[f.Name]
			if ja == nil {
				ja = newJaggedAcc(f)
				jAccs[f.Name] = ja
			}

			consumed, err := ja.decodeAt(pkt, bitPos, int(count64))
			if err != nil {
				return bitPos, err
			}
			bitPos += consumed

			continue
		}

		a := sAccs[f.Name]
		if a == nil {
			a = newFieldAcc(f, 0)
			sAccs[f.Name] = a
		}

		if err := a.decodeAt(pkt, bitPos); err != nil {
			return bitPos, err
		}

		if f.DataType == field.Uint {
			scalars[f.Name] = a.u[len(a.u)-1]
		}

		bitPos += f.BitLength
	}

	return bitPos, nil
}
