// Package decode implements the fixed-length (C6) and variable-length (C7)
// columnar packet decoders: walking a byte slab of same-APID packets and
// producing one typed column per declared field.
package decode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/arrayexp"
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/header"
	"github.com/CCSDSPy/ccsdspy/layout"
	"github.com/CCSDSPy/ccsdspy/stream"
)

// Fixed decodes a byte slab of uniformly-sized packets against a
// FixedLength definition. Packet size is taken from the first packet's own
// primary header and assumed constant for the rest of the slab, per §4.6 —
// a trailing partial packet is not decoded and is reported as a
// WarnTruncation Warning.
func Fixed(def field.Definition, data []byte, opts ...Option) (*column.Set, []stream.Warning, error) {
	if def.Kind != field.FixedLength {
		return nil, nil, fmt.Errorf("%w: Fixed requires a FixedLength definition", errs.ErrInvalidDataType)
	}

	o, err := buildOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := validateSubsetNames(def.Fields, o.Only); err != nil {
		return nil, nil, err
	}

	cols := column.NewSet()
	if len(data) < header.Size {
		return cols, nil, nil
	}

	first, err := header.Parse(data[:header.Size])
	if err != nil {
		return nil, nil, err
	}

	packetTotalBytes := first.TotalBytes()
	if packetTotalBytes <= 0 {
		return nil, nil, fmt.Errorf("%w: packet total bytes must be positive", errs.ErrBadHeaderLength)
	}

	numPackets := len(data) / packetTotalBytes

	var warnings []stream.Warning
	if leftover := len(data) - numPackets*packetTotalBytes; leftover > 0 {
		warnings = append(warnings, stream.Warning{
			Kind:    stream.WarnTruncation,
			Offset:  numPackets * packetTotalBytes,
			Message: fmt.Sprintf("%d trailing bytes do not form a complete %d-byte packet", leftover, packetTotalBytes),
		})
	}

	plan, err := planFixed(def, packetTotalBytes*8)
	if err != nil {
		return nil, nil, err
	}

	owner := childOwner(plan.ledgers)

	accs := make([]*fieldAcc, 0, len(plan.layouts))
	used := make([]layout.FieldLayout, 0, len(plan.layouts))
	for _, fl := range plan.layouts {
		if fl.Field.DataType == field.Fill {
			continue
		}
		if !wanted(o.Only, owner, fl.Field.Name) {
			continue
		}
		used = append(used, fl)
		accs = append(accs, newFieldAcc(fl.Field, numPackets))
	}

	var hdrAccs *headerAccs
	if o.IncludePrimaryHeader {
		hdrAccs = newHeaderAccs(numPackets)
	}

	for p := 0; p < numPackets; p++ {
		pkt := data[p*packetTotalBytes : (p+1)*packetTotalBytes]

		if hdrAccs != nil {
			h := first
			if p > 0 {
				h, err = header.Parse(pkt[:header.Size])
				if err != nil {
					return nil, warnings, fmt.Errorf("packet %d: %w", p, err)
				}
			}
			hdrAccs.append(h)
		}

		for i, fl := range used {
			if err := accs[i].decodeAt(pkt, fl.BitOffset); err != nil {
				return nil, warnings, fmt.Errorf("packet %d field %q: %w", p, fl.Field.Name, err)
			}
		}
	}

	if hdrAccs != nil {
		hdrAccs.insertInto(cols)
	}
	for i, fl := range used {
		cols.Set(fl.Field.Name, accs[i].column())
	}

	if err := arrayexp.Collapse(wantedLedgers(o.Only, plan.ledgers), cols); err != nil {
		return nil, warnings, err
	}

	return cols, warnings, nil
}
