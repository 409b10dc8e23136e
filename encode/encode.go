// Package encode implements the packet encoder (C10): the inverse of the
// fixed-length and variable-length decoders, packing a set of column
// arrays back into a CCSDS Space Packet byte stream.
package encode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/header"
)

// HeaderFields supplies the per-packet primary-header values the decoder
// never has to reconstruct on decode, since §4.10 requires the caller to
// provide them: version/type/flags/APID are constant across the packet
// run, sequence flag and count vary per packet.
type HeaderFields struct {
	Version        uint8
	Type           uint8
	SecondaryFlag  uint8
	APID           uint16
	SequenceFlags  []header.SequenceFlag
	SequenceCounts []uint16
}

func (h HeaderFields) header(pktIdx int, packetLength uint16) header.Header {
	return header.Header{
		Version:       h.Version,
		Type:          h.Type,
		SecondaryFlag: h.SecondaryFlag,
		APID:          h.APID,
		SequenceFlag:  h.SequenceFlags[pktIdx],
		SequenceCount: h.SequenceCounts[pktIdx],
		PacketLength:  packetLength,
	}
}

func fitsUint(v uint64, bitLength int) bool {
	if bitLength >= 64 {
		return true
	}
	return v < (uint64(1) << uint(bitLength))
}

func fitsInt(v int64, bitLength int) bool {
	if bitLength >= 64 {
		return true
	}
	max := int64(1)<<uint(bitLength-1) - 1
	min := -(int64(1) << uint(bitLength-1))
	return v >= min && v <= max
}

// scalarUint reads column c's pktIdx-th value as a uint64, for Uint-typed
// columns only.
func scalarUint(c column.Column, pktIdx int) (uint64, error) {
	if c.Kind != column.Uint {
		return 0, fmt.Errorf("%w: expected a uint column", errs.ErrMissingColumn)
	}
	if pktIdx >= len(c.Uint) {
		return 0, fmt.Errorf("%w: packet %d out of range", errs.ErrColumnLengthMismatch, pktIdx)
	}
	return c.Uint[pktIdx], nil
}
