// Package header implements the CCSDS Space Packet primary header codec
// (C1): parsing and serialising the fixed 6-byte prefix every packet
// carries, and computing the total on-wire packet length it encodes.
package header

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/errs"
)

// Size is the fixed byte length of a CCSDS primary header.
const Size = 6

// SequenceFlag enumerates the 2-bit sequence-flag field.
type SequenceFlag uint8

const (
	SequenceContinuation SequenceFlag = 0
	SequenceFirst        SequenceFlag = 1
	SequenceLast         SequenceFlag = 2
	SequenceUnsegmented  SequenceFlag = 3
)

// Header is the decoded form of a CCSDS primary header, MSB-first per §6.
type Header struct {
	Version       uint8
	Type          uint8
	SecondaryFlag uint8
	APID          uint16
	SequenceFlag  SequenceFlag
	SequenceCount uint16
	PacketLength  uint16 // wire value: body_bytes - 1
}

// TotalBytes returns 6 + PacketLength + 1, the full on-wire packet size
// including this header.
func (h Header) TotalBytes() int {
	return Size + int(h.PacketLength) + 1
}

// BodyBytes returns the number of bytes following the primary header.
func (h Header) BodyBytes() int {
	return int(h.PacketLength) + 1
}

// Parse decodes a primary header from exactly 6 bytes.
func Parse(b []byte) (Header, error) {
	if len(b) != Size {
		return Header{}, fmt.Errorf("%w: got %d bytes", errs.ErrBadHeaderLength, len(b))
	}

	var h Header
	h.Version = (b[0] >> 5) & 0x07
	h.Type = (b[0] >> 4) & 0x01
	h.SecondaryFlag = (b[0] >> 3) & 0x01
	h.APID = (uint16(b[0])<<8 | uint16(b[1])) & 0x07FF
	h.SequenceFlag = SequenceFlag((b[2] >> 6) & 0x03)
	h.SequenceCount = (uint16(b[2])<<8 | uint16(b[3])) & 0x3FFF
	h.PacketLength = uint16(b[4])<<8 | uint16(b[5])

	return h, nil
}

// ParseAPID reads only the APID field out of a 6-byte header slice, for the
// hot iteration path where the rest of the header is not needed yet.
func ParseAPID(b []byte) uint16 {
	return (uint16(b[0])<<8 | uint16(b[1])) & 0x07FF
}

// ParsePacketLength reads only the 16-bit packet-length field.
func ParsePacketLength(b []byte) uint16 {
	return uint16(b[4])<<8 | uint16(b[5])
}

// Bytes serialises the header back into its 6-byte wire form.
func (h Header) Bytes() [Size]byte {
	var b [Size]byte

	b[0] = (h.Version&0x07)<<5 | (h.Type&0x01)<<4 | (h.SecondaryFlag&0x01)<<3 | byte(h.APID>>8)&0x07
	b[1] = byte(h.APID)
	b[2] = byte(h.SequenceFlag&0x03)<<6 | byte(h.SequenceCount>>8)&0x3F
	b[3] = byte(h.SequenceCount)
	b[4] = byte(h.PacketLength >> 8)
	b[5] = byte(h.PacketLength)

	return b
}
