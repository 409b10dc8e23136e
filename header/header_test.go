package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_S1(t *testing.T) {
	// S1: APID=10, seq=0, packet_length=7, 8 body bytes.
	raw := []byte{0x00, 0x0A, 0xC0, 0x00, 0x00, 0x07}

	h, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, uint16(10), h.APID)
	require.Equal(t, uint16(0), h.SequenceCount)
	require.Equal(t, SequenceUnsegmented, h.SequenceFlag)
	require.Equal(t, uint16(7), h.PacketLength)
	require.Equal(t, 14, h.TotalBytes())
	require.Equal(t, 8, h.BodyBytes())
}

func TestParse_WrongLength(t *testing.T) {
	_, err := Parse([]byte{0x00, 0x0A, 0xC0})
	require.Error(t, err)
}

func TestParse_RoundTrip(t *testing.T) {
	h := Header{
		Version:       5,
		Type:          1,
		SecondaryFlag: 1,
		APID:          0x3FF,
		SequenceFlag:  SequenceFirst,
		SequenceCount: 0x1234 & 0x3FFF,
		PacketLength:  99,
	}

	b := h.Bytes()
	parsed, err := Parse(b[:])
	require.NoError(t, err)
	require.Equal(t, h.Version&0x07, parsed.Version)
	require.Equal(t, h.Type, parsed.Type)
	require.Equal(t, h.SecondaryFlag, parsed.SecondaryFlag)
	require.Equal(t, h.APID, parsed.APID)
	require.Equal(t, h.SequenceFlag, parsed.SequenceFlag)
	require.Equal(t, h.SequenceCount, parsed.SequenceCount)
	require.Equal(t, h.PacketLength, parsed.PacketLength)
}

func TestParseAPID_MatchesParse(t *testing.T) {
	raw := []byte{0x00, 0x0A, 0xC0, 0x00, 0x00, 0x07}
	require.Equal(t, uint16(10), ParseAPID(raw))
	require.Equal(t, uint16(7), ParsePacketLength(raw))
}
