package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CCSDSPy/ccsdspy/compress"
)

// buildPacket assembles a minimal CCSDS packet: 6-byte header + body.
func buildPacket(apid uint16, seq uint16, body []byte) []byte {
	pktLen := uint16(len(body) - 1)
	b := make([]byte, 6+len(body))
	b[0] = byte(apid >> 8 & 0x07)
	b[1] = byte(apid)
	b[2] = byte(seq>>8) | 0xC0 // unsegmented
	b[3] = byte(seq)
	b[4] = byte(pktLen >> 8)
	b[5] = byte(pktLen)
	copy(b[6:], body)

	return b
}

func TestIterator_S1(t *testing.T) {
	raw := []byte{0x00, 0x0A, 0xC0, 0x00, 0x00, 0x07, 0x01, 0x3A, 0x02, 0x00, 0x00, 0x00, 0x27, 0x10}

	it, err := New(raw)
	require.NoError(t, err)

	pkt, h, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint16(10), h.APID)
	require.Len(t, pkt, 8)

	_, _, ok = it.Next()
	require.False(t, ok)
	require.Empty(t, it.Warnings())
}

func TestIterator_IncludePrimaryHeader(t *testing.T) {
	raw := buildPacket(5, 0, make([]byte, 4))
	it, err := New(raw, WithIncludePrimaryHeader(true))
	require.NoError(t, err)

	pkt, _, ok := it.Next()
	require.True(t, ok)
	require.Len(t, pkt, 10)
}

func TestIterator_Truncation(t *testing.T) {
	raw := buildPacket(5, 0, make([]byte, 8))
	truncated := raw[:len(raw)-3]

	it, err := New(truncated)
	require.NoError(t, err)

	_, _, ok := it.Next()
	require.False(t, ok)
	require.Len(t, it.Warnings(), 1)
	require.Equal(t, WarnTruncation, it.Warnings()[0].Kind)
}

func TestCount(t *testing.T) {
	raw := append(buildPacket(1, 0, make([]byte, 4)), buildPacket(2, 0, make([]byte, 4))...)
	count, missing, extra := Count(raw)
	require.Equal(t, 2, count)
	require.Equal(t, 0, missing)
	require.Equal(t, 0, extra)
}

func TestCount_Truncated(t *testing.T) {
	raw := buildPacket(1, 0, make([]byte, 8))
	truncated := raw[:len(raw)-2]

	count, missing, _ := Count(truncated)
	require.Equal(t, 0, count)
	require.Equal(t, 2, missing)
}

func TestSplit_IsPartition(t *testing.T) {
	p1 := buildPacket(1, 0, make([]byte, 4))
	p2 := buildPacket(2, 0, make([]byte, 4))
	p3 := buildPacket(1, 1, make([]byte, 4))

	raw := append(append(append([]byte{}, p1...), p2...), p3...)

	out, warnings, err := Split(raw, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, append(append([]byte{}, p1...), p3...), out[1])
	require.Equal(t, p2, out[2])
}

func TestSplit_UnknownAPIDWarns(t *testing.T) {
	p1 := buildPacket(1, 0, make([]byte, 4))

	_, warnings, err := Split(p1, []int{99})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, WarnUnknownAPID, warnings[0].Kind)
}

func TestReadPrimaryHeaders(t *testing.T) {
	raw := append(buildPacket(1, 0, make([]byte, 4)), buildPacket(2, 5, make([]byte, 4))...)
	headers, _ := ReadPrimaryHeaders(raw)
	require.Len(t, headers, 2)
	require.Equal(t, uint16(1), headers[0].APID)
	require.Equal(t, uint16(2), headers[1].APID)
	require.Equal(t, uint16(5), headers[1].SequenceCount)
}

func TestZstdDecompression(t *testing.T) {
	raw := append(buildPacket(1, 0, make([]byte, 4)), buildPacket(2, 5, make([]byte, 4))...)

	compressed, err := compress.CompressZstd(raw)
	require.NoError(t, err)
	require.True(t, compress.IsZstd(compressed))

	it, err := New(compressed, WithZstdDecompression(true))
	require.NoError(t, err)

	_, h1, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint16(1), h1.APID)

	_, h2, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint16(2), h2.APID)

	_, _, ok = it.Next()
	require.False(t, ok)
}

func TestZstdDecompression_PassthroughWhenNotCompressed(t *testing.T) {
	raw := buildPacket(1, 0, make([]byte, 4))

	it, err := New(raw, WithZstdDecompression(true))
	require.NoError(t, err)

	_, h, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint16(1), h.APID)
}
