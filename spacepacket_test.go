package spacepacket

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CCSDSPy/ccsdspy/header"
)

func packHeader(apid, seq uint16, bodyLen int) []byte {
	b := make([]byte, header.Size)
	b[0] = 0x00
	b[1] = byte(apid)
	binary.BigEndian.PutUint16(b[2:4], (3<<14)|seq)
	binary.BigEndian.PutUint16(b[4:6], uint16(bodyLen-1))
	return b
}

func TestIterPacketBytes(t *testing.T) {
	p1 := append(packHeader(1, 0, 2), []byte{0xAA, 0xBB}...)
	p2 := append(packHeader(2, 1, 3), []byte{0x01, 0x02, 0x03}...)

	data := append(append([]byte{}, p1...), p2...)

	packets, warnings, err := IterPacketBytes(data, true)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, packets, 2)
	require.Equal(t, p1, packets[0])
	require.Equal(t, p2, packets[1])
}

func TestCountPackets_Complete(t *testing.T) {
	p1 := append(packHeader(1, 0, 2), []byte{0xAA, 0xBB}...)
	res, err := CountPackets(p1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Complete)
	require.Zero(t, res.MissingBytes)
	require.Zero(t, res.ExtraBytes)
}

func TestCountPackets_TruncatedBody(t *testing.T) {
	full := append(packHeader(1, 0, 4), []byte{0xAA, 0xBB, 0xCC, 0xDD}...)
	truncated := full[:header.Size+2]

	res, err := CountPackets(truncated)
	require.NoError(t, err)
	require.Equal(t, 0, res.Complete)
	require.Equal(t, 2, res.MissingBytes)
	require.Equal(t, header.Size+2, res.ExtraBytes)
}

func TestSplitByAPID(t *testing.T) {
	p1 := append(packHeader(1, 0, 2), []byte{0xAA, 0xBB}...)
	p2 := append(packHeader(2, 0, 2), []byte{0x01, 0x02}...)
	p3 := append(packHeader(1, 1, 2), []byte{0xCC, 0xDD}...)

	data := append(append(append([]byte{}, p1...), p2...), p3...)

	byAPID, warnings, err := SplitByAPID(data, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)

	require.Equal(t, append(append([]byte{}, p1...), p3...), byAPID[1])
	require.Equal(t, p2, byAPID[2])
}

func TestSplitByAPID_UnknownAPIDWarning(t *testing.T) {
	p1 := append(packHeader(9, 0, 2), []byte{0xAA, 0xBB}...)

	byAPID, warnings, err := SplitByAPID(p1, []int{1, 2})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, byAPID[9], p1)
}

func TestReadPrimaryHeaders(t *testing.T) {
	p1 := append(packHeader(7, 3, 2), []byte{0xAA, 0xBB}...)
	p2 := append(packHeader(7, 4, 2), []byte{0xCC, 0xDD}...)

	data := append(append([]byte{}, p1...), p2...)

	cols, warnings, err := ReadPrimaryHeaders(data)
	require.NoError(t, err)
	require.Empty(t, warnings)

	apid, ok := cols.Get("CCSDS_APID")
	require.True(t, ok)
	require.Equal(t, []uint64{7, 7}, apid.Uint)

	seq, ok := cols.Get("CCSDS_SEQUENCE_COUNT")
	require.True(t, ok)
	require.Equal(t, []uint64{3, 4}, seq.Uint)
}
