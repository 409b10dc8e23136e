package permute

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReorder_3412(t *testing.T) {
	// S5: a plain big-endian u32 whose bytes were written to the wire in
	// 3412 order; Reorder must recover the original big-endian byte order.
	var want uint32 = 0xAABBCCDD
	var wantBytes [4]byte
	binary.BigEndian.PutUint32(wantBytes[:], want)

	// Wire order: byte3, byte4, byte1, byte2 of the original value.
	wire := []byte{wantBytes[2], wantBytes[3], wantBytes[0], wantBytes[1]}

	got := Reorder(wire, []uint8{3, 4, 1, 2})
	require.Equal(t, wantBytes[:], got)
}

func TestDisassemble_InvertsReorder(t *testing.T) {
	digits := []uint8{3, 4, 1, 2}
	assembled := []byte{0x11, 0x22, 0x33, 0x44}

	wire := Disassemble(assembled, digits)
	roundTripped := Reorder(wire, digits)
	require.Equal(t, assembled, roundTripped)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]uint8{3, 4, 1, 2}))
	require.Error(t, Validate([]uint8{1, 1, 2, 4}))
	require.Error(t, Validate([]uint8{1, 2, 3, 5}))
	require.Error(t, Validate(nil))
}
