package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CCSDSPy/ccsdspy/field"
)

func TestExtract_S1(t *testing.T) {
	// S1 body: u16 A, u16 B, u32 C
	body := []byte{0x01, 0x3A, 0x02, 0x00, 0x00, 0x00, 0x27, 0x10}

	a, err := ExtractUint(body, 0, 16, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint64(314), a)

	b, err := ExtractUint(body, 16, 16, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint64(512), b)

	c, err := ExtractUint(body, 32, 32, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint64(10000), c)
}

func TestExtract_S2_SubByteFields(t *testing.T) {
	// S2: u3, i5, i12, i12 over body bytes 5B 00 CF FA.
	body := []byte{0x5B, 0x00, 0xCF, 0xFA}

	u3, err := ExtractUint(body, 0, 3, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint64(2), u3)

	i5, err := ExtractInt(body, 3, 5, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, int64(-5), i5)

	i12a, err := ExtractInt(body, 8, 12, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, int64(12), i12a)

	i12b, err := ExtractInt(body, 20, 12, field.BigEndian)
	require.NoError(t, err)
	require.Equal(t, int64(-6), i12b)
}

func TestExtract_Float(t *testing.T) {
	body := []byte{0x40, 0x49, 0x0f, 0xdb} // 3.14159274 as float32 BE
	v, err := ExtractFloat32(body, 0, field.BigEndian)
	require.NoError(t, err)
	require.InDelta(t, 3.14159274, v, 1e-6)
}

func TestExtract_LittleEndian(t *testing.T) {
	body := []byte{0x10, 0x27} // 0x2710 = 10000 little-endian
	v, err := ExtractUint(body, 0, 16, field.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint64(10000), v)
}

func TestExtract_Permutation_S5(t *testing.T) {
	// value 0xAABBCCDD written with digit order 3412.
	wire := []byte{0xCC, 0xDD, 0xAA, 0xBB}
	v, err := ExtractUint(wire, 0, 32, field.Permutation(3, 4, 1, 2))
	require.NoError(t, err)
	require.Equal(t, uint64(0xAABBCCDD), v)
}

func TestExtractBytes_Aligned(t *testing.T) {
	body := []byte{0x41, 0x42, 0x43, 0x00}
	out, err := ExtractBytes(body, 0, 24)
	require.NoError(t, err)
	require.Equal(t, []byte{0x41, 0x42, 0x43}, out)
}

func TestExtract_Truncated(t *testing.T) {
	body := []byte{0x01}
	_, err := ExtractUint(body, 0, 32, field.BigEndian)
	require.Error(t, err)
}
