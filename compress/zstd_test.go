package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated for compressibility, repeated for compressibility")

	compressed, err := CompressZstd(data)
	require.NoError(t, err)
	require.True(t, IsZstd(compressed))

	out, err := DecompressZstd(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestIsZstd_RejectsPlainData(t *testing.T) {
	require.False(t, IsZstd([]byte{0x00, 0x0A, 0xC0, 0x00}))
	require.False(t, IsZstd(nil))
}

func TestDecompressZstd_Empty(t *testing.T) {
	out, err := DecompressZstd(nil)
	require.NoError(t, err)
	require.Nil(t, out)
}
