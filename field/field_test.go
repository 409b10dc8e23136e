package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestField_Validate(t *testing.T) {
	t.Run("valid scalar uint", func(t *testing.T) {
		f := Field{Name: "A", DataType: Uint, BitLength: 16, ByteOrder: BigEndian}
		require.NoError(t, f.Validate())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		f := Field{Name: "", DataType: Uint, BitLength: 16, ByteOrder: BigEndian}
		require.ErrorContains(t, f.Validate(), "name")
	})

	t.Run("zero bit length rejected", func(t *testing.T) {
		f := Field{Name: "A", DataType: Uint, BitLength: 0, ByteOrder: BigEndian}
		require.Error(t, f.Validate())
	})

	t.Run("float must be 32 or 64", func(t *testing.T) {
		f := Field{Name: "A", DataType: Float, BitLength: 48, ByteOrder: BigEndian}
		require.Error(t, f.Validate())

		f.BitLength = 32
		require.NoError(t, f.Validate())
		f.BitLength = 64
		require.NoError(t, f.Validate())
	})

	t.Run("str must be multiple of 8", func(t *testing.T) {
		f := Field{Name: "A", DataType: Str, BitLength: 13, ByteOrder: BigEndian}
		require.Error(t, f.Validate())
		f.BitLength = 24
		require.NoError(t, f.Validate())
	})

	t.Run("expand must be uint", func(t *testing.T) {
		f := Field{Name: "A", DataType: Int, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: Expand}}
		require.Error(t, f.Validate())
		f.DataType = Uint
		require.NoError(t, f.Validate())
	})

	t.Run("permutation requires digits", func(t *testing.T) {
		f := Field{Name: "A", DataType: Uint, BitLength: 32, ByteOrder: ByteOrder{Kind: Permuted}}
		require.Error(t, f.Validate())
		f.ByteOrder = Permutation(3, 4, 1, 2)
		require.NoError(t, f.Validate())
	})

	t.Run("permutation rejects out-of-range and duplicate digits", func(t *testing.T) {
		f := Field{Name: "A", DataType: Uint, BitLength: 24, ByteOrder: Permutation(9, 2, 1)}
		require.Error(t, f.Validate())

		f.ByteOrder = Permutation(1, 1, 2)
		require.Error(t, f.Validate())
	})
}

func TestArrayShape_NumElements(t *testing.T) {
	s := ArrayShape{Kind: Fixed, Dims: []int{2, 3, 4}}
	require.Equal(t, 24, s.NumElements())

	require.Equal(t, 0, ArrayShape{Kind: Expand}.NumElements())
}
