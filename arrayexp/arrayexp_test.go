package arrayexp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/field"
)

func TestExpand_RowMajor(t *testing.T) {
	f := field.Field{
		Name: "grid", DataType: field.Uint, BitLength: 8, ByteOrder: field.BigEndian,
		Shape: field.ArrayShape{Kind: field.Fixed, Dims: []int{2, 2}}, Order: field.RowMajor,
	}

	expanded, ledgers, err := Expand([]field.Field{f})
	require.NoError(t, err)
	require.Len(t, ledgers, 1)
	require.Equal(t, []string{"grid[0,0]", "grid[0,1]", "grid[1,0]", "grid[1,1]"}, ledgers[0].ChildNames)
	require.Len(t, expanded, 4)
}

func TestExpandCollapse_Identity(t *testing.T) {
	// A non-jagged array field; collapsing its expanded scalar columns must
	// restore the N-D array bit-for-bit (§8 testable property).
	f := field.Field{
		Name: "vals", DataType: field.Uint, BitLength: 16, ByteOrder: field.BigEndian,
		Shape: field.ArrayShape{Kind: field.Fixed, Dims: []int{3}}, Order: field.RowMajor,
	}

	expanded, ledgers, err := Expand([]field.Field{f})
	require.NoError(t, err)
	require.Len(t, expanded, 3)

	// Simulate 2 decoded packets: packet0 -> [10,20,30], packet1 -> [11,21,31]
	cols := column.NewSet()
	cols.Set("vals[0]", column.Column{Kind: column.Uint, Uint: []uint64{10, 11}})
	cols.Set("vals[1]", column.Column{Kind: column.Uint, Uint: []uint64{20, 21}})
	cols.Set("vals[2]", column.Column{Kind: column.Uint, Uint: []uint64{30, 31}})

	require.NoError(t, Collapse(ledgers, cols))

	got, ok := cols.Get("vals")
	require.True(t, ok)
	require.Equal(t, []uint64{10, 20, 30, 11, 21, 31}, got.Uint)
	require.Equal(t, []int{3}, got.Shape)

	_, ok = cols.Get("vals[0]")
	require.False(t, ok)
}
