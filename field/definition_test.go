package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(i int) *int { return &i }

func TestNewDefinition_Fixed(t *testing.T) {
	fields := []Field{
		{Name: "A", DataType: Uint, BitLength: 16, ByteOrder: BigEndian},
		{Name: "B", DataType: Uint, BitLength: 16, ByteOrder: BigEndian},
		{Name: "C", DataType: Uint, BitLength: 32, ByteOrder: BigEndian},
	}

	def, err := NewDefinition(FixedLength, fields)
	require.NoError(t, err)
	require.Len(t, def.Fields, 3)

	_, _, ok := def.FieldByName("B")
	require.True(t, ok)
}

func TestNewDefinition_FixedRejectsExpand(t *testing.T) {
	fields := []Field{
		{Name: "A", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: Expand}},
	}
	_, err := NewDefinition(FixedLength, fields)
	require.Error(t, err)
}

func TestNewDefinition_VariableExpand(t *testing.T) {
	fields := []Field{
		{Name: "data", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: Expand}},
	}
	def, err := NewDefinition(VariableLength, fields)
	require.NoError(t, err)
	require.Equal(t, VariableLength, def.Kind)
}

func TestNewDefinition_VariableRejectsSecondExpand(t *testing.T) {
	fields := []Field{
		{Name: "a", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: Expand}},
		{Name: "b", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: Expand}},
	}
	_, err := NewDefinition(VariableLength, fields)
	require.Error(t, err)
}

func TestNewDefinition_SizeByNameMustBeEarlier(t *testing.T) {
	fields := []Field{
		{Name: "data", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: SizedBy, Refer: "n"}},
		{Name: "n", DataType: Uint, BitLength: 8, ByteOrder: BigEndian},
	}
	_, err := NewDefinition(VariableLength, fields)
	require.Error(t, err)

	fields = []Field{
		{Name: "n", DataType: Uint, BitLength: 8, ByteOrder: BigEndian},
		{Name: "data", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, Shape: ArrayShape{Kind: SizedBy, Refer: "n"}},
	}
	_, err = NewDefinition(VariableLength, fields)
	require.NoError(t, err)
}

func TestNewDefinition_VariableRejectsExplicitOffset(t *testing.T) {
	fields := []Field{
		{Name: "a", DataType: Uint, BitLength: 16, ByteOrder: BigEndian, BitOffset: ptr(48)},
	}
	_, err := NewDefinition(VariableLength, fields)
	require.Error(t, err)
}

func TestDefinition_Hash(t *testing.T) {
	fieldsA := []Field{
		{Name: "A", DataType: Uint, BitLength: 16, ByteOrder: BigEndian},
		{Name: "B", DataType: Int, BitLength: 8, ByteOrder: LittleEndian},
	}
	defA1, err := NewDefinition(FixedLength, fieldsA)
	require.NoError(t, err)
	defA2, err := NewDefinition(FixedLength, fieldsA)
	require.NoError(t, err)
	require.Equal(t, defA1.Hash(), defA2.Hash())

	fieldsB := []Field{
		{Name: "A", DataType: Uint, BitLength: 32, ByteOrder: BigEndian},
		{Name: "B", DataType: Int, BitLength: 8, ByteOrder: LittleEndian},
	}
	defB, err := NewDefinition(FixedLength, fieldsB)
	require.NoError(t, err)
	require.NotEqual(t, defA1.Hash(), defB.Hash())
}
