package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CCSDSPy/ccsdspy/column"
)

func TestPolynomial_Apply(t *testing.T) {
	p, err := NewPolynomial([]float64{0.52, 0.1})
	require.NoError(t, err)

	in := column.Column{Kind: column.Uint, Uint: []uint64{0, 1, 2, 9}}
	out, err := p.Apply([]column.Column{in})
	require.NoError(t, err)
	require.Equal(t, column.Float64, out.Kind)
	require.InDelta(t, 0.1, out.Float64[0], 1e-9)
	require.InDelta(t, 0.62, out.Float64[1], 1e-9)
	require.InDelta(t, 0.52*9+0.1, out.Float64[3], 1e-9)
}

func TestLinear_IsPolynomial(t *testing.T) {
	l := NewLinear(5.2, 1.2)
	in := column.Column{Kind: column.Uint, Uint: []uint64{0, 1, 2, 3, 4}}
	out, err := l.Apply([]column.Column{in})
	require.NoError(t, err)
	for k, v := range out.Float64 {
		require.InDelta(t, 5.2*float64(k)+1.2, v, 1e-9)
	}
}

func TestEnum_S6(t *testing.T) {
	e, err := NewEnum(map[int64]string{0: "NO", 1: "YES", 2: "MAYBE"})
	require.NoError(t, err)

	in := column.Column{Kind: column.Uint, Uint: []uint64{0, 1, 2, 0, 1, 2}}
	out, err := e.Apply([]column.Column{in})
	require.NoError(t, err)
	require.Equal(t, []string{"NO", "YES", "MAYBE", "NO", "YES", "MAYBE"}, out.String)
}

func TestEnum_MissingKey(t *testing.T) {
	e, err := NewEnum(map[int64]string{0: "NO"})
	require.NoError(t, err)

	in := column.Column{Kind: column.Uint, Uint: []uint64{5}}
	_, err = e.Apply([]column.Column{in})
	require.Error(t, err)
}

func TestDatetime_Apply(t *testing.T) {
	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &Datetime{Reference: ref, Units: []Unit{Seconds}}

	in := column.Column{Kind: column.Uint, Uint: []uint64{0, 60, 3600}}
	out, err := d.Apply([]column.Column{in})
	require.NoError(t, err)
	require.Equal(t, ref, out.Time[0])
	require.Equal(t, ref.Add(time.Minute), out.Time[1])
	require.Equal(t, ref.Add(time.Hour), out.Time[2])
}

func TestStringify_Hex(t *testing.T) {
	s, err := NewStringify(Hex)
	require.NoError(t, err)

	in := column.Column{Kind: column.Uint, Uint: []uint64{255, 16}}
	out, err := s.Apply([]column.Column{in})
	require.NoError(t, err)
	require.Equal(t, []string{"0xff", "0x10"}, out.String)
}

func TestStringify_SignedBin(t *testing.T) {
	s, err := NewStringify(Bin)
	require.NoError(t, err)

	in := column.Column{Kind: column.Int, Int: []int64{-5, 5}}
	out, err := s.Apply([]column.Column{in})
	require.NoError(t, err)
	require.Equal(t, "-0b101", out.String[0])
	require.Equal(t, "0b101", out.String[1])
}

func TestStringify_PreservesJaggedness(t *testing.T) {
	s, err := NewStringify(Oct)
	require.NoError(t, err)

	in := column.Column{Kind: column.JaggedUint, JaggedUint: [][]uint64{{1, 2}, {8}}}
	out, err := s.Apply([]column.Column{in})
	require.NoError(t, err)
	require.Equal(t, column.JaggedString, out.Kind)
	require.Equal(t, []string{"0o1", "0o2"}, out.JaggedString[0])
	require.Equal(t, []string{"0o10"}, out.JaggedString[1])
}

func TestPipeline_S6(t *testing.T) {
	n := 75
	boo := make([]uint64, n)
	foo := make([]uint64, n)
	blah := make([]uint64, n)
	for k := 0; k < n; k++ {
		boo[k] = uint64(k % 3)
		foo[k] = uint64(k % 5)
		blah[k] = uint64(k % 10)
	}

	cols := column.NewSet()
	cols.Set("BOO", column.Column{Kind: column.Uint, Uint: boo})
	cols.Set("FOO", column.Column{Kind: column.Uint, Uint: foo})
	cols.Set("BLAH", column.Column{Kind: column.Uint, Uint: blah})

	enumConv, err := NewEnum(map[int64]string{0: "NO", 1: "YES", 2: "MAYBE"})
	require.NoError(t, err)

	pipe := &Pipeline{Bindings: []Binding{
		{Inputs: []string{"BOO"}, Output: "BOO_conv", Conv: enumConv},
		{Inputs: []string{"FOO"}, Output: "FOO_conv", Conv: NewLinear(5.2, 1.2)},
		{Inputs: []string{"BLAH"}, Output: "BLAH_conv", Conv: func() Converter {
			p, _ := NewPolynomial([]float64{0.52, 0.1})
			return p
		}()},
	}}

	require.NoError(t, pipe.Apply(cols))

	booConv, _ := cols.Get("BOO_conv")
	cycle := []string{"NO", "YES", "MAYBE"}
	for k := 0; k < n; k++ {
		require.Equal(t, cycle[k%3], booConv.String[k])
	}

	fooConv, _ := cols.Get("FOO_conv")
	for k := 0; k < n; k++ {
		require.InDelta(t, 5.2*float64(k%5)+1.2, fooConv.Float64[k], 1e-9)
	}

	blahConv, _ := cols.Get("BLAH_conv")
	for k := 0; k < n; k++ {
		require.InDelta(t, 0.52*float64(k%10)+0.1, blahConv.Float64[k], 1e-9)
	}
}
