package convert

import (
	"fmt"
	"math"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
)

// Polynomial evaluates Coeffs[0]*x^(n-1) + Coeffs[1]*x^(n-2) + ... +
// Coeffs[n-1] over a single numeric input column, per §4.9: coefficients
// are ordered highest-power-first.
type Polynomial struct {
	Coeffs []float64
}

// NewPolynomial validates and builds a Polynomial converter.
func NewPolynomial(coeffs []float64) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, errs.ErrPolynomialNoCoeffs
	}
	cp := make([]float64, len(coeffs))
	copy(cp, coeffs)
	return &Polynomial{Coeffs: cp}, nil
}

// NewLinear builds Polynomial([slope, intercept]), the named special case
// §4.9 calls out separately.
func NewLinear(slope, intercept float64) *Polynomial {
	return &Polynomial{Coeffs: []float64{slope, intercept}}
}

// Apply evaluates the polynomial over the single input column.
func (p *Polynomial) Apply(inputs []column.Column) (column.Column, error) {
	if len(inputs) != 1 {
		return column.Column{}, fmt.Errorf("%w: polynomial takes exactly one input, got %d", errs.ErrConverterArity, len(inputs))
	}

	xs, ok := numericFloat64(inputs[0])
	if !ok {
		return column.Column{}, fmt.Errorf("%w: polynomial requires a numeric input column", errs.ErrConverterInputType)
	}

	out := make([]float64, len(xs))
	n := len(p.Coeffs)
	for i, x := range xs {
		var v float64
		for k, c := range p.Coeffs {
			v += c * math.Pow(x, float64(n-1-k))
		}
		out[i] = v
	}

	return column.Column{Kind: column.Float64, Float64: out}, nil
}
