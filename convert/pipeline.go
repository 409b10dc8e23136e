package convert

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/errs"
)

// Binding attaches a Converter to a definition: it reads Inputs by name from
// the current column set and writes the result to Output, per §3's
// `(input_field_names, output_field_name, converter)` contract.
type Binding struct {
	Inputs []string
	Output string
	Conv   Converter
}

// Pipeline applies an ordered sequence of Bindings over a column set.
// Bindings are evaluated in insertion order; an output may overwrite one of
// its own inputs, and later bindings may read any earlier binding's output.
type Pipeline struct {
	Bindings []Binding
}

// Apply runs every binding against cols, appending (or overwriting) each
// binding's output column in place.
func (p *Pipeline) Apply(cols *column.Set) error {
	for _, b := range p.Bindings {
		inputs := make([]column.Column, len(b.Inputs))
		for i, name := range b.Inputs {
			c, ok := cols.Get(name)
			if !ok {
				return fmt.Errorf("%w: %q", errs.ErrConverterInputMissing, name)
			}
			inputs[i] = c
		}

		out, err := b.Conv.Apply(inputs)
		if err != nil {
			return fmt.Errorf("converter %q: %w", b.Output, err)
		}

		cols.Set(b.Output, out)
	}

	return nil
}
