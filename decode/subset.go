package decode

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/arrayexp"
	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
)

// validateSubsetNames checks that every name in only refers to a field the
// definition actually declares, so a typo surfaces immediately instead of
// silently decoding nothing.
func validateSubsetNames(fields []field.Field, only map[string]struct{}) error {
	if only == nil {
		return nil
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}

	for name := range only {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: %q", errs.ErrUnknownFieldName, name)
		}
	}

	return nil
}

// childOwner maps every array-expanded child field name back to the
// top-level definition field name it came from. Scalar and jagged field
// names are not in the map; a name absent from it is its own top-level
// name when checked against the caller's requested names.
func childOwner(ledgers []arrayexp.Ledger) map[string]string {
	owner := make(map[string]string)
	for _, led := range ledgers {
		for _, child := range led.ChildNames {
			owner[child] = led.ArrayName
		}
	}
	return owner
}

// wanted reports whether fieldName (an already array-expanded field, which
// may be an array child) should be decoded given a read_subset restriction.
// A nil only set means "decode everything".
func wanted(only map[string]struct{}, owner map[string]string, fieldName string) bool {
	if only == nil {
		return true
	}

	name := fieldName
	if top, ok := owner[fieldName]; ok {
		name = top
	}

	_, ok := only[name]
	return ok
}

// wantedLedgers filters ledgers down to those whose array name was
// requested, so Collapse is never asked to reassemble an array whose
// children were skipped.
func wantedLedgers(only map[string]struct{}, ledgers []arrayexp.Ledger) []arrayexp.Ledger {
	if only == nil {
		return ledgers
	}

	out := make([]arrayexp.Ledger, 0, len(ledgers))
	for _, led := range ledgers {
		if _, ok := only[led.ArrayName]; ok {
			out = append(out, led)
		}
	}

	return out
}
