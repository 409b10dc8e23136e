// Package permute implements the digit byte-order permutation engine (C8):
// rearranging the bytes of an on-wire field according to an arbitrary
// digit permutation such as "3412" or "78563412".
//
// A permutation string of length P lists, in order, the 1-based source byte
// position that supplies each assembled (big-endian, MSB-first) output byte.
// "3412" means: the big-endian value's byte 1 comes from wire position 3,
// byte 2 from wire position 4, byte 3 from wire position 1, byte 4 from wire
// position 2 — i.e. to assemble the value, read byte 3, then 4, then 1,
// then 2 off the wire.
package permute

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/errs"
)

// Validate checks that digits is a permutation of 1..len(digits).
func Validate(digits []uint8) error {
	n := len(digits)
	if n == 0 {
		return fmt.Errorf("%w: empty permutation", errs.ErrInvalidByteOrder)
	}

	seen := make([]bool, n+1)
	for _, d := range digits {
		if int(d) < 1 || int(d) > n || seen[d] {
			return fmt.Errorf("%w: %v is not a permutation of 1..%d", errs.ErrInvalidByteOrder, digits, n)
		}
		seen[d] = true
	}

	return nil
}

// Reorder assembles the big-endian, MSB-first byte sequence of a value from
// its on-wire bytes, given a digit permutation of the same length as wire.
//
// wire[i] holds the byte at 1-based wire position i+1. The result has the
// same length as wire and digits.
func Reorder(wire []byte, digits []uint8) []byte {
	p := len(digits)
	rev := make([]uint8, p)
	for i, d := range digits {
		rev[p-1-i] = d
	}

	out := make([]byte, p)
	for k := 0; k < p; k++ {
		idx := int(rev[k]) - 1
		srcPos := p - 1 - idx
		out[k] = wire[srcPos]
	}

	return out
}

// Disassemble is the inverse of Reorder: given the assembled (big-endian,
// MSB-first) bytes of a value and a digit permutation, it produces the
// on-wire byte sequence that Reorder would recover back to assembled.
func Disassemble(assembled []byte, digits []uint8) []byte {
	p := len(digits)
	rev := make([]uint8, p)
	for i, d := range digits {
		rev[p-1-i] = d
	}

	wire := make([]byte, p)
	for k := 0; k < p; k++ {
		idx := int(rev[k]) - 1
		srcPos := p - 1 - idx
		wire[srcPos] = assembled[k]
	}

	return wire
}
