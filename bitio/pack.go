package bitio

import (
	"fmt"
	"math"

	"github.com/CCSDSPy/ccsdspy/errs"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/permute"
)

// deorderBytes inverts orderBytes: given bytes already in "assembled,
// big-endian-interpretable" order, it recovers the original file-byte
// order. Big and Little are self-inverse; Permuted uses the permutation
// engine's documented inverse.
func deorderBytes(order field.ByteOrder, assembled []byte) ([]byte, error) {
	switch order.Kind {
	case field.Big:
		return assembled, nil
	case field.Little:
		out := make([]byte, len(assembled))
		for i, b := range assembled {
			out[len(assembled)-1-i] = b
		}
		return out, nil
	case field.Permuted:
		if len(order.Digits) != len(assembled) {
			return nil, fmt.Errorf("%w: permutation length %d, file bytes %d", errs.ErrPermutationWidth, len(order.Digits), len(assembled))
		}
		return permute.Disassemble(assembled, order.Digits), nil
	default:
		return nil, errs.ErrInvalidByteOrder
	}
}

func uintToBEBytes(v uint64, n int) []byte {
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// packBits is the read-modify-write inverse of rawBits: it merges a
// bitLength-wide field value into dst at bitOffset, preserving any other
// fields' bits already written into shared bytes.
func packBits(dst []byte, bitOffset, bitLength int, order field.ByteOrder, v uint64) error {
	if bitLength > 64 {
		return fmt.Errorf("%w: bit_length %d exceeds 64 for integer packing", errs.ErrInvalidBitLength, bitLength)
	}

	byteStart, bytesInFile := byteSpan(bitOffset, bitLength)
	if byteStart < 0 || byteStart+bytesInFile > len(dst) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d available",
			errs.ErrTruncated, bytesInFile, byteStart, len(dst)-byteStart)
	}

	ordered, err := orderBytes(order, dst[byteStart:byteStart+bytesInFile])
	if err != nil {
		return err
	}

	storageBytes := storageWidth(bytesInFile)
	buf := make([]byte, storageBytes)
	copy(buf[storageBytes-bytesInFile:], ordered)
	existing := beUint(buf)

	bitStart := bitOffset % 8
	leftPad := bitStart + 8*(storageBytes-bytesInFile)
	rightShift := 8*storageBytes - leftPad - bitLength
	if rightShift < 0 {
		return fmt.Errorf("%w: bit_length %d does not fit storage width %d at offset %d",
			errs.ErrInvalidBitLength, bitLength, storageBytes*8, bitOffset)
	}

	var fieldMask uint64
	if bitLength == 64 {
		fieldMask = ^uint64(0)
	} else {
		fieldMask = (uint64(1) << uint(bitLength)) - 1
	}

	newValue := (existing &^ (fieldMask << uint(rightShift))) | ((v & fieldMask) << uint(rightShift))

	newBuf := uintToBEBytes(newValue, storageBytes)
	fileBytes, err := deorderBytes(order, newBuf[storageBytes-bytesInFile:])
	if err != nil {
		return err
	}

	copy(dst[byteStart:byteStart+bytesInFile], fileBytes)

	return nil
}

// PackUint writes an unsigned integer field of bitLength bits at bitOffset
// into dst, merging with any bits already written by other fields sharing
// the same bytes.
func PackUint(dst []byte, bitOffset, bitLength int, order field.ByteOrder, v uint64) error {
	return packBits(dst, bitOffset, bitLength, order, v)
}

// PackInt writes a signed integer field, truncating v to its two's
// complement bitLength-bit representation.
func PackInt(dst []byte, bitOffset, bitLength int, order field.ByteOrder, v int64) error {
	return packBits(dst, bitOffset, bitLength, order, uint64(v))
}

// PackFloat32 writes a 32-bit IEEE-754 float field.
func PackFloat32(dst []byte, bitOffset int, order field.ByteOrder, v float32) error {
	return packBits(dst, bitOffset, 32, order, uint64(math.Float32bits(v)))
}

// PackFloat64 writes a 64-bit IEEE-754 float field.
func PackFloat64(dst []byte, bitOffset int, order field.ByteOrder, v float64) error {
	return packBits(dst, bitOffset, 64, order, math.Float64bits(v))
}

// PackBytes writes a raw byte string (str/fill field) of bitLength bits at
// bitOffset, truncating or zero-padding src to fit.
func PackBytes(dst []byte, bitOffset, bitLength int, src []byte) error {
	nOut := (bitLength + 7) / 8

	byteStart, bytesInFile := byteSpan(bitOffset, bitLength)
	if byteStart < 0 || byteStart+bytesInFile > len(dst) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d available",
			errs.ErrTruncated, bytesInFile, byteStart, len(dst)-byteStart)
	}

	padded := make([]byte, nOut)
	copy(padded, src)

	if bitOffset%8 == 0 && bitLength%8 == 0 {
		copy(dst[byteStart:byteStart+bytesInFile], padded)
		return nil
	}

	bitPos := bitOffset
	for i := 0; i < bitLength; i++ {
		srcByte := i / 8
		srcBit := 7 - i%8
		bit := (padded[srcByte] >> uint(srcBit)) & 1

		byteIdx := bitPos / 8
		bitIdx := 7 - bitPos%8
		if bit == 1 {
			dst[byteIdx] |= 1 << uint(bitIdx)
		} else {
			dst[byteIdx] &^= 1 << uint(bitIdx)
		}

		bitPos++
	}

	return nil
}
