// Package errs defines the sentinel errors returned across the spacepacket
// module. Call sites wrap these with fmt.Errorf("%w: detail", errs.ErrXxx)
// so callers can still match with errors.Is against the taxonomy.
package errs

import "errors"

// Header errors (C1 / §7 HeaderError).
var (
	ErrBadHeaderLength = errors.New("primary header must be exactly 6 bytes")
)

// Stream / iterator errors (C2 / §7 TruncationError, UnknownAPID).
var (
	ErrTruncated  = errors.New("stream truncated mid-packet")
	ErrUnknownAPID = errors.New("packet APID not in valid_apids")
)

// Field model / definition errors (C3 / §7 DefinitionError).
var (
	ErrEmptyFieldName       = errors.New("field name must not be empty")
	ErrInvalidBitLength     = errors.New("bit_length must be >= 1")
	ErrInvalidDataType      = errors.New("data_type is not a recognized type")
	ErrInvalidByteOrder     = errors.New("byte_order is neither a known word nor a valid digit permutation")
	ErrInvalidFloatWidth    = errors.New("float fields must be 32 or 64 bits wide")
	ErrInvalidStrWidth      = errors.New("str fields must be a multiple of 8 bits wide")
	ErrInvalidArrayShape    = errors.New("array_shape is malformed")
	ErrMultipleExpand       = errors.New("at most one expand array is allowed per definition")
	ErrSizeByNameNotEarlier = errors.New("size-by-name array must reference a strictly earlier scalar field")
	ErrExplicitOffsetInVar  = errors.New("variable-length definitions may not declare an explicit bit_offset")
	ErrFixedArrayNonInt     = errors.New("fixed-length definitions may not contain non-integer array shapes")
	ErrPermutationWidth     = errors.New("permutation length must equal the field's file-byte-count")
)

// Offset planner errors (C5 / §7 LayoutError).
var (
	ErrDefinitionMismatch = errors.New("implicit packing does not exhaust the packet body")
	ErrOffsetOverflow     = errors.New("field offset exceeds the packet length")
	ErrAlignment          = errors.New("expanding field must be byte-aligned")
)

// Converter errors (C9 / §7 ConversionError).
var (
	ErrEnumMissingKey        = errors.New("enum converter has no mapping for value")
	ErrEnumBadConstruction   = errors.New("enum converter map must have integer keys and string values")
	ErrUnitMismatch          = errors.New("datetime converter unit count does not match input column count")
	ErrStringifyBadFormat    = errors.New("stringify format must be one of bin, hex, oct")
	ErrPolynomialNoCoeffs    = errors.New("polynomial converter requires at least one coefficient")
	ErrConverterArity        = errors.New("converter was bound to the wrong number of input columns")
	ErrConverterInputMissing = errors.New("converter binding references a column that does not exist")
	ErrConverterInputType    = errors.New("converter input column is not a supported type for this converter")
)

// Decoder errors (C6/C7 / §7 DecodeError).
var (
	ErrSizeByColumnMissing = errors.New("size-by-name array references a column that has not been decoded yet")
	ErrExpandRemainder     = errors.New("expand field's remaining bits are not a whole multiple of the element bit length")
	ErrUnknownFieldName    = errors.New("field subset names a field the definition does not contain")
)

// Encoder errors (C10 / §7 EncodingError).
var (
	ErrColumnLengthMismatch = errors.New("column arrays do not share a common length")
	ErrValueOverflow        = errors.New("value does not fit in the declared bit width")
	ErrMissingColumn        = errors.New("encoder is missing a required column")
	ErrSizeByValueMismatch  = errors.New("size-by-name field's scalar value does not match its array column's element count")
)
