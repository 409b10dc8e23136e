// Package spacepacket decodes and encodes CCSDS Space Packet telemetry
// streams: parsing the 6-byte primary header, walking a byte stream as a
// sequence of packets, and decoding/encoding packet bodies against a field
// definition into typed column arrays.
package spacepacket

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/convert"
	"github.com/CCSDSPy/ccsdspy/decode"
	"github.com/CCSDSPy/ccsdspy/encode"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/stream"
)

// Definition is the packet field model used by every decode/encode call.
type Definition = field.Definition

// Field is a single named field of a Definition.
type Field = field.Field

// HeaderFields supplies the per-packet primary-header values an encode
// call cannot derive from the column data alone.
type HeaderFields = encode.HeaderFields

// Warning is a non-fatal diagnostic raised while walking a stream.
type Warning = stream.Warning

// Option configures a decode call (field subset, primary-header columns).
type Option = decode.Option

// WithIncludePrimaryHeader requests the 7 primary-header pseudo-columns be
// included in decode output alongside the body fields.
func WithIncludePrimaryHeader(v bool) Option { return decode.WithIncludePrimaryHeader(v) }

// WithFieldSubset restricts decode output to the named fields.
func WithFieldSubset(names ...string) Option { return decode.WithFieldSubset(names...) }

// NewFixedDefinition builds a fixed-length packet definition.
func NewFixedDefinition(fields []Field) (Definition, error) {
	return field.NewDefinition(field.FixedLength, fields)
}

// NewVariableDefinition builds a variable-length packet definition.
func NewVariableDefinition(fields []Field) (Definition, error) {
	return field.NewDefinition(field.VariableLength, fields)
}

// DecodeFixed decodes a stream of uniformly-sized packets sharing one
// APID against a fixed-length definition.
func DecodeFixed(def Definition, data []byte, opts ...Option) (*column.Set, []Warning, error) {
	return decode.Fixed(def, data, opts...)
}

// DecodeVariable decodes a stream of independently-sized packets sharing
// one APID against a variable-length definition.
func DecodeVariable(def Definition, data []byte, opts ...Option) (*column.Set, []Warning, error) {
	return decode.Variable(def, data, opts...)
}

// EncodeFixed packs columns into a byte stream of uniformly-sized packets,
// the inverse of DecodeFixed.
func EncodeFixed(def Definition, hdr HeaderFields, cols *column.Set) ([]byte, error) {
	return encode.Fixed(def, hdr, cols)
}

// EncodeVariable packs columns into a byte stream of independently-sized
// packets, the inverse of DecodeVariable.
func EncodeVariable(def Definition, hdr HeaderFields, cols *column.Set) ([]byte, error) {
	return encode.Variable(def, hdr, cols)
}

// IterPacketBytes walks data as a sequence of complete packets, returning
// each packet's raw bytes (with the primary header included when
// includePrimaryHeader is set) and the warnings raised along the way.
func IterPacketBytes(data []byte, includePrimaryHeader bool) ([][]byte, []Warning, error) {
	packets, warnings := stream.IterPacketBytes(data, includePrimaryHeader)
	return packets, warnings, nil
}

// CountResult is CountPackets' return value: the number of complete
// packets, and the byte counts of any fragmentary tail.
type CountResult struct {
	Complete     int
	MissingBytes int // non-zero only if the last header was read but its body is incomplete
	ExtraBytes   int // bytes after the last complete packet: 0, a fragmentary header, or a truncated body
}

// CountPackets walks data and reports how many complete packets it holds,
// plus the size of any trailing fragment.
func CountPackets(data []byte) (CountResult, error) {
	count, missing, extra := stream.Count(data)
	return CountResult{Complete: count, MissingBytes: missing, ExtraBytes: extra}, nil
}

// SplitByAPID partitions data into per-APID byte buffers, preserving each
// packet's bytes (including its primary header) and per-APID packet order.
// validAPIDs, when non-empty, restricts which APIDs are considered known;
// packets outside it are still recorded and raise an UnknownAPID warning.
func SplitByAPID(data []byte, validAPIDs []int) (map[uint16][]byte, []Warning, error) {
	return stream.Split(data, validAPIDs)
}

// ReadPrimaryHeaders parses every complete packet's primary header in data
// without interpreting the body, returning the 7 header fields as columns.
func ReadPrimaryHeaders(data []byte) (*column.Set, []Warning, error) {
	headers, warnings := stream.ReadPrimaryHeaders(data)

	var version, secFlag, pktType, seqFlag []uint64
	var apid, seqCount, pktLen []uint64

	for _, hdr := range headers {
		version = append(version, uint64(hdr.Version))
		pktType = append(pktType, uint64(hdr.Type))
		secFlag = append(secFlag, uint64(hdr.SecondaryFlag))
		apid = append(apid, uint64(hdr.APID))
		seqFlag = append(seqFlag, uint64(hdr.SequenceFlag))
		seqCount = append(seqCount, uint64(hdr.SequenceCount))
		pktLen = append(pktLen, uint64(hdr.PacketLength))
	}

	cols := column.NewSet()
	cols.Set("CCSDS_VERSION_NUMBER", column.Column{Kind: column.Uint, Uint: version})
	cols.Set("CCSDS_SECONDARY_FLAG", column.Column{Kind: column.Uint, Uint: secFlag})
	cols.Set("CCSDS_PACKET_TYPE", column.Column{Kind: column.Uint, Uint: pktType})
	cols.Set("CCSDS_APID", column.Column{Kind: column.Uint, Uint: apid})
	cols.Set("CCSDS_SEQUENCE_FLAG", column.Column{Kind: column.Uint, Uint: seqFlag})
	cols.Set("CCSDS_SEQUENCE_COUNT", column.Column{Kind: column.Uint, Uint: seqCount})
	cols.Set("CCSDS_PACKET_LENGTH", column.Column{Kind: column.Uint, Uint: pktLen})

	return cols, warnings, nil
}

// AddConverter appends a Binding that applies conv to the named input
// columns and writes its output under outputName to pipeline (creating the
// pipeline if nil) and returns it, the escape hatch for deriving
// engineering-unit columns from decoded raw fields.
func AddConverter(pipeline *convert.Pipeline, inputs []string, outputName string, conv convert.Converter) *convert.Pipeline {
	if pipeline == nil {
		pipeline = &convert.Pipeline{}
	}
	pipeline.Bindings = append(pipeline.Bindings, convert.Binding{
		Inputs: inputs,
		Output: outputName,
		Conv:   conv,
	})
	return pipeline
}

// ApplyConverters runs pipeline's bindings over cols in order, writing
// each binding's output column back into cols.
func ApplyConverters(pipeline *convert.Pipeline, cols *column.Set) error {
	if pipeline == nil {
		return nil
	}
	if err := pipeline.Apply(cols); err != nil {
		return fmt.Errorf("apply converters: %w", err)
	}
	return nil
}
