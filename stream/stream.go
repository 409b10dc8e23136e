// Package stream implements the packet iterator / splitter (C2): walking a
// byte stream as a sequence of CCSDS packets, routing by APID, and
// detecting truncation.
package stream

import (
	"fmt"

	"github.com/CCSDSPy/ccsdspy/compress"
	"github.com/CCSDSPy/ccsdspy/header"
	"github.com/CCSDSPy/ccsdspy/internal/options"
)

// WarningKind classifies a non-fatal diagnostic raised while walking a
// stream (§4.11/§7: Truncation at end of stream, UnknownAPID, primary-
// header sequence-count anomalies).
type WarningKind uint8

const (
	WarnTruncation WarningKind = iota
	WarnUnknownAPID
	WarnSequenceGap
)

// Warning carries enough detail to locate the offending packet, per §7's
// user-visible behaviour requirement.
type Warning struct {
	Kind          WarningKind
	Offset        int
	APID          uint16
	SequenceCount uint16
	Message       string
}

// Options configures an Iterator. Use With* functions with New.
type Options struct {
	IncludePrimaryHeader bool
	ValidAPIDs           map[uint16]struct{}
	CheckSequenceGaps    bool
	DecompressZstd       bool
}

// Option configures an Iterator at construction time.
type Option = options.Option[*Options]

// WithIncludePrimaryHeader controls whether yielded packet slices retain
// their 6-byte primary header (default false, matching §6's
// include_primary_header config option).
func WithIncludePrimaryHeader(v bool) Option {
	return options.NoError(func(o *Options) { o.IncludePrimaryHeader = v })
}

// WithValidAPIDs constrains the splitter: APIDs outside this set raise an
// UnknownAPID warning but are still routed and counted.
func WithValidAPIDs(apids []int) Option {
	return options.NoError(func(o *Options) {
		o.ValidAPIDs = make(map[uint16]struct{}, len(apids))
		for _, a := range apids {
			o.ValidAPIDs[uint16(a)] = struct{}{}
		}
	})
}

// WithSequenceGapWarnings enables the optional sequence-count
// gap/out-of-order warning pass (SPEC_FULL.md supplement §2a).
func WithSequenceGapWarnings(v bool) Option {
	return options.NoError(func(o *Options) { o.CheckSequenceGaps = v })
}

// WithZstdDecompression inflates data as a single zstd frame before
// iteration begins, for streams a recording tool wrapped as one
// file-level compressed blob. data that does not start with a zstd
// frame magic number is left untouched.
func WithZstdDecompression(v bool) Option {
	return options.NoError(func(o *Options) { o.DecompressZstd = v })
}

// Iterator walks a byte slice as a sequence of CCSDS packets.
//
// It is single-threaded and stateful: callers must not use an Iterator
// from more than one goroutine, matching the synchronous scheduling model
// of §5.
type Iterator struct {
	data     []byte
	pos      int
	opts     Options
	warnings []Warning
	lastSeq  map[uint16]uint16
	haveSeq  map[uint16]bool
}

// New creates an Iterator over data.
func New(data []byte, opts ...Option) (*Iterator, error) {
	o := Options{}
	if err := options.Apply(&o, opts...); err != nil {
		return nil, err
	}

	if o.DecompressZstd && compress.IsZstd(data) {
		inflated, err := compress.DecompressZstd(data)
		if err != nil {
			return nil, err
		}
		data = inflated
	}

	return &Iterator{
		data:    data,
		opts:    o,
		lastSeq: make(map[uint16]uint16),
		haveSeq: make(map[uint16]bool),
	}, nil
}

// Warnings returns every non-fatal diagnostic observed so far.
func (it *Iterator) Warnings() []Warning { return it.warnings }

// Next returns the next complete packet's bytes (including the primary
// header if IncludePrimaryHeader is set) and its parsed header. ok is false
// once the stream is exhausted or truncated; truncation appends a Warning
// rather than returning an error, per §4.11.
func (it *Iterator) Next() (packet []byte, hdr header.Header, ok bool) {
	remaining := len(it.data) - it.pos
	if remaining <= 0 {
		return nil, header.Header{}, false
	}

	if remaining < header.Size {
		it.warnings = append(it.warnings, Warning{
			Kind: WarnTruncation, Offset: it.pos,
			Message: fmt.Sprintf("%d bytes remain, need %d for a primary header", remaining, header.Size),
		})
		it.pos = len(it.data)

		return nil, header.Header{}, false
	}

	h, err := header.Parse(it.data[it.pos : it.pos+header.Size])
	if err != nil {
		it.warnings = append(it.warnings, Warning{Kind: WarnTruncation, Offset: it.pos, Message: err.Error()})
		it.pos = len(it.data)

		return nil, header.Header{}, false
	}

	total := h.TotalBytes()
	if it.pos+total > len(it.data) {
		missing := it.pos + total - len(it.data)
		it.warnings = append(it.warnings, Warning{
			Kind: WarnTruncation, Offset: it.pos, APID: h.APID, SequenceCount: h.SequenceCount,
			Message: fmt.Sprintf("packet body truncated, missing %d bytes", missing),
		})
		it.pos = len(it.data)

		return nil, header.Header{}, false
	}

	start, end := it.pos, it.pos+total
	if !it.opts.IncludePrimaryHeader {
		start += header.Size
	}

	if it.opts.ValidAPIDs != nil {
		if _, known := it.opts.ValidAPIDs[h.APID]; !known {
			it.warnings = append(it.warnings, Warning{
				Kind: WarnUnknownAPID, Offset: it.pos, APID: h.APID, SequenceCount: h.SequenceCount,
				Message: fmt.Sprintf("APID %d not in valid_apids", h.APID),
			})
		}
	}

	if it.opts.CheckSequenceGaps {
		it.checkSequenceGap(h)
	}

	it.pos = end

	return it.data[start:end], h, true
}

func (it *Iterator) checkSequenceGap(h header.Header) {
	// Only unsegmented/continuation packets follow the simple +1 rule;
	// First/Last segments of a multi-packet group are exempt.
	if h.SequenceFlag != header.SequenceContinuation && h.SequenceFlag != header.SequenceUnsegmented {
		it.lastSeq[h.APID] = h.SequenceCount
		it.haveSeq[h.APID] = true
		return
	}

	if _, ok := it.haveSeq[h.APID]; ok {
		expected := (it.lastSeq[h.APID] + 1) & 0x3FFF
		if h.SequenceCount != expected {
			it.warnings = append(it.warnings, Warning{
				Kind: WarnSequenceGap, Offset: it.pos, APID: h.APID, SequenceCount: h.SequenceCount,
				Message: fmt.Sprintf("expected sequence count %d, got %d", expected, h.SequenceCount),
			})
		}
	}

	it.lastSeq[h.APID] = h.SequenceCount
	it.haveSeq[h.APID] = true
}

// Count reports the number of complete packets in data, and optionally the
// missing/extra byte counts per §4.2.
func Count(data []byte) (count int, missing int, extra int) {
	pos := 0
	for pos < len(data) {
		remaining := len(data) - pos
		if remaining < header.Size {
			extra = remaining
			return count, missing, extra
		}

		h, err := header.Parse(data[pos : pos+header.Size])
		if err != nil {
			extra = remaining
			return count, missing, extra
		}

		total := h.TotalBytes()
		if pos+total > len(data) {
			missing = pos + total - len(data)
			extra = remaining

			return count, missing, extra
		}

		count++
		pos += total
	}

	return count, missing, extra
}

// Split partitions data into per-APID byte streams (§4.2 split_by_apid). It
// walks packets only — it never parses bodies — so it works on any mixed
// stream regardless of per-APID layout.
func Split(data []byte, validAPIDs []int) (map[uint16][]byte, []Warning, error) {
	var opts []Option
	if validAPIDs != nil {
		opts = append(opts, WithValidAPIDs(validAPIDs))
	}
	opts = append(opts, WithIncludePrimaryHeader(true))

	it, err := New(data, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	out := make(map[uint16][]byte)
	for {
		pkt, h, ok := it.Next()
		if !ok {
			break
		}
		out[h.APID] = append(out[h.APID], pkt...)
	}

	return out, it.Warnings(), nil
}

// IterPacketBytes returns every complete packet's raw bytes in order.
func IterPacketBytes(data []byte, includePrimaryHeader bool) ([][]byte, []Warning) {
	it, _ := New(data, WithIncludePrimaryHeader(includePrimaryHeader))

	var out [][]byte
	for {
		pkt, _, ok := it.Next()
		if !ok {
			break
		}
		cp := make([]byte, len(pkt))
		copy(cp, pkt)
		out = append(out, cp)
	}

	return out, it.Warnings()
}

// ReadPrimaryHeaders parses every complete packet's header without copying
// body bytes.
func ReadPrimaryHeaders(data []byte) ([]header.Header, []Warning) {
	it, _ := New(data, WithIncludePrimaryHeader(true))

	var out []header.Header
	for {
		pkt, h, ok := it.Next()
		if !ok {
			break
		}
		_ = pkt
		out = append(out, h)
	}

	return out, it.Warnings()
}
