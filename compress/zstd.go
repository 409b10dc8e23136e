// Package compress provides the optional file-level zstd wrapper a
// recorded CCSDS stream may carry: some ground-station recording tools
// compress a whole day's packet capture as one zstd blob, which must be
// inflated to plain bytes before the packet iterator can walk it.
package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var decoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd decoder: %v", err))
		}
		return d
	},
}

var encoderPool = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd encoder: %v", err))
		}
		return e
	},
}

// magic is the 4-byte zstd frame header every zstd-compressed blob starts
// with (RFC 8878 §3.1.1).
var magic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// IsZstd reports whether data begins with a zstd frame magic number.
func IsZstd(data []byte) bool {
	return len(data) >= 4 && data[0] == magic[0] && data[1] == magic[1] && data[2] == magic[2] && data[3] == magic[3]
}

// DecompressZstd inflates a zstd-compressed byte blob in full, using a
// pooled decoder to avoid the warm-up cost on repeated calls.
func DecompressZstd(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	d := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(d)

	out, err := d.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: zstd decompression failed: %w", err)
	}

	return out, nil
}

// CompressZstd compresses data with zstd, using a pooled encoder.
func CompressZstd(data []byte) ([]byte, error) {
	e := encoderPool.Get().(*zstd.Encoder)
	defer encoderPool.Put(e)

	return e.EncodeAll(data, nil), nil
}
