// Package pool provides a reusable byte-buffer pool for the encoder's
// per-packet working buffer, so repeated encode calls do not churn the
// allocator.
package pool

import "sync"

const (
	// DefaultSize is the initial capacity handed out for a fresh buffer.
	DefaultSize = 1024 * 16
	// MaxThreshold is the largest buffer the pool will retain; anything
	// bigger is discarded on Put to avoid pinning a one-off large encode's
	// memory for the lifetime of the process.
	MaxThreshold = 1024 * 1024 * 4
)

// Buffer is a growable byte slice with capacity-aware growth, mirroring the
// shape the encoder needs: reset per packet, extend to the packet's size,
// write into it by index, and copy the bytes out before the next reset.
type Buffer struct {
	B []byte
}

// New creates a Buffer with the given starting capacity.
func New(size int) *Buffer {
	return &Buffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.B }

// Reset empties the buffer but keeps the backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Len returns the number of bytes currently in the buffer.
func (b *Buffer) Len() int { return len(b.B) }

// Grow ensures at least n more bytes of spare capacity, reallocating and
// copying if necessary.
func (b *Buffer) Grow(n int) {
	if cap(b.B)-len(b.B) >= n {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// ExtendOrGrow extends the buffer's length by n bytes, growing the backing
// array first if needed. The new bytes are zeroed.
func (b *Buffer) ExtendOrGrow(n int) {
	b.Grow(n)
	start := len(b.B)
	b.B = b.B[:start+n]
	clear(b.B[start : start+n])
}

// SetLength truncates or extends the buffer's reported length within its
// existing capacity. Panics if n exceeds capacity.
func (b *Buffer) SetLength(n int) {
	if n < 0 || n > cap(b.B) {
		panic("pool: SetLength out of range")
	}
	b.B = b.B[:n]
}

var defaultPool = sync.Pool{
	New: func() any { return New(DefaultSize) },
}

// Get retrieves a Buffer from the default pool.
func Get() *Buffer {
	buf, _ := defaultPool.Get().(*Buffer)
	return buf
}

// Put returns a Buffer to the default pool for reuse. Oversized buffers are
// dropped instead of retained.
func Put(b *Buffer) {
	if b == nil {
		return
	}
	if cap(b.B) > MaxThreshold {
		return
	}
	b.Reset()
	defaultPool.Put(b)
}
