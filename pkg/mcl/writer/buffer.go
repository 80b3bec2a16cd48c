package writer

// Buffer is a growable byte buffer with explicit length and capacity,
// supporting the transactional write protocol: the writer snapshots the
// length, attempts a full serialization, and rewinds on overflow before
// growing and retrying.
//
// An optional hard limit bounds growth; a Buffer with limit 0 grows without
// bound.
type Buffer struct {
	data  []byte
	n     int
	limit int
}

const minBufferCap = 64

// NewBuffer creates a buffer with the given initial capacity and no growth
// limit.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, capacity)}
}

// NewBufferWithLimit creates a buffer with the given initial capacity that
// will never grow beyond limit bytes.
func NewBufferWithLimit(capacity, limit int) *Buffer {
	if capacity > limit {
		capacity = limit
	}
	b := NewBuffer(capacity)
	b.limit = limit
	return b
}

// Len returns the number of bytes currently in use.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Bytes returns the used portion of the buffer. The slice is valid until the
// next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

// String returns the used portion of the buffer as a string.
func (b *Buffer) String() string {
	return string(b.data[:b.n])
}

// Truncate rewinds the length to n. It panics if n is negative or beyond the
// current length; rewinding is only meaningful within already-written bytes.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.n {
		panic("writer: Buffer.Truncate out of range")
	}
	b.n = n
}

// Reset rewinds the buffer to empty without releasing capacity.
func (b *Buffer) Reset() {
	b.n = 0
}

// grow doubles the capacity, clamped to the limit. It returns false if the
// buffer is already at its limit.
func (b *Buffer) grow() bool {
	newCap := len(b.data) * 2
	if newCap < minBufferCap {
		newCap = minBufferCap
	}
	if b.limit > 0 {
		if len(b.data) >= b.limit {
			return false
		}
		if newCap > b.limit {
			newCap = b.limit
		}
	}
	data := make([]byte, newCap)
	copy(data, b.data[:b.n])
	b.data = data
	return true
}

// appendByte appends one byte within the current capacity. It returns false
// on overflow, leaving the buffer unchanged.
func (b *Buffer) appendByte(c byte) bool {
	if b.n >= len(b.data) {
		return false
	}
	b.data[b.n] = c
	b.n++
	return true
}

// appendString appends s within the current capacity. It returns false on
// overflow, leaving the length unchanged.
func (b *Buffer) appendString(s string) bool {
	if b.n+len(s) > len(b.data) {
		return false
	}
	copy(b.data[b.n:], s)
	b.n += len(s)
	return true
}
