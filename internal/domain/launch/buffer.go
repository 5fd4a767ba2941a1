package launch

import "sync"

// Buffer is a thread-safe ring buffer that keeps the most recent output
type Buffer struct {
	data []byte
	size int
	head int
	tail int
	full bool
	mu   sync.RWMutex
}

// NewBuffer creates a ring buffer holding up to size bytes
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = 64 * 1024
	}
	return &Buffer{
		data: make([]byte, size),
		size: size,
	}
}

// Write appends p, overwriting the oldest bytes once full
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range p {
		b.data[b.tail] = c
		b.tail = (b.tail + 1) % b.size
		if b.full {
			b.head = b.tail
		} else if b.tail == b.head {
			b.full = true
		}
	}

	return len(p), nil
}

// Len returns the number of buffered bytes
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lenLocked()
}

func (b *Buffer) lenLocked() int {
	switch {
	case b.full:
		return b.size
	case b.tail >= b.head:
		return b.tail - b.head
	default:
		return b.size - b.head + b.tail
	}
}

// Bytes returns a copy of the buffered data without consuming it
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := b.lenLocked()
	result := make([]byte, n)
	if n == 0 {
		return result
	}
	if b.head < b.tail {
		copy(result, b.data[b.head:b.tail])
		return result
	}
	// Wrapped around
	first := copy(result, b.data[b.head:])
	copy(result[first:], b.data[:b.tail])
	return result
}
