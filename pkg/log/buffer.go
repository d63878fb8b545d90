package log

import (
	"fmt"
	"io"
	"sync"
)

// Buffer is a bounded [io.Writer] that holds recent log entries in memory so
// diagnostics can be flushed after the report instead of interleaving with it.
// When the capacity is exceeded, the oldest entries are dropped.
type Buffer struct {
	entries  [][]byte
	capacity int
	dropped  int
	mu       sync.Mutex
}

// NewBuffer creates a [Buffer] holding at most capacity entries.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 100 // Default capacity.
	}

	return &Buffer{
		capacity: capacity,
	}
}

// Write implements [io.Writer]. Each call stores one entry; the data is
// copied so the handler may reuse its scratch buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entry := make([]byte, len(p))
	copy(entry, p)

	if len(b.entries) == b.capacity {
		b.entries = b.entries[1:]
		b.dropped++
	}

	b.entries = append(b.entries, entry)

	return len(p), nil
}

// Len returns the current number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries)
}

// Capacity returns the maximum number of entries the buffer can hold.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Dropped returns how many entries were discarded to stay within capacity.
func (b *Buffer) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

// WriteTo flushes all buffered entries to w in chronological order and
// clears the buffer. It implements [io.WriterTo].
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	entries := b.entries
	b.entries = nil
	b.mu.Unlock()

	var total int64

	for _, entry := range entries {
		written, err := w.Write(entry)
		total += int64(written)

		if err != nil {
			return total, fmt.Errorf("write entry: %w", err)
		}
	}

	return total, nil
}
