package logging

import (
	"sync"
	"time"
)

// DefaultBufferSize bounds the in-memory log view. Older entries are dropped
// once the cap is reached.
const DefaultBufferSize = 100

// Entry is one captured log line, tagged with its severity.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Fields  string    `json:"fields,omitempty"`
}

// Buffer is a bounded, concurrency-safe ring of recent log entries. It backs
// the diagnostic log endpoint so operators can see per-item batch activity
// without tailing server output.
type Buffer struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewBuffer creates a Buffer keeping at most max entries.
func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = DefaultBufferSize
	}
	return &Buffer{max: max}
}

// Append adds an entry, evicting the oldest when the buffer is full.
func (b *Buffer) Append(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clear drops all buffered entries.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// Len returns the current number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
