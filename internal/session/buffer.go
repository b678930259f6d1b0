package session

import "github.com/kwray/tagwell/internal/tag"

// Buffer is a fixed-capacity, newest-first collection of tag records.
// Inserting at capacity evicts the oldest record in O(1); the ring is
// never re-sliced.
//
// Buffer is not safe for concurrent use. The Controller serializes all
// access behind its lock.
type Buffer struct {
	records []tag.Record // ring storage, len == capacity
	head    int          // index of the newest record
	size    int
	unique  bool
	present map[string]int // identifier -> live count in the ring
}

// NewBuffer creates an empty buffer holding at most capacity records.
// When unique is set, offers of an identifier already in the buffer are
// rejected. Panics if capacity < 1 (a zero-capacity session is a
// programming fault, not a runtime condition).
func NewBuffer(capacity int, unique bool) *Buffer {
	if capacity < 1 {
		panic("session: buffer capacity must be at least 1")
	}
	return &Buffer{
		records: make([]tag.Record, capacity),
		head:    -1,
		unique:  unique,
		present: make(map[string]int),
	}
}

// Offer inserts rec at the front, evicting the oldest record if the
// buffer is full. Returns false without mutating when uniqueness is
// enabled and rec.Identifier is already present.
func (b *Buffer) Offer(rec tag.Record) bool {
	if b.unique && b.present[rec.Identifier] > 0 {
		return false
	}

	next := (b.head + 1) % len(b.records)
	if b.size == len(b.records) {
		// next currently holds the oldest record; overwrite evicts it.
		evicted := b.records[next].Identifier
		if b.present[evicted] <= 1 {
			delete(b.present, evicted)
		} else {
			b.present[evicted]--
		}
	} else {
		b.size++
	}

	b.records[next] = rec
	b.head = next
	b.present[rec.Identifier]++
	return true
}

// Contains reports whether an identifier is in the buffer.
func (b *Buffer) Contains(identifier string) bool {
	return b.present[identifier] > 0
}

// Len returns the number of records held.
func (b *Buffer) Len() int {
	return b.size
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.head = -1
	b.size = 0
	b.present = make(map[string]int)
}

// Snapshot returns a newest-first copy of the buffer contents.
func (b *Buffer) Snapshot() []tag.Record {
	out := make([]tag.Record, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.records[(b.head-i+len(b.records))%len(b.records)]
	}
	return out
}
