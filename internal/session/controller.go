// Package session holds the in-memory capture state for one scanning
// session: the bounded, optionally-unique record buffer and the capture
// gate, behind a controller that serializes every mutation.
package session

import (
	"sync"

	"github.com/kwray/tagwell/internal/tag"
)

// Options configures a capture session.
type Options struct {
	// MaxRecords bounds the session buffer. Defaults to DefaultMaxRecords.
	MaxRecords int

	// AllowDuplicates disables the per-identifier uniqueness constraint.
	AllowDuplicates bool

	// StartPaused creates the session with the capture gate closed.
	StartPaused bool
}

// DefaultMaxRecords is the session buffer bound when Options doesn't set one.
const DefaultMaxRecords = 200

// Controller is the single owner of capture state. Both input paths
// (wedge lines and notification payloads) funnel normalized candidates
// through Submit; the gate check and the dedup check-then-insert run
// under one lock, so concurrent submissions cannot double-insert an
// identifier or overrun the buffer bound.
type Controller struct {
	mu        sync.Mutex
	buf       *Buffer
	capturing bool
}

// NewController creates a capture session.
func NewController(opts Options) *Controller {
	max := opts.MaxRecords
	if max <= 0 {
		max = DefaultMaxRecords
	}
	return &Controller{
		buf:       NewBuffer(max, !opts.AllowDuplicates),
		capturing: !opts.StartPaused,
	}
}

// Submit normalizes a raw candidate from either input mode and, when the
// gate is open and the candidate is non-empty, offers it to the buffer.
// Returns whether a record was inserted. Candidates arriving while the
// gate is closed are discarded silently, as are empty and duplicate
// candidates; none of these are errors. The returned error covers only
// record-ID generation failure.
func (c *Controller) Submit(raw string, rssi *int) (inserted bool, err error) {
	identifier := tag.Normalize(raw)
	if identifier == "" {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.capturing {
		return false, nil
	}
	// The uniqueness check must see the buffer as-of this insert, so the
	// record is built inside the lock too; ULID generation is cheap.
	rec, err := tag.NewRecord(identifier, rssi)
	if err != nil {
		return false, err
	}
	return c.buf.Offer(rec), nil
}

// Pause closes the capture gate. Candidates submitted while paused are
// dropped before reaching the buffer.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capturing = false
}

// Resume opens the capture gate.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capturing = true
}

// Capturing reports whether the gate is open.
func (c *Controller) Capturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capturing
}

// Clear empties the session buffer. It works regardless of gate state.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Clear()
}

// Count returns the number of records held.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

// Snapshot returns a newest-first copy of the session buffer for
// rendering or export.
func (c *Controller) Snapshot() []tag.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Snapshot()
}
