// Package wedge assembles keystroke events from a keyboard-emulating
// ("wedge") reader into discrete scan lines. The reader types each tag as
// a burst of characters terminated by Enter; this package turns that
// stream back into lines for the capture session.
package wedge

// EventKind classifies a single key event from the wedge device.
type EventKind int

const (
	// KeyRune is a printable character key.
	KeyRune EventKind = iota
	// KeyDelete removes the last buffered character.
	KeyDelete
	// KeyEnter commits the buffered line.
	KeyEnter
	// KeyIgnored covers modifier and function keys; they never touch the buffer.
	KeyIgnored
)

// Event is a single key event.
type Event struct {
	Kind EventKind
	Rune rune // set only for KeyRune
}

// Rune builds a printable-character event.
func Rune(r rune) Event { return Event{Kind: KeyRune, Rune: r} }

// Delete builds a delete event.
func Delete() Event { return Event{Kind: KeyDelete} }

// Enter builds a commit event.
func Enter() Event { return Event{Kind: KeyEnter} }

// Assembler accumulates key events into an in-progress line.
//
// The assembler knows nothing about the capture gate: it always
// accumulates, and every Enter commits. Whether a committed line is kept
// is the session controller's decision, so pausing capture preserves a
// half-typed line but loses any line whose Enter arrives while paused.
//
// Assembler is not safe for concurrent use; wedge events are delivered
// serially by the connection collaborator.
type Assembler struct {
	buf []rune
}

// Handle applies one key event. When the event commits a line, Handle
// returns the line (possibly empty) and committed=true, and the buffer is
// reset. For all other events committed is false.
func (a *Assembler) Handle(ev Event) (line string, committed bool) {
	switch ev.Kind {
	case KeyRune:
		a.buf = append(a.buf, ev.Rune)
	case KeyDelete:
		if len(a.buf) > 0 {
			a.buf = a.buf[:len(a.buf)-1]
		}
	case KeyEnter:
		line = string(a.buf)
		a.buf = a.buf[:0]
		return line, true
	}
	return "", false
}

// Pending returns the in-progress (uncommitted) line.
func (a *Assembler) Pending() string {
	return string(a.buf)
}

// Reset discards the in-progress line.
func (a *Assembler) Reset() {
	a.buf = a.buf[:0]
}
