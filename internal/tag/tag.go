package tag

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Record represents a single captured tag.
type Record struct {
	// ID is a ULID that uniquely identifies this capture event.
	// ULIDs sort by creation time, so ID order matches capture order
	// even when two reads of the same tag land in the same millisecond.
	ID string

	// Identifier is the normalized tag identifier (uppercase hex for
	// notification-mode reads, filtered alphanumeric for wedge-mode reads).
	// Never empty: empty candidates are dropped before a Record is built.
	Identifier string

	// RSSI is the reported signal strength in dBm (nullable).
	// Only the notification path can populate it; wedge reads carry nil.
	RSSI *int

	// CapturedAt is the wall-clock capture time.
	CapturedAt time.Time
}

// NewRecord builds a Record for a normalized identifier, stamping the
// current time and a fresh ULID.
func NewRecord(identifier string, rssi *int) (Record, error) {
	id, err := generateULID()
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:         id,
		Identifier: identifier,
		RSSI:       rssi,
		CapturedAt: time.Now(),
	}, nil
}

// generateULID generates a new ULID with monotonic entropy.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
