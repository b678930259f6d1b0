// Package notify extracts tag identifiers from the binary payloads a
// wireless reader delivers over its notification channel.
package notify

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// Defaults match the EPC Gen2 tag layout the supported readers emit:
// identifiers start with the 0xE2 class byte and span 96 bits.
const (
	// DefaultMarker is the byte that opens the identifier field.
	DefaultMarker = 0xE2

	// DefaultFieldWidth is the identifier field width in bytes.
	DefaultFieldWidth = 12
)

// Parser locates and extracts the identifier field from a notification
// payload. The zero value is not usable; call New.
type Parser struct {
	// Marker is the byte that opens the identifier field.
	Marker byte

	// FieldWidth is the identifier field width in bytes.
	FieldWidth int

	// RejectTruncated rejects payloads where fewer than FieldWidth bytes
	// follow the marker. When false (the default) a short field degrades
	// to a short identifier.
	RejectTruncated bool
}

// New returns a Parser with the default marker and field width.
func New() Parser {
	return Parser{Marker: DefaultMarker, FieldWidth: DefaultFieldWidth}
}

// Parse scans payload for the first marker byte and extracts the
// identifier field starting there, encoded as uppercase hex with no
// separators. ok is false when the payload yields no candidate: marker
// absent, or field truncated while RejectTruncated is set. Parse is pure;
// it never fails on malformed input.
func (p Parser) Parse(payload []byte) (identifier string, ok bool) {
	i := bytes.IndexByte(payload, p.Marker)
	if i < 0 {
		return "", false
	}

	field := payload[i:]
	if len(field) >= p.FieldWidth {
		field = field[:p.FieldWidth]
	} else if p.RejectTruncated {
		return "", false
	}

	return strings.ToUpper(hex.EncodeToString(field)), true
}
