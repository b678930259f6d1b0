package tag

import "strings"

// Normalize strips every character outside [0-9a-zA-Z-_:] from raw.
// The result may be empty; an empty result means "no candidate" and must
// not be offered to the session. Normalize is idempotent.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r == '-' || r == '_' || r == ':':
			return r
		}
		return -1
	}, raw)
}
