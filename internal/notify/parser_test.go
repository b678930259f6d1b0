package notify

import "testing"

func TestParse_FullField(t *testing.T) {
	// 14-byte payload: one leading byte, marker, then 12 more bytes.
	// The field is the marker plus the following 11 bytes.
	payload := []byte{0x01, 0xE2, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC}

	id, ok := New().Parse(payload)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if id != "E2112233445566778899AABB" {
		t.Errorf("identifier = %q, want E2112233445566778899AABB", id)
	}
}

func TestParse_MarkerAbsent(t *testing.T) {
	id, ok := New().Parse([]byte{0x01, 0x02, 0x03})
	if ok {
		t.Errorf("expected no candidate, got %q", id)
	}
}

func TestParse_EmptyPayload(t *testing.T) {
	if id, ok := New().Parse(nil); ok {
		t.Errorf("expected no candidate from empty payload, got %q", id)
	}
}

func TestParse_MarkerAtStart(t *testing.T) {
	payload := []byte{0xE2, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xFF}

	id, ok := New().Parse(payload)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if id != "E200112233445566778899AA" {
		t.Errorf("identifier = %q", id)
	}
}

func TestParse_TruncatedAccepted(t *testing.T) {
	// Marker three bytes from the end: default policy degrades to a
	// short identifier.
	payload := []byte{0x00, 0xE2, 0xAB, 0xCD}

	id, ok := New().Parse(payload)
	if !ok {
		t.Fatal("expected a candidate under the accept policy")
	}
	if id != "E2ABCD" {
		t.Errorf("identifier = %q, want E2ABCD", id)
	}
}

func TestParse_TruncatedRejected(t *testing.T) {
	p := New()
	p.RejectTruncated = true

	if id, ok := p.Parse([]byte{0x00, 0xE2, 0xAB, 0xCD}); ok {
		t.Errorf("expected rejection under the strict policy, got %q", id)
	}

	// A full-width field still parses under the strict policy.
	full := []byte{0xE2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if _, ok := p.Parse(full); !ok {
		t.Error("full-width field should parse under the strict policy")
	}
}

func TestParse_MarkerOnly(t *testing.T) {
	id, ok := New().Parse([]byte{0xE2})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if id != "E2" {
		t.Errorf("identifier = %q, want E2", id)
	}
}

func TestParse_FirstMarkerWins(t *testing.T) {
	// A second 0xE2 inside the field is data, not a new field.
	payload := []byte{0xE2, 0xE2, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0xFF}

	id, ok := New().Parse(payload)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if id != "E2E20102030405060708090A" {
		t.Errorf("identifier = %q", id)
	}
}

func TestParse_CustomMarkerAndWidth(t *testing.T) {
	p := Parser{Marker: 0x30, FieldWidth: 4}

	id, ok := p.Parse([]byte{0xFF, 0x30, 0xAA, 0xBB, 0xCC, 0xDD})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if id != "30AABBCC" {
		t.Errorf("identifier = %q, want 30AABBCC", id)
	}
}

func TestParse_OutputIsNormalized(t *testing.T) {
	// Parser output is already canonical: re-normalizing it is a no-op.
	// (Guards the parser's uppercase-hex contract against drift.)
	payload := []byte{0xE2, 0xAB, 0xCD, 0xEF}
	p := Parser{Marker: 0xE2, FieldWidth: 12}

	id, _ := p.Parse(payload)
	for _, r := range id {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')) {
			t.Errorf("identifier %q contains non-uppercase-hex rune %q", id, r)
		}
	}
}
