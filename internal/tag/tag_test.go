package tag

import (
	"strings"
	"testing"
	"time"
)

func TestNewRecord(t *testing.T) {
	before := time.Now()
	rec, err := NewRecord("AB12", nil)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	after := time.Now()

	if rec.Identifier != "AB12" {
		t.Errorf("Identifier = %q, want %q", rec.Identifier, "AB12")
	}
	if rec.RSSI != nil {
		t.Errorf("RSSI = %v, want nil", *rec.RSSI)
	}
	if len(rec.ID) != 26 {
		t.Errorf("ID = %q, want 26-char ULID", rec.ID)
	}
	if rec.CapturedAt.Before(before) || rec.CapturedAt.After(after) {
		t.Errorf("CapturedAt = %v, want within [%v, %v]", rec.CapturedAt, before, after)
	}
}

func TestNewRecord_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		rec, err := NewRecord("SAME", nil)
		if err != nil {
			t.Fatalf("NewRecord failed: %v", err)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate ID %q after %d records", rec.ID, i)
		}
		seen[rec.ID] = true
	}
}

func TestCSVRow(t *testing.T) {
	rssi := -42
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	withRSSI := Record{Identifier: "E200AA", RSSI: &rssi, CapturedAt: at}
	row := withRSSI.CSVRow()
	want := []string{"E200AA", "-42", "2026-03-14T09:26:53.589793Z"}
	if len(row) != len(want) {
		t.Fatalf("CSVRow length = %d, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("CSVRow[%d] = %q, want %q", i, row[i], want[i])
		}
	}

	withoutRSSI := Record{Identifier: "AB12", CapturedAt: at}
	if got := withoutRSSI.CSVRow()[1]; got != "" {
		t.Errorf("signalStrength column = %q, want empty", got)
	}
}

func TestCSVRow_TimestampRoundTrips(t *testing.T) {
	rec, err := NewRecord("AB12", nil)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	row := rec.CSVRow()

	parsed, err := time.Parse(time.RFC3339Nano, row[2])
	if err != nil {
		t.Fatalf("timestamp %q does not parse: %v", row[2], err)
	}
	if !parsed.Equal(rec.CapturedAt) {
		t.Errorf("round-trip = %v, want %v", parsed, rec.CapturedAt)
	}
}

func TestCSVHeader(t *testing.T) {
	if got := strings.Join(CSVHeader, ","); got != "identifier,signalStrength,timestamp" {
		t.Errorf("header = %q", got)
	}
}
