package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwray/tagwell/internal/config"
	"github.com/kwray/tagwell/internal/export"
	"github.com/kwray/tagwell/internal/session"
	"github.com/kwray/tagwell/internal/tag"
)

// runApp runs the CLI app with the given args and returns its output.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(config.DefaultConfig())
	var buf bytes.Buffer
	app.Writer = &buf
	err := app.Run(append([]string{"tagwell"}, args...))
	return buf.String(), err
}

func TestNormalizeCommand(t *testing.T) {
	out, err := runApp(t, "normalize", " AB-12!! ")
	require.NoError(t, err)
	assert.Equal(t, "AB-12\n", out)
}

func TestNormalizeCommand_MissingArg(t *testing.T) {
	_, err := runApp(t, "normalize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_REQUEST")
}

func TestParseCommand(t *testing.T) {
	out, err := runApp(t, "parse", "01e2112233445566778899aabbcc")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "E2112233445566778899AABB", result["identifier"])
	assert.Equal(t, true, result["found"])
}

func TestParseCommand_NoMarker(t *testing.T) {
	out, err := runApp(t, "parse", "010203")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, false, result["found"])
	assert.Equal(t, "", result["identifier"])
}

func TestParseCommand_CustomMarkerAndWidth(t *testing.T) {
	out, err := runApp(t, "parse", "--marker", "30", "--width", "4", "ff30aabbccdd")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "30AABBCC", result["identifier"])
}

func TestParseCommand_StrictTruncated(t *testing.T) {
	out, err := runApp(t, "parse", "--strict", "00e2abcd")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, false, result["found"])
}

func TestParseCommand_BadHex(t *testing.T) {
	_, err := runApp(t, "parse", "not-hex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hex")
}

func TestRunCapture(t *testing.T) {
	input := strings.NewReader("AB12\nCD34\nAB12\n!!!\n")
	var out bytes.Buffer

	summary, err := runCapture(input, &out, session.Options{MaxRecords: 10}, false)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Lines)
	assert.Equal(t, 2, summary.Inserted) // AB12 deduped, !!! normalizes to empty
	assert.Equal(t, 2, summary.Count)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{"AB12", "CD34"}, lines)

	// Buffer snapshot is newest-first.
	require.Len(t, summary.records, 2)
	assert.Equal(t, "CD34", summary.records[0].Identifier)
	assert.Equal(t, "AB12", summary.records[1].Identifier)
}

func TestRunCapture_Quiet(t *testing.T) {
	var out bytes.Buffer
	_, err := runCapture(strings.NewReader("AB12\n"), &out, session.Options{}, true)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRunCapture_AllowDuplicates(t *testing.T) {
	summary, err := runCapture(strings.NewReader("AB12\nAB12\n"), &bytes.Buffer{},
		session.Options{AllowDuplicates: true}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
}

func TestRunCapture_Bounded(t *testing.T) {
	input := strings.NewReader("T1\nT2\nT3\nT4\nT5\n")
	summary, err := runCapture(input, &bytes.Buffer{}, session.Options{MaxRecords: 3}, true)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Inserted)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, "T5", summary.records[0].Identifier)
	assert.Equal(t, "T3", summary.records[2].Identifier)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "captures.db")
	outPath := filepath.Join(dir, "out.csv")

	rec, err := tag.NewRecord("AB12", nil)
	require.NoError(t, err)
	_, err = export.Archive(dbPath, []tag.Record{rec})
	require.NoError(t, err)

	out, err := runApp(t, "export", "--db", dbPath, "--out", outPath)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, float64(1), result["count"])
}

func TestExportCommand_MissingArchive(t *testing.T) {
	_, err := runApp(t, "export", "--db", filepath.Join(t.TempDir(), "nope.db"),
		"--out", filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestIsCLIModeTable(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"tagwell"}, false},
		{[]string{"tagwell", "capture"}, true},
		{[]string{"tagwell", "parse"}, true},
		{[]string{"tagwell", "--help"}, true},
		{[]string{"tagwell", "-v"}, true},
		{[]string{"tagwell", "bogus"}, false},
	}
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	for _, tt := range tests {
		os.Args = tt.args
		if got := isCLIMode(); got != tt.want {
			t.Errorf("isCLIMode() with %v = %v, want %v", tt.args, got, tt.want)
		}
	}
}
