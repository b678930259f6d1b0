package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kwray/tagwell/internal/notify"
	"github.com/kwray/tagwell/internal/session"
)

// Config holds application configuration.
type Config struct {
	// MarkerByte is the byte value that opens the identifier field in
	// notification payloads. Must fit in one byte.
	MarkerByte int `json:"marker_byte"`

	// FieldWidth is the identifier field width in bytes (>= 1).
	FieldWidth int `json:"field_width"`

	// MaxRecords bounds the session buffer; the oldest record is evicted
	// once the bound is reached.
	MaxRecords int `json:"max_records"`

	// AllowDuplicates disables per-identifier deduplication.
	AllowDuplicates bool `json:"allow_duplicates,omitempty"`

	// RejectTruncated rejects notification payloads whose identifier
	// field is cut short by the end of the payload. Off by default: a
	// short field degrades to a short identifier.
	RejectTruncated bool `json:"reject_truncated,omitempty"`

	// StartPaused opens sessions with the capture gate closed.
	StartPaused bool `json:"start_paused,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown names are reported at startup.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MarkerByte: notify.DefaultMarker,
		FieldWidth: notify.DefaultFieldWidth,
		MaxRecords: session.DefaultMaxRecords,
	}
}

// Validate checks value ranges. Zero values are allowed (they mean
// "use default" under Merge); set values must be in range.
func (c *Config) Validate() error {
	if c.MarkerByte < 0 || c.MarkerByte > 0xFF {
		return fmt.Errorf("marker_byte %d out of byte range", c.MarkerByte)
	}
	if c.FieldWidth < 0 {
		return fmt.Errorf("field_width %d must not be negative", c.FieldWidth)
	}
	if c.MaxRecords < 0 {
		return fmt.Errorf("max_records %d must not be negative", c.MaxRecords)
	}
	return nil
}

// Parser builds a notification parser from the configured marker policy.
func (c *Config) Parser() notify.Parser {
	return notify.Parser{
		Marker:          byte(c.MarkerByte),
		FieldWidth:      c.FieldWidth,
		RejectTruncated: c.RejectTruncated,
	}
}

// SessionOptions builds session options from the configured retention policy.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		MaxRecords:      c.MaxRecords,
		AllowDuplicates: c.AllowDuplicates,
		StartPaused:     c.StartPaused,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tagwell.
func Load(baseDir string) (*Config, error) {
	overlay, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg := Merge(DefaultConfig(), overlay)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars when non-zero; boolean
// fields are false by default, so overlay true always wins.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.MarkerByte = overlay.MarkerByte
	if result.MarkerByte == 0 {
		result.MarkerByte = base.MarkerByte
	}
	result.FieldWidth = overlay.FieldWidth
	if result.FieldWidth == 0 {
		result.FieldWidth = base.FieldWidth
	}
	result.MaxRecords = overlay.MaxRecords
	if result.MaxRecords == 0 {
		result.MaxRecords = base.MaxRecords
	}

	result.AllowDuplicates = base.AllowDuplicates || overlay.AllowDuplicates
	result.RejectTruncated = base.RejectTruncated || overlay.RejectTruncated
	result.StartPaused = base.StartPaused || overlay.StartPaused

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
