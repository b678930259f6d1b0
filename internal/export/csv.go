// Package export writes session snapshots to external sinks: CSV files
// for spreadsheets and SQLite archive files for later querying. Both
// sinks consume a snapshot; neither gives the in-memory session any
// persistence.
package export

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kwray/tagwell/internal/errors"
	"github.com/kwray/tagwell/internal/tag"
)

// WriteCSV writes the header line and one row per record to w.
// Records are written in the order given (newest-first for session
// snapshots).
func WriteCSV(w io.Writer, records []tag.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tag.CSVHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.CSVRow()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes a CSV export to path. The file is written to a
// temp sibling first and renamed into place, so a failed export never
// leaves a partial file behind. Symlink destinations are refused.
func WriteCSVFile(path string, records []tag.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if err := WriteCSV(file, records); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	if err := os.Rename(tempPath, path); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return nil
}
