package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kwray/tagwell/internal/errors"
	"github.com/kwray/tagwell/internal/tag"
)

// currentSchemaVersion is the latest archive schema version.
// Bump this when adding migrations.
const currentSchemaVersion = 1

// OpenArchive opens (creating if needed) a SQLite archive file.
func OpenArchive(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to open archive: %w", err))
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies archive schema migrations based on user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to read schema version: %w", err))
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS captures (
		  id           TEXT PRIMARY KEY,
		  identifier   TEXT NOT NULL,
		  rssi         INTEGER,
		  captured_at  TEXT NOT NULL,
		  archived_at  INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_captures_identifier ON captures(identifier);
		`
		if _, err := db.Exec(schema); err != nil {
			return errors.NewInternal(fmt.Errorf("failed to apply schema v1: %w", err))
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return errors.NewInternal(fmt.Errorf("failed to set schema version: %w", err))
		}
	}

	return nil
}

// Archive inserts a session snapshot into the archive at path, creating
// the file on first use. Re-archiving a session is idempotent per record:
// rows keyed by the capture ULID are inserted once and ignored after.
// Returns the number of newly archived records.
func Archive(path string, records []tag.Record) (int, error) {
	db, err := OpenArchive(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return 0, errors.NewInternal(fmt.Errorf("failed to begin archive transaction: %w", err))
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO captures (id, identifier, rssi, captured_at, archived_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer stmt.Close()

	archivedAt := time.Now().Unix()
	count := 0
	for _, rec := range records {
		var rssi any
		if rec.RSSI != nil {
			rssi = *rec.RSSI
		}
		res, err := stmt.Exec(rec.ID, rec.Identifier, rssi, rec.CapturedAt.Format(time.RFC3339Nano), archivedAt)
		if err != nil {
			return 0, errors.NewInternal(fmt.Errorf("failed to archive record %s: %w", rec.ID, err))
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewInternal(fmt.Errorf("failed to commit archive: %w", err))
	}
	return count, nil
}

// ReadArchive returns every archived record, newest capture first.
func ReadArchive(path string) ([]tag.Record, error) {
	db, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, identifier, rssi, captured_at
		FROM captures
		ORDER BY id DESC`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var records []tag.Record
	for rows.Next() {
		var rec tag.Record
		var rssi sql.NullInt64
		var capturedAt string
		if err := rows.Scan(&rec.ID, &rec.Identifier, &rssi, &capturedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		if rssi.Valid {
			v := int(rssi.Int64)
			rec.RSSI = &v
		}
		rec.CapturedAt, err = time.Parse(time.RFC3339Nano, capturedAt)
		if err != nil {
			return nil, errors.NewInternal(fmt.Errorf("bad captured_at in archive: %w", err))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}
