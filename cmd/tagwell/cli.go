package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kwray/tagwell/internal/config"
	"github.com/kwray/tagwell/internal/errors"
	"github.com/kwray/tagwell/internal/export"
	"github.com/kwray/tagwell/internal/session"
	"github.com/kwray/tagwell/internal/tag"
	"github.com/kwray/tagwell/internal/wedge"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tagwell",
		Usage:   "RFID tag capture session tool",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(cfg),
			parseCmd(cfg),
			normalizeCmd(),
			exportCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
func captureCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Run a wedge-mode capture session over stdin lines, then print or export the buffer",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max", Usage: "Session buffer bound (default from config)"},
			&cli.BoolFlag{Name: "allow-dup", Usage: "Keep duplicate identifiers"},
			&cli.StringFlag{Name: "csv", Usage: "Write the final buffer to this CSV file"},
			&cli.StringFlag{Name: "archive", Usage: "Append the final buffer to this SQLite archive"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Suppress per-scan output"},
		},
		Action: func(c *cli.Context) error {
			opts := cfg.SessionOptions()
			if c.Int("max") > 0 {
				opts.MaxRecords = c.Int("max")
			}
			if c.Bool("allow-dup") {
				opts.AllowDuplicates = true
			}

			summary, err := runCapture(os.Stdin, c.App.Writer, opts, c.Bool("quiet"))
			if err != nil {
				return outputError(err)
			}

			if path := c.String("csv"); path != "" {
				if err := export.WriteCSVFile(path, summary.records); err != nil {
					return outputError(err)
				}
				summary.CSVPath = path
			}
			if path := c.String("archive"); path != "" {
				archived, err := export.Archive(path, summary.records)
				if err != nil {
					return outputError(err)
				}
				summary.ArchivePath = path
				summary.Archived = archived
			}

			return outputJSON(c.App.Writer, summary)
		},
	}
}

// captureSummary is the JSON summary printed after a capture session.
type captureSummary struct {
	Lines       int    `json:"lines"`
	Inserted    int    `json:"inserted"`
	Count       int    `json:"count"`
	CSVPath     string `json:"csv_path,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`
	Archived    int    `json:"archived,omitempty"`

	records []tag.Record
}

// runCapture replays each input line through the wedge assembler into a
// fresh session and returns the final buffer with counts.
func runCapture(r io.Reader, w io.Writer, opts session.Options, quiet bool) (*captureSummary, error) {
	ctrl := session.NewController(opts)
	asm := &wedge.Assembler{}
	summary := &captureSummary{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		summary.Lines++
		for _, ch := range scanner.Text() {
			asm.Handle(wedge.Rune(ch))
		}
		line, _ := asm.Handle(wedge.Enter())

		inserted, err := ctrl.Submit(line, nil)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if inserted {
			summary.Inserted++
			if !quiet {
				fmt.Fprintln(w, tag.Normalize(line))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	summary.records = ctrl.Snapshot()
	summary.Count = len(summary.records)
	return summary, nil
}

// parseCmd creates the parse command.
func parseCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Extract the identifier field from a hex notification payload",
		ArgsUsage: "<hex-payload>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "marker", Usage: "Marker byte as hex (default from config)"},
			&cli.IntFlag{Name: "width", Usage: "Identifier field width in bytes (default from config)"},
			&cli.BoolFlag{Name: "strict", Usage: "Reject payloads with a truncated identifier field"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected exactly one hex payload argument"))
			}

			parser := cfg.Parser()
			if m := c.String("marker"); m != "" {
				b, err := hex.DecodeString(m)
				if err != nil || len(b) != 1 {
					return outputError(errors.NewInvalidRequest("marker must be a single hex byte, e.g. e2"))
				}
				parser.Marker = b[0]
			}
			if width := c.Int("width"); width > 0 {
				parser.FieldWidth = width
			}
			if c.Bool("strict") {
				parser.RejectTruncated = true
			}

			payload, err := hex.DecodeString(strings.TrimSpace(c.Args().First()))
			if err != nil {
				return outputError(errors.NewInvalidRequest("payload must be a hex string"))
			}

			identifier, found := parser.Parse(payload)
			return outputJSON(c.App.Writer, map[string]any{
				"identifier": identifier,
				"found":      found,
			})
		},
	}
}

// normalizeCmd creates the normalize command.
func normalizeCmd() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Normalize a raw scan line to its canonical identifier",
		ArgsUsage: "<raw>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected exactly one argument"))
			}
			fmt.Fprintln(c.App.Writer, tag.Normalize(c.Args().First()))
			return nil
		},
	}
}

// exportCmd creates the export command (archive → CSV).
func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Re-export a SQLite capture archive as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Required: true, Usage: "Archive file to read"},
			&cli.StringFlag{Name: "out", Required: true, Usage: "CSV file to write"},
		},
		Action: func(c *cli.Context) error {
			dbPath := c.String("db")
			if _, err := os.Stat(dbPath); err != nil {
				return outputError(errors.NewNotFound(dbPath))
			}

			records, err := export.ReadArchive(dbPath)
			if err != nil {
				return outputError(err)
			}
			if err := export.WriteCSVFile(c.String("out"), records); err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, map[string]any{
				"count": len(records),
				"out":   c.String("out"),
			})
		},
	}
}

// outputJSON formats successful output as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TagwellError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
