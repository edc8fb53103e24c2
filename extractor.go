package hktab

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/tsawler/hktab/export"
	"github.com/tsawler/hktab/format"
	"github.com/tsawler/hktab/model"
	"github.com/tsawler/hktab/sanitize"
)

// Extractor provides a fluent interface for converting a health export into
// a table. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	format   format.Format

	// Reader over the sanitized document
	reader *export.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		format:       e.format,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureReader sanitizes the source document and opens a streaming reader
// over the cleaned copy, if that has not happened already.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	cleaned, err := e.Clean()
	if err != nil {
		return err
	}

	r, err := export.Open(cleaned)
	if err != nil {
		return fmt.Errorf("opening cleaned export: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// openSource opens the raw export for reading, unwrapping the zip archive
// when the source is a bundled export.zip.
func (e *Extractor) openSource() (io.ReadCloser, error) {
	f := format.Detect(e.filename)
	if f == format.Unknown {
		f = sniffFormat(e.filename)
	}
	e.format = f

	switch f {
	case format.Archive:
		src, err := export.OpenArchive(e.filename)
		if err != nil {
			return nil, fmt.Errorf("opening export archive: %w", err)
		}
		return src, nil

	case format.XML:
		src, err := os.Open(e.filename)
		if err != nil {
			return nil, fmt.Errorf("opening export: %w", err)
		}
		return src, nil

	default:
		return nil, fmt.Errorf("unsupported file format: %s", f)
	}
}

// sniffFormat reads the first bytes of the file and falls back to
// magic-based detection when the extension is unhelpful.
func sniffFormat(filename string) format.Format {
	f, err := os.Open(filename)
	if err != nil {
		return format.Unknown
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := io.ReadFull(f, buf)
	return format.DetectFromMagic(buf[:n])
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// CleanedPath sets where the sanitized copy of the export is written.
// The default is DefaultCleanedPath in the working directory.
//
// Example:
//
//	table, _, err := hktab.Open("export.xml").CleanedPath("/tmp/clean.xml").Table()
func (e *Extractor) CleanedPath(path string) *Extractor {
	newExt := e.clone()
	newExt.options.cleanedPath = path
	return newExt
}

// DiscardCleaned removes the sanitized intermediate file once the table has
// been built. By default the file is left behind so it can be inspected or
// re-read.
func (e *Extractor) DiscardCleaned() *Extractor {
	newExt := e.clone()
	newExt.options.discardCleaned = true
	return newExt
}

// WithLogger sets the logger used for progress reporting while the export
// is flattened. The default logger discards everything.
//
// Example:
//
//	l := zerolog.New(os.Stderr)
//	table, _, err := hktab.Open("export.xml").WithLogger(l).Table()
func (e *Extractor) WithLogger(l zerolog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ProgressEvery sets how many records pass between progress log events.
// Zero disables progress events entirely.
func (e *Extractor) ProgressEvery(n int) *Extractor {
	newExt := e.clone()
	newExt.options.progressEvery = n
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Clean runs only the sanitizing pre-pass and returns the path of the
// cleaned document. The invisible \x0b character is stripped and any inline
// DOCTYPE block is elided; everything else is copied through verbatim.
func (e *Extractor) Clean() (string, error) {
	if e.err != nil {
		return "", e.err
	}

	src, err := e.openSource()
	if err != nil {
		return "", err
	}
	defer src.Close()

	e.options.logger.Debug().
		Str("source", e.filename).
		Str("cleaned", e.options.cleanedPath).
		Msg("sanitizing export")

	if err := sanitize.CleanTo(e.options.cleanedPath, src); err != nil {
		return "", fmt.Errorf("sanitizing export: %w", err)
	}
	return e.options.cleanedPath, nil
}

// Table runs the full pipeline and returns the flattened, column-unioned
// table along with any warnings and an error if conversion failed. Warnings
// indicate non-fatal issues such as skipped malformed metadata entries.
//
// Example:
//
//	table, warnings, err := hktab.Open("export.xml").Table()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hktab.FormatWarnings(warnings))
//	}
func (e *Extractor) Table() (*model.Table, []Warning, error) {
	if e.err != nil {
		return nil, e.warnings, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, e.warnings, err
	}
	defer e.Close()

	tbl, err := export.Flatten(e.reader, export.FlattenOptions{
		Logger:        e.options.logger,
		ProgressEvery: e.options.progressEvery,
	})
	if err != nil {
		return nil, e.warnings, err
	}

	warnings := append([]Warning(nil), e.warnings...)
	stats := e.reader.Stats()
	if stats.SkippedMetadata > 0 {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("skipped %d metadata entries without exactly two attribute values", stats.SkippedMetadata),
		})
	}

	if e.options.discardCleaned && e.filename != "" {
		if err := os.Remove(e.options.cleanedPath); err != nil {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("removing cleaned file: %v", err),
			})
		}
	}

	return tbl, warnings, nil
}

// CSV runs the full pipeline and returns the table rendered as CSV text.
//
// Example:
//
//	csv, _, err := hktab.Open("export.xml").CSV()
func (e *Extractor) CSV() (string, []Warning, error) {
	tbl, warnings, err := e.Table()
	if err != nil {
		return "", warnings, err
	}
	return tbl.ToCSV(), warnings, nil
}

// ToMarkdown runs the full pipeline and returns the table rendered as a
// Markdown table.
func (e *Extractor) ToMarkdown() (string, []Warning, error) {
	tbl, warnings, err := e.Table()
	if err != nil {
		return "", warnings, err
	}
	return tbl.ToMarkdown(), warnings, nil
}
