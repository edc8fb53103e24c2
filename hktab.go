// Package hktab provides a fluent API for converting Apple Health export
// bundles into a flat, column-unioned table.
//
// Basic usage:
//
//	table, warnings, err := hktab.Open("export.xml").Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hktab.FormatWarnings(warnings))
//	}
//
// The zipped bundle Apple produces works directly:
//
//	table, _, err := hktab.Open("export.zip").Table()
//
// For advanced use cases, the lower-level sanitize and export packages are
// also available.
package hktab

import (
	"github.com/tsawler/hktab/export"
)

// Open opens a health export file and returns an Extractor for fluent
// configuration. The file may be the raw export.xml or the export.zip
// archive containing it; the format is detected automatically.
//
// Example:
//
//	table, warnings, err := hktab.Open("export.xml").Table()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened export.Reader.
// The reader must be positioned over an already-sanitized document; the
// sanitizing pre-pass is skipped. The caller is responsible for closing
// the reader.
//
// Example:
//
//	r, err := export.Open("cleaned.xml")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	table, warnings, err := hktab.FromReader(r).Table()
func FromReader(r *export.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a call to Table() or another terminal
// operation and panics if the error is non-nil. It discards warnings and
// returns just the value. It is intended for use in scripts or tests where
// error handling would be cumbersome.
//
// Example:
//
//	table := hktab.MustTable(hktab.Open("export.xml").Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
