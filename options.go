package hktab

import "github.com/rs/zerolog"

// DefaultCleanedPath is the well-known working-directory path the sanitized
// copy of the export is written to. Concurrent runs sharing a working
// directory will collide on it; use CleanedPath to pick a private location.
const DefaultCleanedPath = "temp_preprocessed_export.xml"

// ExtractOptions holds configuration for the conversion pipeline.
type ExtractOptions struct {
	// Sanitizer output
	cleanedPath    string
	discardCleaned bool

	// Progress reporting
	logger        zerolog.Logger
	progressEvery int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		cleanedPath:    DefaultCleanedPath,
		discardCleaned: false,
		logger:         zerolog.Nop(),
		progressEvery:  50000,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		cleanedPath:    o.cleanedPath,
		discardCleaned: o.discardCleaned,
		logger:         o.logger,
		progressEvery:  o.progressEvery,
	}
}
