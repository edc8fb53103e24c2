// Package filters provides byte-stream cleanup filters for export documents.
//
// Health exports carry textual corruption that breaks standard XML parsers.
// The filters here remove it at the stream level, built on the
// golang.org/x/text transform pipeline so they compose with any io.Reader
// or io.Writer.
//
// Stripping the invisible character:
//
//	clean := filters.StripInvisible(line)
//
// Or as a reusable transformer:
//
//	t := filters.NewInvisibleStripper()
//	out, _, err := transform.String(t, line)
package filters
