// Package export provides streaming access to sanitized Apple Health
// export documents and flattens them into the model.Table form.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/hktab/model"
)

// Reader streams flattened record rows from a sanitized export document.
// It never builds a full document tree: each record's subtree is consumed
// and discarded as its row is produced, so peak memory stays bounded no
// matter how many records the export holds.
type Reader struct {
	src   io.ReadCloser
	dec   *xml.Decoder
	depth int
	err   error

	records     int
	skippedMeta int
}

// Stats reports counters accumulated while reading.
type Stats struct {
	// Records is the number of top-level records returned so far.
	Records int
	// SkippedMetadata is the number of immediate child elements dropped
	// because they did not expose exactly two attribute values.
	SkippedMetadata int
}

// Open opens a sanitized export file for streaming.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	return NewReader(f), nil
}

// NewReader creates a Reader from the given source. The Reader takes
// ownership of src and closes it via Close.
func NewReader(src io.ReadCloser) *Reader {
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charset.NewReaderLabel
	return &Reader{src: src, dec: dec}
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.src != nil {
		err := r.src.Close()
		r.src = nil
		return err
	}
	return nil
}

// Stats returns counters accumulated so far.
func (r *Reader) Stats() Stats {
	return Stats{Records: r.records, SkippedMetadata: r.skippedMeta}
}

// Next returns the flattened row for the next top-level record, or io.EOF
// once the document is exhausted. Records are recognized purely by
// structural position (direct children of the document root), never by
// element name, so every record kind an export can carry comes through.
//
// A row starts from the record's own attributes. Each immediate child
// element exposing exactly two attribute values contributes one extra
// field, first value as name and second as value; children with any other
// attribute shape are skipped silently. Deeper descendants never
// contribute fields.
func (r *Reader) Next() (model.Row, error) {
	if r.err != nil {
		return nil, r.err
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			if err != io.EOF {
				err = fmt.Errorf("parsing export: %w", err)
			}
			r.err = err
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			r.depth++
			if r.depth == 2 {
				row, err := r.readRecord(t)
				if err != nil {
					r.err = err
					return nil, err
				}
				r.records++
				return row, nil
			}
		case xml.EndElement:
			r.depth--
		}
	}
}

// readRecord consumes one record subtree, returning its merged row. On
// return the decoder is positioned just past the record's end element.
func (r *Reader) readRecord(start xml.StartElement) (model.Row, error) {
	row := make(model.Row, len(start.Attr))
	for _, a := range start.Attr {
		row[a.Name.Local] = a.Value
	}

	childDepth := 0
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("parsing record: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			childDepth++
			if childDepth == 1 {
				// Metadata merge is positional over attribute values, not
				// keyed by attribute name.
				if len(t.Attr) == 2 {
					row[t.Attr[0].Value] = t.Attr[1].Value
				} else {
					r.skippedMeta++
				}
			}
		case xml.EndElement:
			if childDepth == 0 {
				r.depth--
				return row, nil
			}
			childDepth--
		}
	}
}
