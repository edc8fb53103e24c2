// Package format provides input format detection for the hktab library.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a supported export input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XML indicates a bare export.xml document.
	XML
	// Archive indicates a zipped export bundle (export.zip).
	Archive
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XML:
		return "XML"
	case Archive:
		return "Archive"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XML:
		return ".xml"
	case Archive:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return XML
	case ".zip":
		return Archive
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading file bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic: PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return Archive
	}

	if detectXMLMagic(data) {
		return XML
	}

	return Unknown
}

// detectXMLMagic checks if the data looks like an XML document.
func detectXMLMagic(data []byte) bool {
	// Skip a UTF-8 BOM if present
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	// Skip leading whitespace
	i := 0
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		}
		break
	}
	if i >= len(data) {
		return false
	}

	rest := data[i:]
	if len(rest) >= 5 && string(rest[:5]) == "<?xml" {
		return true
	}
	// Health exports sometimes arrive with the prolog stripped; any
	// leading element marker still parses as XML.
	return rest[0] == '<'
}
