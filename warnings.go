package hktab

import "strings"

// Warning describes a non-fatal issue encountered while processing an
// export. Warnings never stop the pipeline; they report conditions the
// caller may want to know about, such as malformed metadata entries that
// were skipped.
type Warning struct {
	Message string
}

// FormatWarnings joins warnings into a single human-readable string,
// one warning per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Message
	}
	return strings.Join(parts, "\n")
}
