package filters

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Invisible is the control character Apple Health embeds in some record
// values. It is invalid in XML 1.0 and must be removed before parsing.
const Invisible = '\x0b'

// NewInvisibleStripper returns a transformer that removes every occurrence
// of the invisible control character from a stream.
func NewInvisibleStripper() transform.Transformer {
	return runes.Remove(runes.Predicate(func(r rune) bool {
		return r == Invisible
	}))
}

// StripInvisible removes every occurrence of the invisible control
// character from s.
func StripInvisible(s string) string {
	out, _, err := transform.String(NewInvisibleStripper(), s)
	if err != nil {
		// runes.Remove cannot fail on valid input; malformed UTF-8 passes
		// through untouched, so fall back to the original string.
		return s
	}
	return out
}
