package filters

import (
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

func TestStripInvisible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no control character", "plain line", "plain line"},
		{"single occurrence", "before\x0bafter", "beforeafter"},
		{"multiple occurrences", "\x0ba\x0bb\x0b", "ab"},
		{"only control characters", "\x0b\x0b\x0b", ""},
		{"empty", "", ""},
		{"preserves other whitespace", "a\tb\nc", "a\tb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripInvisible(tt.input); got != tt.want {
				t.Errorf("StripInvisible(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripInvisibleIdempotent(t *testing.T) {
	input := "x\x0by\x0bz"
	once := StripInvisible(input)
	twice := StripInvisible(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestInvisibleStripperAsReader(t *testing.T) {
	src := strings.NewReader("line with\x0b noise")
	r := transform.NewReader(src, NewInvisibleStripper())

	var sb strings.Builder
	buf := make([]byte, 4)
	for {
		n, err := r.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}

	if got := sb.String(); got != "line with noise" {
		t.Errorf("got %q, want %q", got, "line with noise")
	}
}
