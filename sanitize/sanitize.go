// Package sanitize repairs a raw health export so it can be parsed as XML.
//
// Apple Health exports have two defects that break standard parsers: a
// malformed inline DOCTYPE declaration emitted for some data types, and
// sporadic occurrences of the invisible \x0b control character inside
// record values. Clean copies the document line by line, eliding every
// line from a DOCTYPE opener through its closing "]>" and stripping the
// control character from everything it emits.
package sanitize

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/hktab/internal/filters"
)

const (
	doctypeOpen  = "<!DOCTYPE"
	doctypeClose = "]>"
)

// Clean copies src to dst line by line, removing every occurrence of the
// invisible control character and eliding any DOCTYPE block in its
// entirety. Input is processed one line at a time; the whole document is
// never held in memory.
//
// The suppression window is a two-state machine: a line containing the
// DOCTYPE opener flips it on before the emit decision, and a line
// containing "]>" flips it off after, so both framing lines are swallowed
// along with everything between them.
func Clean(dst io.Writer, src io.Reader) error {
	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	suppressing := false

	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			if strings.Contains(line, doctypeOpen) {
				suppressing = true
			}
			if !suppressing {
				if _, err := bw.WriteString(filters.StripInvisible(line)); err != nil {
					return err
				}
			}
			if strings.Contains(line, doctypeClose) {
				suppressing = false
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	return bw.Flush()
}

// CleanTo sanitizes src into a file at path, creating or truncating it.
// The file is the durable intermediate the flattening stage re-reads, so
// it is fully written and closed before CleanTo returns.
func CleanTo(path string, src io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cleaned file: %w", err)
	}

	if err := Clean(out, src); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing cleaned file: %w", err)
	}
	return nil
}

// CleanFile sanitizes the document at srcPath into dstPath.
func CleanFile(dstPath, srcPath string) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer in.Close()

	return CleanTo(dstPath, in)
}
