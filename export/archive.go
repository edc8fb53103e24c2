package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
)

// exportEntryName is the file the Health app places inside export.zip,
// under the apple_health_export/ directory.
const exportEntryName = "export.xml"

// OpenArchive opens the export.xml entry inside a zipped export bundle.
// The returned ReadCloser keeps the archive open until closed.
func OpenArchive(filename string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	for _, f := range zr.File {
		if path.Base(f.Name) != exportEntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		return &archiveEntry{rc: rc, zr: zr}, nil
	}

	zr.Close()
	return nil, fmt.Errorf("missing required file: %s", exportEntryName)
}

// archiveEntry couples an open zip entry with its parent archive so both
// close together.
type archiveEntry struct {
	rc io.ReadCloser
	zr *zip.ReadCloser
}

func (a *archiveEntry) Read(p []byte) (int, error) {
	return a.rc.Read(p)
}

func (a *archiveEntry) Close() error {
	err := a.rc.Close()
	if cerr := a.zr.Close(); err == nil {
		err = cerr
	}
	return err
}
