package export

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeArchive builds a zip bundle with the given entries and returns its
// path.
func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add entry %s: %v", name, err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			t.Fatalf("failed to write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}
	return path
}

func TestOpenArchive(t *testing.T) {
	doc := "<HealthData><Record type=\"T\"/></HealthData>"
	path := writeArchive(t, map[string]string{
		"apple_health_export/export_cda.xml": "<ClinicalDocument/>",
		"apple_health_export/export.xml":     doc,
	})

	rc, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read entry: %v", err)
	}
	if string(got) != doc {
		t.Errorf("got %q, want %q", string(got), doc)
	}
}

func TestOpenArchiveFlatLayout(t *testing.T) {
	// Some tools repackage the bundle without the wrapping directory.
	path := writeArchive(t, map[string]string{
		"export.xml": "<HealthData/>",
	})

	rc, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	rc.Close()
}

func TestOpenArchiveMissingEntry(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"readme.txt": "nothing here",
	})

	_, err := OpenArchive(path)
	if err == nil {
		t.Fatal("expected error for archive without export.xml")
	}
	if !strings.Contains(err.Error(), "export.xml") {
		t.Errorf("error should name the missing entry: %v", err)
	}
}

func TestOpenArchiveNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := OpenArchive(path); err == nil {
		t.Error("expected error for non-zip file")
	}
}

func TestOpenArchiveStreamsThroughReader(t *testing.T) {
	doc := `<HealthData>
 <Record type="T" value="1"/>
 <Record type="U" value="2"/>
</HealthData>
`
	path := writeArchive(t, map[string]string{
		"apple_health_export/export.xml": doc,
	})

	rc, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}

	r := NewReader(rc)
	defer r.Close()
	rows := drain(t, r)
	if len(rows) != 2 {
		t.Errorf("expected 2 rows from archived export, got %d", len(rows))
	}
}
