package hktab_test

import (
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/tsawler/hktab"
	"github.com/tsawler/hktab/export"
	"github.com/tsawler/hktab/trend"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_convertExport() {
	// Works with the raw export.xml or the zipped bundle
	table, warnings, err := hktab.Open("export.xml").Table()
	// table, warnings, err := hktab.Open("export.zip").Table()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(table.ToCSV())

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_convertWithOptions() {
	l := zerolog.New(os.Stderr)
	table, warnings, err := hktab.Open("export.xml").
		CleanedPath("/tmp/cleaned.xml"). // Where the sanitized copy lands
		DiscardCleaned().                // Remove it once the table is built
		WithLogger(l).                   // Progress events while flattening
		Table()
	_ = table
	_ = warnings
	_ = err
}

func Example_bodyMassSeries() {
	table, _, err := hktab.Open("export.zip").Table()
	if err != nil {
		log.Fatal(err)
	}

	// One deduplicated (date, value) observation per day
	series := trend.Series(table, "BodyMass", "creationDate")
	for _, p := range trend.Points(series, "creationDate", "value") {
		fmt.Println(p.Date, p.Value)
	}
}

func Example_streamingReader() {
	// The lower-level export package streams one row at a time over an
	// already-sanitized document.
	r, err := export.Open("cleaned.xml")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	table, warnings, err := hktab.FromReader(r).Table()
	_ = table
	_ = warnings
	_ = err
}
