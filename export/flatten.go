package export

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/hktab/model"
)

// Long identifier prefixes stripped for readability: the first two from
// values of the type field, the third from column names. All are literal
// substrings, removed wherever they occur.
const (
	quantityTypePrefix       = "HKQuantityTypeIdentifier"
	categoryTypePrefix       = "HKCategoryTypeIdentifier"
	characteristicTypePrefix = "HKCharacteristicTypeIdentifier"
)

// priorityColumns lead the column order whenever the export supplies them.
var priorityColumns = []string{
	"type",
	"sourceName",
	"value",
	"unit",
	"startDate",
	"endDate",
	"creationDate",
}

// loopMetadataColumns follow the priority columns when present. These are
// the metadata keys written by the Loop and LoopKit ecosystem apps.
var loopMetadataColumns = []string{
	"com.loopkit.InsulinKit.MetadataKeyProgrammedTempBasalRate",
	"com.loopkit.InsulinKit.MetadataKeyScheduledBasalRate",
	"com.loudnate.CarbKit.HKMetadataKey.AbsorptionTimeMinutes",
}

// FlattenOptions configures progress reporting during flattening.
type FlattenOptions struct {
	// Logger receives debug-level progress events. The zero value
	// discards them.
	Logger zerolog.Logger
	// ProgressEvery is the number of records between progress events.
	// Zero disables progress events.
	ProgressEvery int
}

// Flatten drains the Reader and builds the full table: one row per
// top-level record, columns unioned across every row, identifier prefixes
// stripped, priority columns first, and rows sorted descending by the raw
// startDate string.
//
// Column order past the priority and Loop metadata lists is lexicographic.
// The source format guarantees nothing there, so any deterministic order
// serves; only the leading columns are contractual.
//
// startDate ordering is plain string comparison. Export timestamps are
// zero-padded, so string order matches time order for them, but no date
// parsing happens and none should be assumed. Rows without startDate
// collate as the empty string and sink to the bottom.
func Flatten(r *Reader, opts FlattenOptions) (*model.Table, error) {
	var rows []model.Row
	seen := make(map[string]bool)

	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for field := range row {
			seen[field] = true
		}
		rows = append(rows, row)

		if opts.ProgressEvery > 0 && len(rows)%opts.ProgressEvery == 0 {
			opts.Logger.Debug().
				Int("records", len(rows)).
				Msg("flattening export")
		}
	}

	stripTypePrefixes(rows)
	renameColumns(rows, seen)

	tbl := &model.Table{
		Columns: orderColumns(seen),
		Rows:    rows,
	}

	sort.SliceStable(tbl.Rows, func(i, j int) bool {
		return tbl.Rows[i]["startDate"] > tbl.Rows[j]["startDate"]
	})

	stats := r.Stats()
	opts.Logger.Debug().
		Int("records", stats.Records).
		Int("columns", len(tbl.Columns)).
		Int("skipped_metadata", stats.SkippedMetadata).
		Msg("export flattened")

	return tbl, nil
}

// stripTypePrefixes removes the long quantity and category identifier
// prefixes from every row's type value.
func stripTypePrefixes(rows []model.Row) {
	for _, row := range rows {
		v, ok := row["type"]
		if !ok {
			continue
		}
		v = strings.ReplaceAll(v, quantityTypePrefix, "")
		v = strings.ReplaceAll(v, categoryTypePrefix, "")
		row["type"] = v
	}
}

// renameColumns removes the characteristic identifier prefix from column
// names, rewriting the field key in every row that carries it. When a
// renamed column collides with an existing one, existing values win.
func renameColumns(rows []model.Row, seen map[string]bool) {
	renames := make(map[string]string)
	for field := range seen {
		if !strings.Contains(field, characteristicTypePrefix) {
			continue
		}
		renames[field] = strings.ReplaceAll(field, characteristicTypePrefix, "")
	}
	if len(renames) == 0 {
		return
	}

	for old, renamed := range renames {
		delete(seen, old)
		seen[renamed] = true
	}
	for _, row := range rows {
		for old, renamed := range renames {
			v, ok := row[old]
			if !ok {
				continue
			}
			delete(row, old)
			if _, exists := row[renamed]; !exists {
				row[renamed] = v
			}
		}
	}
}

// orderColumns builds the final column order: priority columns, then Loop
// metadata columns, each only if present, then everything else sorted.
func orderColumns(seen map[string]bool) []string {
	columns := make([]string, 0, len(seen))
	taken := make(map[string]bool, len(seen))

	for _, c := range priorityColumns {
		if seen[c] {
			columns = append(columns, c)
			taken[c] = true
		}
	}
	for _, c := range loopMetadataColumns {
		if seen[c] && !taken[c] {
			columns = append(columns, c)
			taken[c] = true
		}
	}

	rest := make([]string, 0, len(seen))
	for c := range seen {
		if !taken[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)

	return append(columns, rest...)
}
