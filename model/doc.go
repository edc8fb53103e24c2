// Package model defines the table representation produced by the hktab
// conversion pipeline and consumed by downstream transforms.
//
// A Table is an ordered sequence of rows over the union of every field
// observed in the export. Rows are open string-to-string mappings: each
// record kind in an export carries a different attribute set, so a row
// holds only the fields its record supplied and reads as the empty string
// everywhere else.
package model
