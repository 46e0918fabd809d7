// Package catalog persists the object description catalog in SQLite and
// exposes point lookup by trimmed description key.
//
// The Store manages the database connection, schema initialization, and the
// wholesale Replace used by imports. Entries are immutable once loaded; a
// re-import swaps the entire table in one transaction. Source order is
// preserved through insertion order and is the order List returns.
//
// Two ingestion paths feed Replace: ReadCSV consumes a spreadsheet export
// with named columns, and ParsePasted consumes free-text rows pasted from a
// sheet. Both drop rows with a blank description and tally rows they could
// not use rather than failing the import.
package catalog
