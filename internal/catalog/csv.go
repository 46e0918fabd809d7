package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// csv column headers, matched case-insensitively after trimming.
const (
	columnDescription         = "description"
	columnObjectNumber        = "object number"
	columnStickerNumber       = "sticker number"
	columnImportedDescription = "imported description"
	columnLocation            = "location"
)

// ReadCSV parses a spreadsheet export. Header names are matched
// case-insensitively after trimming; missing columns yield empty fields.
// Rows with a blank Description and rows the CSV parser rejects are skipped
// and tallied, never aborting the load. Duplicate keys are resolved later by
// Replace (last row wins).
func ReadCSV(r io.Reader) ([]Entry, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("catalog source is empty")
		}
		return nil, 0, fmt.Errorf("read catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index[columnDescription]; !ok {
		return nil, 0, fmt.Errorf("catalog source has no Description column")
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		entries []Entry
		skipped int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row: recover and keep reading.
			skipped++
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return entries, skipped, fmt.Errorf("read catalog row: %w", err)
			}
			continue
		}

		entry := Entry{
			Description:         field(record, columnDescription),
			ObjectNumber:        field(record, columnObjectNumber),
			StickerNumber:       field(record, columnStickerNumber),
			ImportedDescription: field(record, columnImportedDescription),
			Location:            field(record, columnLocation),
		}
		if entry.Description == "" {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}
