package catalog

import (
	"strings"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/textutil"
)

// Positional field offsets for rows pasted from the collection sheet
// (zero-indexed spreadsheet columns C, D, P, Q, U).
const (
	pasteFieldSticker     = 2
	pasteFieldDescription = 3
	pasteFieldObject      = 15
	pasteFieldImported    = 16
	pasteFieldLocation    = 20

	// pasteMinFields is one past the highest offset in use.
	pasteMinFields = pasteFieldLocation + 1
)

// ParsePasted parses free-text rows pasted from the collection spreadsheet.
// Each line is split on tabs when any tab is present, otherwise on commas,
// and must carry at least 21 positional fields. Rows that are too short or
// have a blank description are dropped and tallied. A blank object number is
// synthesized from sanitized location and/or description.
func ParsePasted(raw string) ([]Entry, int) {
	var (
		entries []Entry
		skipped int
	)

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var parts []string
		if strings.Contains(line, "\t") {
			parts = strings.Split(line, "\t")
		} else {
			parts = strings.Split(line, ",")
		}
		if len(parts) < pasteMinFields {
			skipped++
			continue
		}

		entry := Entry{
			StickerNumber:       strings.TrimSpace(parts[pasteFieldSticker]),
			Description:         strings.TrimSpace(parts[pasteFieldDescription]),
			ObjectNumber:        strings.TrimSpace(parts[pasteFieldObject]),
			ImportedDescription: strings.TrimSpace(parts[pasteFieldImported]),
			Location:            strings.TrimSpace(parts[pasteFieldLocation]),
		}
		if entry.Description == "" {
			skipped++
			continue
		}
		if entry.ObjectNumber == "" {
			entry.ObjectNumber = textutil.FallbackObjectNumber(entry.Location, entry.Description)
		}
		entries = append(entries, entry)
	}

	return entries, skipped
}
