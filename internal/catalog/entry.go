package catalog

import "strings"

// Entry is one catalog row. Description is the unique, whitespace-trimmed
// lookup key; the remaining fields are display metadata carried through from
// the source sheet.
type Entry struct {
	Description         string
	ObjectNumber        string
	StickerNumber       string
	ImportedDescription string
	Location            string
}

func (e Entry) trimmed() Entry {
	return Entry{
		Description:         strings.TrimSpace(e.Description),
		ObjectNumber:        strings.TrimSpace(e.ObjectNumber),
		StickerNumber:       strings.TrimSpace(e.StickerNumber),
		ImportedDescription: strings.TrimSpace(e.ImportedDescription),
		Location:            strings.TrimSpace(e.Location),
	}
}

// normalizeRows trims every entry, drops blank descriptions, and collapses
// duplicate description keys to the last-seen row while keeping the position
// of the first occurrence.
func normalizeRows(rows []Entry) []Entry {
	order := make([]string, 0, len(rows))
	byKey := make(map[string]Entry, len(rows))
	for _, row := range rows {
		entry := row.trimmed()
		if entry.Description == "" {
			continue
		}
		if _, seen := byKey[entry.Description]; !seen {
			order = append(order, entry.Description)
		}
		byKey[entry.Description] = entry
	}
	out := make([]Entry, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}
