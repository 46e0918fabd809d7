package textutil

import (
	"strings"
	"unicode"
)

// FallbackToken is used when neither location nor description yields a usable
// object number during import.
const FallbackToken = "Unknown_Object"

// SanitizeObjectNumber reduces an object number to characters safe for use as
// a filename base. Alphanumerics, hyphens, underscores, and dots are kept;
// runs of spaces collapse to a single underscore; everything else is dropped.
func SanitizeObjectNumber(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

// SanitizeFileToken converts free text into a filename token. Unsafe
// characters become underscores, then runs of whitespace and underscores
// collapse to single underscores. Hyphens and dots survive.
func SanitizeFileToken(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	return strings.Join(parts, "_")
}

// FallbackObjectNumber synthesizes an object number from sanitized location
// and description text, location first. Both empty yields FallbackToken.
func FallbackObjectNumber(location, description string) string {
	loc := SanitizeFileToken(location)
	desc := SanitizeFileToken(description)
	switch {
	case loc != "" && desc != "":
		return loc + "_" + desc
	case loc != "":
		return loc
	case desc != "":
		return desc
	default:
		return FallbackToken
	}
}
