// Package textutil provides the filename sanitization rules shared by the
// tagging engine and the catalog importer.
//
// Object numbers become rename targets verbatim, so they are reduced to a
// filesystem-safe subset (alphanumerics, hyphens, underscores, dots) with
// spaces collapsed to single underscores. Fallback tokens synthesized from
// location or description text follow the stricter replace-and-collapse rule
// used during bulk paste import.
package textutil
