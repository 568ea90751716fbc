package deck

import "strings"

// LookupKey is a prioritized identifier for the bulk lookup endpoint.
// Exactly one of the identifier shapes is populated: ScryfallID alone,
// SetCode+CollectorNumber, Name+SetCode, or Name alone.
type LookupKey struct {
	ScryfallID      string
	Name            string
	SetCode         string
	CollectorNumber string
}

// isSetCodeToken reports whether the hint looks like a raw set code:
// 3-5 alphanumeric characters without spaces.
func isSetCodeToken(s string) bool {
	if len(s) <= 2 || len(s) > 5 || strings.Contains(s, " ") {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// ResolveSetCode resolves a set hint to a set code against the directory
// listing. Code-shaped hints are used directly. Name hints match by exact
// case-insensitive equality first, then by case-insensitive substring
// containment; the first containing set in listing order wins, with no
// recency tie-break. Returns "" when the hint cannot be resolved.
func ResolveSetCode(hint string, sets []SetInfo) string {
	s := strings.TrimSpace(hint)
	if s == "" {
		return ""
	}
	if isSetCodeToken(s) {
		return strings.ToLower(s)
	}
	lower := strings.ToLower(s)
	for _, set := range sets {
		if strings.ToLower(set.Name) == lower {
			return set.Code
		}
	}
	for _, set := range sets {
		if strings.Contains(strings.ToLower(set.Name), lower) {
			return set.Code
		}
	}
	return ""
}

// BuildKey builds the most specific lookup key available for a row.
// Priority: external ID, then set+collector number, then name+set,
// then name alone. setCode is the row's resolved set code ("" when the
// hint was absent or unresolvable).
func BuildKey(row *Row, setCode string) LookupKey {
	if row.ScryfallID != "" {
		return LookupKey{ScryfallID: row.ScryfallID}
	}
	if setCode != "" && row.CollectorNumber != "" {
		return LookupKey{SetCode: setCode, CollectorNumber: row.CollectorNumber}
	}
	if setCode != "" {
		return LookupKey{Name: row.Name, SetCode: setCode}
	}
	return LookupKey{Name: row.Name}
}
