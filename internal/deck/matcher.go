package deck

import "strings"

// RowMatchesCard reports whether a row and a candidate record refer to the
// same physical card. setCode is the row's resolved set code ("" when
// unknown). Checks run in strict priority order and short-circuit:
//
//  1. External ID exact equality, when the row carries one.
//  2. Set code and collector number both present and equal. Collector
//     numbers are compared as strings to tolerate leading zeros and
//     letter suffixes.
//  3. Case-insensitive name equality; when the row resolved to a set code
//     the candidate's set must also match, otherwise any printing is
//     accepted.
//
// The function is pure so the resolver can probe candidates freely.
func RowMatchesCard(row *Row, setCode string, card *Card) bool {
	if row.ScryfallID != "" && card.ScryfallID == row.ScryfallID {
		return true
	}
	if setCode != "" && row.CollectorNumber != "" {
		if card.SetCode == setCode && card.CollectorNumber == row.CollectorNumber {
			return true
		}
	}
	if strings.EqualFold(card.Name, row.Name) {
		if setCode != "" {
			return card.SetCode == setCode
		}
		return true
	}
	return false
}
