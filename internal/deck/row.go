// Package deck implements card resolution and Commander (EDH) deck
// validation over an external card database.
package deck

import (
	"context"
	"sort"
	"strings"
)

// Row represents one line of an imported deck list.
type Row struct {
	Name            string // Card name (required)
	SetHint         string // Set code or set name, may be empty
	Quantity        int    // Number of copies, always >= 1
	CollectorNumber string // Printed collector number, may be empty
	ScryfallID      string // External UUID, may be empty
	IsCommander     bool   // Set via the commander directive before validation
}

// Card is the authoritative record resolved for a Row.
type Card struct {
	ScryfallID      string
	Name            string
	SetCode         string
	CollectorNumber string
	TypeLine        string
	ColorIdentity   []string
	Legalities      map[string]string
	OracleText      string
	Keywords        []string
}

// IsBasicLand reports whether the card's type line marks it as a basic land.
func (c *Card) IsBasicLand() bool {
	return strings.Contains(c.TypeLine, "Basic Land")
}

// Legality returns the card's legality status for the given format,
// or "" when unknown.
func (c *Card) Legality(format string) string {
	if c.Legalities == nil {
		return ""
	}
	return c.Legalities[format]
}

// colorSet converts a color identity slice to a set.
func colorSet(colors []string) map[string]bool {
	set := make(map[string]bool, len(colors))
	for _, color := range colors {
		set[color] = true
	}
	return set
}

// sortedColors returns the set's color symbols in sorted order.
func sortedColors(set map[string]bool) []string {
	colors := make([]string, 0, len(set))
	for color := range set {
		colors = append(colors, color)
	}
	sort.Strings(colors)
	return colors
}

// ValidationResult holds the outcome of validating a deck list.
type ValidationResult struct {
	Issues           []string // Blocking problems
	Warnings         []string // Non-blocking advisories
	DeckSize         int      // Sum of all row quantities
	CommanderNames   []string
	CommanderColorID []string // Unified commander color identity, sorted
}

// SetInfo is one entry of the external set directory.
type SetInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SetDirectory lists all known sets in the external source's order.
type SetDirectory interface {
	ListSets(ctx context.Context) ([]SetInfo, error)
}

// CardSource performs lookups against the external card database.
type CardSource interface {
	// LookupBatch submits up to MaxBatchSize keys to the bulk endpoint.
	// The returned records carry no positional or count correspondence
	// to the submitted keys.
	LookupBatch(ctx context.Context, keys []LookupKey) ([]*Card, error)

	// LookupExact fetches a single card by exact name.
	LookupExact(ctx context.Context, name string) (*Card, error)
}

// Cache is an advisory response cache. Implementations must never affect
// resolution correctness, only external call volume.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Flush()
}

// NopCache is a Cache that stores nothing.
type NopCache struct{}

func (NopCache) Get(string) ([]byte, bool) { return nil, false }
func (NopCache) Set(string, []byte)        {}
func (NopCache) Flush()                    {}

// MarkCommanders sets the commander flag on every row whose name matches
// one of the given names, case-insensitively. It returns the names that
// matched no row.
func MarkCommanders(rows []*Row, names []string) []string {
	var unmatched []string
	for _, name := range names {
		found := false
		for _, row := range rows {
			if strings.EqualFold(row.Name, name) {
				row.IsCommander = true
				found = true
			}
		}
		if !found {
			unmatched = append(unmatched, name)
		}
	}
	return unmatched
}
