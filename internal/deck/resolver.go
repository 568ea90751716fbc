package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MaxBatchSize is the hard cap on identifiers per bulk lookup request.
const MaxBatchSize = 75

// Resolver maps deck rows to authoritative card records.
type Resolver struct {
	Source CardSource
	Sets   SetDirectory
	Cache  Cache // optional; nil disables caching
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(source CardSource, sets SetDirectory, cache Cache) *Resolver {
	if cache == nil {
		cache = NopCache{}
	}
	return &Resolver{Source: source, Sets: sets, Cache: cache}
}

// Resolve maps each row position to its resolved card. Rows that cannot be
// resolved anywhere are simply absent from the result; the validator reports
// them. An error is returned only for set-directory or bulk-lookup failures,
// which indicate the run cannot produce meaningful results.
func (r *Resolver) Resolve(ctx context.Context, rows []*Row) (map[int]*Card, error) {
	cache := r.Cache
	if cache == nil {
		cache = NopCache{}
	}

	setCodes, err := r.resolveSetCodes(ctx, rows)
	if err != nil {
		return nil, err
	}

	keys := make([]LookupKey, len(rows))
	for i, row := range rows {
		keys[i] = BuildKey(row, setCodes[i])
	}

	resolved := make(map[int]*Card)

	// Batched bulk lookups. Returned records carry no positional
	// correspondence to the submitted keys, so each record is greedily
	// assigned to the first unclaimed row in the batch it matches. The
	// claimed markers make the first-fit scan deterministic even when
	// two rows share an identical key.
	for start := 0; start < len(keys); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(keys))
		cards, err := r.Source.LookupBatch(ctx, keys[start:end])
		if err != nil {
			return nil, fmt.Errorf("bulk card lookup: %w", err)
		}

		claimed := make([]bool, end-start)
		for _, card := range cards {
			for off := range claimed {
				if claimed[off] {
					continue
				}
				idx := start + off
				if RowMatchesCard(rows[idx], setCodes[idx], card) {
					resolved[idx] = card
					claimed[off] = true
					break
				}
			}
		}
	}

	// Fallback pass: exact-name lookup for anything still missing.
	// A failed lookup leaves the row unresolved rather than aborting;
	// the validator surfaces the gap as an issue.
	for idx, row := range rows {
		if _, ok := resolved[idx]; ok {
			continue
		}
		cacheKey := "card:named:" + strings.ToLower(row.Name)
		if data, ok := cache.Get(cacheKey); ok {
			var card Card
			if err := json.Unmarshal(data, &card); err == nil && card.Name != "" {
				resolved[idx] = &card
				continue
			}
		}
		card, err := r.Source.LookupExact(ctx, row.Name)
		if err != nil || card == nil {
			continue
		}
		resolved[idx] = card
		if data, err := json.Marshal(card); err == nil {
			cache.Set(cacheKey, data)
		}
	}
	cache.Flush()

	return resolved, nil
}

// resolveSetCodes resolves each row's set hint to a set code. The set
// directory is fetched lazily, only when some hint needs name matching.
func (r *Resolver) resolveSetCodes(ctx context.Context, rows []*Row) ([]string, error) {
	codes := make([]string, len(rows))
	var sets []SetInfo
	loaded := false

	for i, row := range rows {
		hint := strings.TrimSpace(row.SetHint)
		if hint == "" {
			continue
		}
		if isSetCodeToken(hint) {
			codes[i] = strings.ToLower(hint)
			continue
		}
		if !loaded {
			var err error
			sets, err = r.Sets.ListSets(ctx)
			if err != nil {
				return nil, fmt.Errorf("list sets: %w", err)
			}
			loaded = true
		}
		codes[i] = ResolveSetCode(hint, sets)
	}

	return codes, nil
}
