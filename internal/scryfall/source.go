package scryfall

import (
	"context"

	"github.com/ramonehamilton/deckcheck/internal/deck"
)

// Source adapts the Scryfall client to the lookup interfaces the deck
// engine consumes.
type Source struct {
	client *Client
}

// NewSource creates a Source over the given client.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// ListSets returns the set directory in Scryfall's listing order.
func (s *Source) ListSets(ctx context.Context) ([]deck.SetInfo, error) {
	list, err := s.client.GetSets(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]deck.SetInfo, 0, len(list.Data))
	for _, set := range list.Data {
		infos = append(infos, deck.SetInfo{Code: set.Code, Name: set.Name})
	}
	return infos, nil
}

// LookupBatch submits one batch of lookup keys to /cards/collection.
func (s *Source) LookupBatch(ctx context.Context, keys []deck.LookupKey) ([]*deck.Card, error) {
	identifiers := make([]CardIdentifier, len(keys))
	for i, key := range keys {
		identifiers[i] = CardIdentifier{
			ID:              key.ScryfallID,
			Name:            key.Name,
			Set:             key.SetCode,
			CollectorNumber: key.CollectorNumber,
		}
	}

	cards, _, err := s.client.GetCardsByIdentifiers(ctx, identifiers)
	if err != nil {
		return nil, err
	}

	resolved := make([]*deck.Card, 0, len(cards))
	for i := range cards {
		resolved = append(resolved, toDeckCard(&cards[i]))
	}
	return resolved, nil
}

// LookupExact fetches a single card by exact name.
func (s *Source) LookupExact(ctx context.Context, name string) (*deck.Card, error) {
	card, err := s.client.GetCardByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toDeckCard(card), nil
}

// toDeckCard converts a Scryfall card to the deck engine's record shape.
func toDeckCard(c *Card) *deck.Card {
	return &deck.Card{
		ScryfallID:      c.ID,
		Name:            c.Name,
		SetCode:         c.SetCode,
		CollectorNumber: c.CollectorNumber,
		TypeLine:        c.TypeLine,
		ColorIdentity:   c.ColorIdentity,
		Legalities:      c.Legalities,
		OracleText:      c.OracleText,
		Keywords:        c.Keywords,
	}
}
