package deck

import "strings"

// DetectCommanders returns the resolved cards for rows flagged as
// commander, in row order. Flagged rows that failed to resolve are skipped
// here; the validator reports unresolved rows separately.
func DetectCommanders(rows []*Row, resolved map[int]*Card) []*Card {
	var commanders []*Card
	for idx, row := range rows {
		if !row.IsCommander {
			continue
		}
		if card, ok := resolved[idx]; ok {
			commanders = append(commanders, card)
		}
	}
	return commanders
}

// hasPartner reports whether the card can share the command zone: a keyword
// beginning with "partner", or oracle text mentioning partner or friends
// forever.
func hasPartner(c *Card) bool {
	for _, keyword := range c.Keywords {
		if strings.HasPrefix(strings.ToLower(keyword), "partner") {
			return true
		}
	}
	text := strings.ToLower(c.OracleText)
	return strings.Contains(text, "partner") || strings.Contains(text, "friends forever")
}

// isEligibleCommander reports whether the card may lead a deck: a Legendary
// Creature, or a card whose text explicitly allows it.
func isEligibleCommander(c *Card) bool {
	if strings.Contains(c.TypeLine, "Legendary Creature") {
		return true
	}
	return strings.Contains(strings.ToLower(c.OracleText), "can be your commander")
}
