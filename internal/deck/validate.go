package deck

import "fmt"

// FormatName is the legality map key for the format being validated.
const FormatName = "commander"

// DeckSize is the exact number of cards a legal deck must contain,
// commanders included.
const DeckSize = 100

// unlimitedCopies names cards exempt from the singleton rule by their own
// rules text.
var unlimitedCopies = map[string]bool{
	"Relentless Rats":    true,
	"Shadowborn Apostle": true,
}

// Validate applies the full Commander rule set to the rows and their
// resolved cards. Every applicable check runs; issues and warnings
// accumulate rather than short-circuiting each other.
func Validate(rows []*Row, resolved map[int]*Card) *ValidationResult {
	result := &ValidationResult{
		Issues:   []string{},
		Warnings: []string{},
	}

	commanders := DetectCommanders(rows, resolved)
	commanderColors := map[string]bool{}
	switch len(commanders) {
	case 0:
		result.Issues = append(result.Issues,
			"No commander specified. Pass -commander with one name, or two names for partners.")
	case 1:
		if !isEligibleCommander(commanders[0]) {
			result.Issues = append(result.Issues, fmt.Sprintf(
				"Commander '%s' may not be eligible (not a Legendary Creature or explicitly allowed).",
				commanders[0].Name))
		}
		commanderColors = colorSet(commanders[0].ColorIdentity)
	case 2:
		if !hasPartner(commanders[0]) || !hasPartner(commanders[1]) {
			result.Issues = append(result.Issues,
				"Two commanders detected, but they don't both have Partner/Friends forever.")
		}
		commanderColors = colorSet(commanders[0].ColorIdentity)
		for _, color := range commanders[1].ColorIdentity {
			commanderColors[color] = true
		}
	default:
		result.Issues = append(result.Issues,
			"More than two commanders marked. EDH supports one (or two with Partner).")
	}
	for _, c := range commanders {
		result.CommanderNames = append(result.CommanderNames, c.Name)
	}
	result.CommanderColorID = sortedColors(commanderColors)

	totalCards := 0
	for _, row := range rows {
		totalCards += row.Quantity
	}
	result.DeckSize = totalCards
	if totalCards != DeckSize {
		result.Issues = append(result.Issues, fmt.Sprintf(
			"Deck must contain exactly %d total cards including commander(s); found %d.",
			DeckSize, totalCards))
	}

	// Combined quantity per name, for the singleton rule.
	nameCounts := make(map[string]int)
	for _, row := range rows {
		nameCounts[row.Name] += row.Quantity
	}

	for idx, row := range rows {
		card, ok := resolved[idx]
		if !ok {
			result.Issues = append(result.Issues, fmt.Sprintf(
				"Card could not be resolved: '%s' (set '%s' number '%s')",
				row.Name, row.SetHint, row.CollectorNumber))
			continue
		}

		switch legality := card.Legality(FormatName); legality {
		case "banned":
			result.Issues = append(result.Issues,
				fmt.Sprintf("BANNED in Commander: %s", card.Name))
		case "legal", "restricted":
			// restricted doesn't exist for EDH but stays acceptable
		case "":
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Not legal in Commander (status unknown): %s", card.Name))
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Not legal in Commander (status %s): %s", legality, card.Name))
		}

		if !card.IsBasicLand() && !unlimitedCopies[card.Name] {
			if count := nameCounts[card.Name]; count > 1 {
				result.Issues = append(result.Issues, fmt.Sprintf(
					"Singleton violation: %s appears %d times.", card.Name, count))
			}
		}

		if len(commanderColors) > 0 {
			cardColors := colorSet(card.ColorIdentity)
			if !subset(cardColors, commanderColors) {
				result.Issues = append(result.Issues, fmt.Sprintf(
					"Color identity mismatch: %s has %v not within commander identity %v.",
					card.Name, sortedColors(cardColors), result.CommanderColorID))
			}
		}
	}

	return result
}

// subset reports whether every element of a is in b.
func subset(a, b map[string]bool) bool {
	for color := range a {
		if !b[color] {
			return false
		}
	}
	return true
}
