package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowMatchesCard_IDWinsDespiteMismatch(t *testing.T) {
	// A matching external identifier settles it even when name and set
	// disagree everywhere else.
	row := &Row{Name: "Completely Wrong Name", ScryfallID: "uuid-42", CollectorNumber: "99"}
	card := &Card{ScryfallID: "uuid-42", Name: "Sol Ring", SetCode: "c21", CollectorNumber: "263"}

	assert.True(t, RowMatchesCard(row, "bad", card))
}

func TestRowMatchesCard_IDMismatchFallsThrough(t *testing.T) {
	row := &Row{Name: "Sol Ring", ScryfallID: "uuid-1"}
	card := &Card{ScryfallID: "uuid-2", Name: "Sol Ring", SetCode: "c21"}

	// ID differs but the name still matches with no set constraint.
	assert.True(t, RowMatchesCard(row, "", card))
}

func TestRowMatchesCard_SetAndNumber(t *testing.T) {
	row := &Row{Name: "Misspelled Naem", CollectorNumber: "0263"}
	card := &Card{Name: "Sol Ring", SetCode: "c21", CollectorNumber: "0263"}

	assert.True(t, RowMatchesCard(row, "c21", card))

	// Collector numbers compare as strings: leading zeros matter.
	other := &Card{Name: "Sol Ring", SetCode: "c21", CollectorNumber: "263"}
	assert.False(t, RowMatchesCard(row, "c21", other))
}

func TestRowMatchesCard_NameCaseInsensitive(t *testing.T) {
	row := &Row{Name: "sol ring"}
	card := &Card{Name: "Sol Ring", SetCode: "c21"}

	assert.True(t, RowMatchesCard(row, "", card))
}

func TestRowMatchesCard_NameWithSetConstraint(t *testing.T) {
	row := &Row{Name: "Sol Ring"}
	card := &Card{Name: "Sol Ring", SetCode: "lea"}

	assert.True(t, RowMatchesCard(row, "lea", card))
	assert.False(t, RowMatchesCard(row, "c21", card), "resolved set code must match the candidate's")
}

func TestRowMatchesCard_NoMatch(t *testing.T) {
	row := &Row{Name: "Sol Ring"}
	card := &Card{Name: "Mana Vault", SetCode: "lea"}

	assert.False(t, RowMatchesCard(row, "", card))
}
