package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_AllColumns(t *testing.T) {
	input := strings.Join([]string{
		"Card name,Set code / Set name,Quantity,Card number,Scryfall ID",
		"Sol Ring,C21,1,263,",
		"Forest,Dominaria United,9,,",
		"Arcane Signet,,,,e0e8d2a6-0000-4000-8000-000000000001",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, &Row{Name: "Sol Ring", SetHint: "C21", Quantity: 1, CollectorNumber: "263"}, rows[0])
	assert.Equal(t, &Row{Name: "Forest", SetHint: "Dominaria United", Quantity: 9}, rows[1])
	assert.Equal(t, &Row{Name: "Arcane Signet", Quantity: 1, ScryfallID: "e0e8d2a6-0000-4000-8000-000000000001"}, rows[2])
}

func TestParseCSV_HeaderCaseInsensitive(t *testing.T) {
	input := "CARD NAME,Set Code / Set Name\nSol Ring,\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Sol Ring", rows[0].Name)
}

func TestParseCSV_StripsBOM(t *testing.T) {
	input := "\ufeffCard name,Set code / Set name\nSol Ring,\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Sol Ring", rows[0].Name)
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	input := "Card name,Quantity\nSol Ring,1\n"

	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set code / set name")
}

func TestParseCSV_InvalidQuantity(t *testing.T) {
	for _, quantity := range []string{"x", "0", "-3", "1.5"} {
		input := "Card name,Set code / Set name,Quantity\nSol Ring,," + quantity + "\n"
		_, err := ParseCSV(strings.NewReader(input))
		require.Error(t, err, "quantity %q", quantity)
		assert.Contains(t, err.Error(), "invalid Quantity")
	}
}

func TestParseCSV_SkipsBlankNames(t *testing.T) {
	input := "Card name,Set code / Set name\n,\nSol Ring,\n  ,\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sol Ring", rows[0].Name)
}

func TestParseCSV_EmptyDeck(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Card name,Set code / Set name\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows")
}

func TestParseCSV_NoHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestMarkCommanders(t *testing.T) {
	rows := []*Row{
		{Name: "Radha, Heir to Keld"},
		{Name: "Sol Ring"},
	}

	unmatched := MarkCommanders(rows, []string{"radha, heir to keld", "Nonexistent"})

	assert.True(t, rows[0].IsCommander)
	assert.False(t, rows[1].IsCommander)
	assert.Equal(t, []string{"Nonexistent"}, unmatched)
}
