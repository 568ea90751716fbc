package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCommanders_OrderAndFlags(t *testing.T) {
	rows := []*Row{
		{Name: "Sol Ring"},
		{Name: "B", IsCommander: true},
		{Name: "A", IsCommander: true},
	}
	resolved := map[int]*Card{
		0: {Name: "Sol Ring"},
		1: {Name: "B"},
		2: {Name: "A"},
	}

	commanders := DetectCommanders(rows, resolved)

	// Row order, not name order.
	assert.Equal(t, []*Card{resolved[1], resolved[2]}, commanders)
}

func TestDetectCommanders_SkipsUnresolvedRows(t *testing.T) {
	rows := []*Row{
		{Name: "Ghost", IsCommander: true},
		{Name: "A", IsCommander: true},
	}
	resolved := map[int]*Card{1: {Name: "A"}}

	commanders := DetectCommanders(rows, resolved)

	assert.Equal(t, []*Card{resolved[1]}, commanders)
}

func TestHasPartner(t *testing.T) {
	assert.True(t, hasPartner(&Card{Keywords: []string{"Partner"}}))
	assert.True(t, hasPartner(&Card{Keywords: []string{"Partner with Blaring Captain"}}))
	assert.True(t, hasPartner(&Card{OracleText: "Partner (You can have two commanders...)"}))
	assert.True(t, hasPartner(&Card{OracleText: "Friends forever"}))
	assert.False(t, hasPartner(&Card{Keywords: []string{"Flying"}, OracleText: "Flying"}))
}
