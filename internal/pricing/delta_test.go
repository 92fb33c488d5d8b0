package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardsum/internal/deck"
)

func TestPerturbDirection(t *testing.T) {
	tests := []struct {
		name   string
		chosen string
		forced deck.Rank
		moveUp bool
	}{
		{name: "fresh deck sits on the threshold", chosen: "", forced: deck.King, moveUp: true},
		{name: "low draw forces largest", chosen: "1 1 2 2", forced: deck.King, moveUp: true},
		{name: "high draw forces smallest", chosen: "K K Q Q", forced: deck.Ace, moveUp: false},
		{name: "kings gone", chosen: "1 1 1 1 K K K K", forced: deck.Queen, moveUp: true},
		{name: "aces gone", chosen: "K K K K A A A A Q", forced: deck.Two, moveUp: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := deck.NewCardsFrom(deck.MustParseRanks(tt.chosen))
			require.NoError(t, err)

			perturbed, forced, err := Perturb(state, DefaultDeltaThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.forced, forced)

			assert.Equal(t, state.ChosenCount()+1, perturbed.ChosenCount())
			assert.Equal(t, state.RemainingCount(forced)-1, perturbed.RemainingCount(forced))

			delta := perturbed.TheoreticalPrice() - state.TheoreticalPrice()
			assert.NotZero(t, delta)
			if tt.moveUp {
				assert.Greater(t, delta, 0.0)
			} else {
				assert.Less(t, delta, 0.0)
			}
		})
	}
}

func TestPerturbLeavesStateUntouched(t *testing.T) {
	state, err := deck.NewCardsFrom(deck.MustParseRanks("7 8"))
	require.NoError(t, err)

	_, _, err = Perturb(state, DefaultDeltaThreshold)
	require.NoError(t, err)
	assert.Equal(t, []deck.Rank{deck.Seven, deck.Eight}, state.ChosenCards())
	assert.Equal(t, deck.CopiesPerRank, state.RemainingCount(deck.King))
}

func TestPerturbExhaustedDeck(t *testing.T) {
	state, err := deck.NewCardsFrom(deck.AllCards())
	require.NoError(t, err)

	_, _, err = Perturb(state, DefaultDeltaThreshold)
	assert.ErrorIs(t, err, deck.ErrNoCardsRemaining)
}

func TestPerturbAfterDrawComplete(t *testing.T) {
	// With the draw complete the forced card adds its full value to the sum
	state, err := deck.NewCardsFrom(deck.MustParseRanks("1 1 1 1 2 2 2 2 3 3 3 3 4 4 4 4 5 5 5 5"))
	require.NoError(t, err)
	require.Equal(t, 60.0, state.TheoreticalPrice())

	perturbed, forced, err := Perturb(state, DefaultDeltaThreshold)
	require.NoError(t, err)
	assert.Equal(t, deck.King, forced)
	assert.Equal(t, 73.0, perturbed.TheoreticalPrice())
}

func TestDifference(t *testing.T) {
	assert.Equal(t, 0.5, difference(3, 2, 2))
	assert.Equal(t, -0.25, difference(1, 2, 4))
	assert.Zero(t, difference(3, 2, 0))
}
